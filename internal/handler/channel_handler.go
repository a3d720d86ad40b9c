package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/middleware"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/service"
)

// ChannelHandler handles channel binding HTTP requests.
type ChannelHandler struct {
	channelService service.ChannelServiceInterface
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(channelService service.ChannelServiceInterface) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// ChannelRequest is the JSON body for creating or updating a binding.
type ChannelRequest struct {
	BotToken    string `json:"bot_token"`
	ChannelID   string `json:"channel_id"`
	AdminChatID int64  `json:"admin_chat_id"`
	AdminID     string `json:"admin_id"`
}

// ChannelResponse represents a channel binding in the API response. The
// bot token never leaves the server.
type ChannelResponse struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channel_id"`
	AdminChatID int64  `json:"admin_chat_id"`
	AdminID     string `json:"admin_id"`
}

func toChannelResponse(b *domain.ChannelBinding) ChannelResponse {
	return ChannelResponse{
		ID:          b.ID,
		ChannelID:   b.ChannelID,
		AdminChatID: b.AdminChatID,
		AdminID:     b.AdminID,
	}
}

// CreateChannel handles POST /api/v1/channels.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	binding := &domain.ChannelBinding{
		BotToken:    req.BotToken,
		ChannelID:   req.ChannelID,
		AdminChatID: req.AdminChatID,
		AdminID:     req.AdminID,
	}

	if err := h.channelService.Create(c.Request.Context(), binding); err != nil {
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to create channel binding",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create channel"})
		return
	}

	c.JSON(http.StatusCreated, toChannelResponse(binding))
}

// ListChannels handles GET /api/v1/channels.
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	list, err := h.channelService.List(c.Request.Context())
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list channels",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list channels"})
		return
	}

	out := make([]ChannelResponse, len(list))
	for i := range list {
		out[i] = toChannelResponse(&list[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetChannel handles GET /api/v1/channels/:id.
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	binding, err := h.channelService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to get channel binding",
			slog.String("channel_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve channel"})
		return
	}

	c.JSON(http.StatusOK, toChannelResponse(binding))
}

// UpdateChannel handles PUT /api/v1/channels/:id.
func (h *ChannelHandler) UpdateChannel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	binding := &domain.ChannelBinding{
		ID:          id,
		BotToken:    req.BotToken,
		ChannelID:   req.ChannelID,
		AdminChatID: req.AdminChatID,
		AdminID:     req.AdminID,
	}

	if err := h.channelService.Update(c.Request.Context(), binding); err != nil {
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to update channel binding",
			slog.String("channel_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update channel"})
		return
	}

	c.JSON(http.StatusOK, toChannelResponse(binding))
}

// DeleteChannel handles DELETE /api/v1/channels/:id.
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.channelService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to delete channel binding",
			slog.String("channel_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete channel"})
		return
	}

	c.Status(http.StatusNoContent)
}

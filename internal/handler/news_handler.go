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

// NewsHandler handles news-related HTTP requests.
type NewsHandler struct {
	newsService service.NewsServiceInterface
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsServiceInterface) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// CreateNewsRequest is the JSON body for POST /api/v1/news.
type CreateNewsRequest struct {
	Title       string              `json:"title"`
	Body        string              `json:"body"`
	Images      []string            `json:"images"`
	ReadTime    int                 `json:"read_time"`
	SocialLinks []domain.SocialLink `json:"social_links"`
	AuthorID    string              `json:"author_id"`
}

// UpdateNewsRequest is the JSON body for PUT /api/v1/news/:id. Absent
// fields keep their stored values.
type UpdateNewsRequest struct {
	Title    *string  `json:"title"`
	Body     *string  `json:"body"`
	Images   []string `json:"images"`
	ReadTime *int     `json:"read_time"`
}

// NewsResponse represents a news article in the API response.
type NewsResponse struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Body               string              `json:"body"`
	Images             []string            `json:"images,omitempty"`
	ReadTime           int                 `json:"read_time"`
	Views              int                 `json:"views"`
	SocialLinks        []domain.SocialLink `json:"social_links,omitempty"`
	AuthorID           string              `json:"author_id"`
	TelegramMessageIDs []int               `json:"telegram_message_ids,omitempty"`
	TelegramChatID     *int64              `json:"telegram_chat_id,omitempty"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
}

// PublishOutcomeResponse wraps an article with the channel-side result of
// its publish attempt.
type PublishOutcomeResponse struct {
	News           NewsResponse `json:"news"`
	TelegramStatus string       `json:"telegram_status"`
	Message        string       `json:"message"`
}

// toNewsResponse converts a domain.News to a NewsResponse.
func toNewsResponse(news *domain.News) NewsResponse {
	return NewsResponse{
		ID:                 news.ID,
		Title:              news.Title,
		Body:               news.Body,
		Images:             news.Images,
		ReadTime:           news.ReadTime,
		Views:              news.Views,
		SocialLinks:        news.SocialLinks,
		AuthorID:           news.AuthorID,
		TelegramMessageIDs: news.TelegramMessageIDs,
		TelegramChatID:     news.TelegramChatID,
		CreatedAt:          news.CreatedAt.Format(TimeFormat),
		UpdatedAt:          news.UpdatedAt.Format(TimeFormat),
	}
}

func toOutcomeResponse(outcome *domain.PublishOutcome) PublishOutcomeResponse {
	return PublishOutcomeResponse{
		News:           toNewsResponse(outcome.News),
		TelegramStatus: string(outcome.Status),
		Message:        outcome.Message,
	}
}

// CreateNews handles POST /api/v1/news.
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	news := &domain.News{
		Title:       req.Title,
		Body:        req.Body,
		Images:      req.Images,
		ReadTime:    req.ReadTime,
		SocialLinks: req.SocialLinks,
		AuthorID:    req.AuthorID,
	}

	outcome, err := h.newsService.CreateAndPublish(c.Request.Context(), news)
	if err != nil {
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to create news",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create news"})
		return
	}

	c.JSON(http.StatusCreated, toOutcomeResponse(outcome))
}

// ListNews handles GET /api/v1/news.
func (h *NewsHandler) ListNews(c *gin.Context) {
	list, err := h.newsService.ListNews(c.Request.Context())
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list news",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
		return
	}

	out := make([]NewsResponse, len(list))
	for i := range list {
		out[i] = toNewsResponse(&list[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetNews handles GET /api/v1/news/:id.
func (h *NewsHandler) GetNews(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	news, err := h.newsService.GetNews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to get news",
			slog.String("news_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve news"})
		return
	}

	c.JSON(http.StatusOK, toNewsResponse(news))
}

// UpdateNews handles PUT /api/v1/news/:id.
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := domain.NewsUpdate{
		Title:    req.Title,
		Body:     req.Body,
		Images:   req.Images,
		ReadTime: req.ReadTime,
	}

	outcome, err := h.newsService.UpdateAndRepublish(c.Request.Context(), id, upd)
	if err != nil {
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to update news",
			slog.String("news_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update news"})
		return
	}

	c.JSON(http.StatusOK, toOutcomeResponse(outcome))
}

// DeleteNews handles DELETE /api/v1/news/:id.
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.newsService.DeleteAndRetract(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to delete news",
			slog.String("news_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete news"})
		return
	}

	c.Status(http.StatusNoContent)
}

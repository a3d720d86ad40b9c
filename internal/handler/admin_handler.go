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

// AdminHandler handles operator account HTTP requests.
type AdminHandler struct {
	adminService service.AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateAdminRequest is the JSON body for POST /api/v1/admins.
type CreateAdminRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminResponse represents an admin account in the API response. The
// password hash never leaves the server.
type AdminResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func toAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:       a.ID,
		FullName: a.FullName,
		Username: a.Username,
		Role:     a.Role,
		IsActive: a.IsActive,
	}
}

// CreateAdmin handles POST /api/v1/admins.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	admin := &domain.Admin{
		FullName: req.FullName,
		Username: req.Username,
		Role:     req.Role,
	}

	if err := h.adminService.Create(c.Request.Context(), admin, req.Password); err != nil {
		var vErr validation.Errors
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to create admin",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, toAdminResponse(admin))
}

// ListAdmins handles GET /api/v1/admins.
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	list, err := h.adminService.ListActive(c.Request.Context())
	if err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to list admins",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list admins"})
		return
	}

	out := make([]AdminResponse, len(list))
	for i := range list {
		out[i] = toAdminResponse(&list[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetAdmin handles GET /api/v1/admins/:id.
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	admin, err := h.adminService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to get admin",
			slog.String("admin_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve admin"})
		return
	}

	c.JSON(http.StatusOK, toAdminResponse(admin))
}

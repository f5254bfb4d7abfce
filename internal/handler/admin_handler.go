package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/handler/dto"
	"github.com/yourusername/study-api/internal/service"
)

// AdminHandler обрабатывает админские операции: пользователей и раздачи
type AdminHandler struct {
	authService    *service.AuthService
	catalogService *service.CatalogService
}

// NewAdminHandler создает новый админский обработчик
func NewAdminHandler(authService *service.AuthService, catalogService *service.CatalogService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		catalogService: catalogService,
	}
}

// ListUsers возвращает всех пользователей
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser создает пользователя
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}

	user, err := h.authService.CreateUser(req.Username, req.Password, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// DeleteUser удаляет пользователя; самого себя удалить нельзя
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	targetID := c.MustGet("target_user_id").(uint)
	if err := h.authService.DeleteUser(currentUserID(c), targetID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// DistributePaper раздает билет пользователям
// POST /api/admin/papers/:id/distribute
func (h *AdminHandler) DistributePaper(c *gin.Context) {
	paperID := c.MustGet("paper_id").(uint)

	var req dto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.catalogService.DistributePaper(paperID, currentUserID(c), req.UserIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": created})
}

// RevokePaper отзывает раздачи билета, выданные вызывающим
// POST /api/admin/papers/:id/revoke
func (h *AdminHandler) RevokePaper(c *gin.Context) {
	paperID := c.MustGet("paper_id").(uint)
	if err := h.catalogService.RevokePaper(paperID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignments revoked"})
}

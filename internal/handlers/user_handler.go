package handlers

import (
	"net/http"

	"lifemed_backend/internal/middleware"
	"lifemed_backend/internal/models"
	"lifemed_backend/internal/services"
	"lifemed_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes registers the user routes behind the auth middleware.
// Updating arbitrary users is admin-only.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW)
	{
		users.GET("/me", h.GetMe)
		users.PATCH("/me", h.UpdateMe)
		users.GET("/professionals", h.ListProfessionals)
		users.GET("/patients", h.ListPatients)
		users.PATCH("/:id", middleware.RequireRoles(models.UserRoleAdmin), h.UpdateUser)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a self-service update. Status writes are refused here;
// only the admin route may change account status.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(userID, &req, false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListProfessionals(c *gin.Context) {
	professionals, err := h.userService.ListProfessionals()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *UserHandler) ListPatients(c *gin.Context) {
	patients, err := h.userService.ListPatients()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(id, &req, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

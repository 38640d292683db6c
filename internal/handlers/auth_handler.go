package handlers

import (
	"net/http"

	"lifemed_backend/internal/logger"
	"lifemed_backend/internal/services"
	"lifemed_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// genericResetMessage is returned by forgot-password for existing and
// unknown emails alike.
const genericResetMessage = "Se o e-mail existir, enviaremos instruções"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/register/professional", h.RegisterProfessional)
		auth.POST("/register/admin", h.RegisterAdmin)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) RegisterProfessional(c *gin.Context) {
	var req dto.RegisterProfessionalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.RegisterProfessional(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterAdminRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.RegisterAdmin(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ForgotPassword always answers with the same generic message. Failures are
// logged but never change the response, so the endpoint does not reveal
// which emails have accounts.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "Password reset request failed (hidden from client)",
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: genericResetMessage})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Senha atualizada com sucesso"})
}

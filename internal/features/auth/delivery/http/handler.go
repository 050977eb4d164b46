package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/auth/models"
	"slotbot-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *AuthHandler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, session, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": session.Token,
		"user":  user,
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, session, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"user":  user,
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if parts := strings.SplitN(token, " ", 2); len(parts) == 2 {
		token = strings.TrimSpace(parts[1])
	}
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

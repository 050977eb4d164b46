package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/user/models"
	"slotbot-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me", middleware.RequireAuth())
	{
		me.GET("", h.me)
		me.PUT("/settings", h.updateSettings)
	}
	router.POST("/push/subscribe", middleware.RequireAuth(), h.subscribePush)

	// Email unsubscribe is reached from a mail client, so it cannot carry a
	// bearer token; the token in the query identifies the user.
	router.GET("/unsubscribe", h.unsubscribe)
}

func (h *UserHandler) me(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) updateSettings(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	updated, err := h.service.UpdateSettings(c.Request.Context(), user.ID, &update)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) subscribePush(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var sub models.PushSubscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	if err := h.service.SubscribePush(c.Request.Context(), user.ID, &sub); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *UserHandler) unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		middleware.AbortWithError(c, apperrors.NewValidationError("token", "token is required"))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), token); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.String(http.StatusOK, "You have been unsubscribed from alert emails.")
}

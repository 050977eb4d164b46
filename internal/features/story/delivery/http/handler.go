package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/story/models"
	"slotbot-backend/internal/features/story/service"
)

type StoryHandler struct {
	service service.StoryService
	admins  middleware.AdminChecker
}

func NewStoryHandler(service service.StoryService, admins middleware.AdminChecker) *StoryHandler {
	return &StoryHandler{
		service: service,
		admins:  admins,
	}
}

func (h *StoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	stories := router.Group("/stories")
	{
		stories.GET("", h.listApproved)
		stories.POST("", middleware.RequireAuth(), h.submit)
	}

	admin := router.Group("/admin", middleware.RequireAdmin(h.admins))
	{
		admin.GET("/stories", h.listForModeration)
		admin.PUT("/stories/:id/status", h.setStatus)
	}
}

func (h *StoryHandler) submit(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var req models.StorySubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	story, err := h.service.Submit(c.Request.Context(), user.ID, c.ClientIP(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) listApproved(c *gin.Context) {
	stories, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) listForModeration(c *gin.Context) {
	status := models.StoryStatus(c.DefaultQuery("status", string(models.StatusPending)))

	stories, err := h.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) setStatus(c *gin.Context) {
	var req models.StoryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	story, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

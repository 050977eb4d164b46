package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/casino/models"
	"slotbot-backend/internal/features/casino/service"
)

type CasinoHandler struct {
	service service.CasinoService
	admins  middleware.AdminChecker
}

func NewCasinoHandler(service service.CasinoService, admins middleware.AdminChecker) *CasinoHandler {
	return &CasinoHandler{
		service: service,
		admins:  admins,
	}
}

func (h *CasinoHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/casinos", h.list)

	admin := router.Group("/admin", middleware.RequireAdmin(h.admins))
	{
		admin.POST("/casinos", h.create)
	}
}

func (h *CasinoHandler) list(c *gin.Context) {
	casinos, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, casinos)
}

func (h *CasinoHandler) create(c *gin.Context) {
	var req models.CasinoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	casino, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, casino)
}

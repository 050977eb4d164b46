package http

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/alert/models"
	"slotbot-backend/internal/features/alert/service"
	usermodels "slotbot-backend/internal/features/user/models"
)

type AlertHandler struct {
	service service.AlertService
	admins  middleware.AdminChecker
}

func NewAlertHandler(service service.AlertService, admins middleware.AdminChecker) *AlertHandler {
	return &AlertHandler{
		service: service,
		admins:  admins,
	}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts", middleware.RequireAuth())
	{
		alerts.GET("", h.list)
		alerts.POST("/check", h.check)
		alerts.POST("/:id/read", h.markRead)
	}

	admin := router.Group("/admin", middleware.RequireAdmin(h.admins))
	{
		admin.POST("/alerts", h.create)
		admin.GET("/alerts/clicks", h.clickReport)
		admin.GET("/alerts/clicks/stats", h.clickStats)
	}
}

// RegisterRedirectRoutes mounts the outbound click routes outside the /api
// prefix; the URLs appear in alert emails and on the public site.
func (h *AlertHandler) RegisterRedirectRoutes(router *gin.Engine) {
	router.GET("/out/:alertID", h.outbound)
	router.GET("/play/:cleanName", h.play)
}

func (h *AlertHandler) create(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	var req models.AlertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	alert, dispatch, err := h.service.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"alert":    alert,
		"dispatch": dispatch,
	})
}

func (h *AlertHandler) list(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	alerts, err := h.service.ForUser(c.Request.Context(), user)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) check(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	alerts, err := h.service.Check(c.Request.Context(), user)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) markRead(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	if err := h.service.MarkRead(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlertHandler) outbound(c *gin.Context) {
	var user *usermodels.User
	if u, ok := middleware.UserFrom(c); ok {
		user = u
	}

	destination, err := h.service.ResolveClick(c.Request.Context(), c.Param("alertID"), user)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, destination)
}

func (h *AlertHandler) play(c *gin.Context) {
	var user *usermodels.User
	if u, ok := middleware.UserFrom(c); ok {
		user = u
	}

	destination, err := h.service.DirectCasinoClick(c.Request.Context(), c.Param("cleanName"), user)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, destination)
}

func (h *AlertHandler) clickReport(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	rows, total, err := h.service.ClickReport(c.Request.Context(), page, perPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.writeClicksCSV(c, rows)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clicks":   rows,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *AlertHandler) clickStats(c *gin.Context) {
	count, err := h.service.ClickStats(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clicks_24h": count})
}

func (h *AlertHandler) writeClicksCSV(c *gin.Context, rows []*models.ClickReportRow) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="alert_clicks.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"click_id", "alert_id", "message", "casino", "username", "email", "geo", "clicked_at"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.ClickID,
			row.AlertID,
			row.Message,
			row.CasinoName,
			row.Username,
			row.Email,
			row.Geo,
			row.ClickedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	// The status line is already on the wire, so a write failure can only
	// be recorded, not reported to the client.
	if err := w.Error(); err != nil {
		logger.Error().Err(err).Int("rows", len(rows)).Msg("Failed to stream click report CSV")
	}
}

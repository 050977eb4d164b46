package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotbot-backend/internal/common/middleware"
	"slotbot-backend/internal/features/clicktrack/service"
)

type ClickTrackHandler struct {
	service service.ClickTrackService
}

func NewClickTrackHandler(service service.ClickTrackService) *ClickTrackHandler {
	return &ClickTrackHandler{service: service}
}

func (h *ClickTrackHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Both endpoints are GET: /track is hit by a landing-page pixel, /postback
	// by the affiliate network's server.
	router.GET("/track", h.track)
	router.GET("/postback", h.postback)
}

func (h *ClickTrackHandler) track(c *gin.Context) {
	input := &service.TrackRequest{
		Referrer:  c.Query("ref"),
		ClickID:   c.Query("cid"),
		Offer:     c.Query("offer"),
		Geo:       c.Query("geo"),
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
	if input.Referrer == "" {
		input.Referrer = c.Request.Referer()
	}

	track, err := h.service.Record(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": track.ID})
}

func (h *ClickTrackHandler) postback(c *gin.Context) {
	if err := h.service.Convert(c.Request.Context(), c.Query("cid")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

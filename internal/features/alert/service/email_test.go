package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbot-backend/internal/common/unsubscribe"
	"slotbot-backend/internal/features/alert/models"
)

func TestRenderAlertEmail(t *testing.T) {
	rtp := 96.5
	bet := 2.0
	alert := &models.Alert{
		ID:             "a1",
		Message:        "Big Bass is <hot> right now",
		Slot:           "Big Bass Bonanza",
		RTP:            &rtp,
		RecommendedBet: &bet,
	}
	rcpt := &models.RecipientUser{UserID: "u1", Email: "user@example.com"}

	subject, html := renderAlertEmail(alert, nil, rcpt, "https://beatonlineslots.com/")

	assert.Equal(t, "New slot alert: Big Bass Bonanza", subject)
	assert.Contains(t, html, "https://beatonlineslots.com/out/a1")
	assert.Contains(t, html, "/api/unsubscribe?token=")
	// Message text is escaped.
	assert.Contains(t, html, "Big Bass is &lt;hot&gt; right now")
	assert.NotContains(t, html, "<hot>")
	// Promo figures are rendered with their units.
	assert.Contains(t, html, "96.5%")
	assert.Contains(t, html, ">2<")

	// The embedded unsubscribe token decodes back to the recipient.
	start := strings.Index(html, "token=") + len("token=")
	end := strings.Index(html[start:], `"`)
	userID, _, err := unsubscribe.Decode(html[start : start+end])
	assert.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "96.5", trimFloat(96.50))
	assert.Equal(t, "2", trimFloat(2.00))
	assert.Equal(t, "0.25", trimFloat(0.25))
}

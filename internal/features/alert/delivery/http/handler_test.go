package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbot-backend/internal/features/alert/models"
)

// brokenWriter fails every body write, simulating a client that dropped the
// connection mid-download.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header       { return w.header }
func (w *brokenWriter) WriteHeader(int)           {}
func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteClicksCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rows := []*models.ClickReportRow{
		{
			ClickID:    "c1",
			AlertID:    "a1",
			Message:    "Hot streak on Book of Ra",
			CasinoName: "Lucky Spin",
			Username:   "alice",
			Email:      "alice@example.com",
			Geo:        "DE",
			ClickedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	t.Run("streams header and rows", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		h := &AlertHandler{}
		h.writeClicksCSV(c, rows)

		body := rec.Body.String()
		require.Contains(t, body, "click_id,alert_id,message,casino,username,email,geo,clicked_at")
		assert.Contains(t, body, "c1,a1,Hot streak on Book of Ra,Lucky Spin,alice,alice@example.com,DE,2025-06-01 12:00:00")
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	})

	t.Run("tolerates a mid-stream write failure", func(t *testing.T) {
		c, _ := gin.CreateTestContext(&brokenWriter{header: http.Header{}})

		h := &AlertHandler{}
		assert.NotPanics(t, func() { h.writeClicksCSV(c, rows) })
	})
}

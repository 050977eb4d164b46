package repository

import (
	"context"
	"time"

	"slotbot-backend/internal/features/alert/models"
)

// AlertRepository persists alerts, their recipient snapshots and click events.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	// ListLive returns alerts whose window has not yet closed (end >= now).
	ListLive(ctx context.Context, now time.Time) ([]*models.Alert, error)

	// AddRecipients bulk-inserts one unread recipient row per user id.
	// Existing (alert, user) pairs are left untouched.
	AddRecipients(ctx context.Context, alertID string, userIDs []string) error
	RecipientsWithUsers(ctx context.Context, alertID string) ([]*models.RecipientUser, error)
	// RecipientAlerts returns the user's recipient rows joined to alerts
	// whose window has not yet closed.
	RecipientAlerts(ctx context.Context, userID string, now time.Time) ([]*models.RecipientAlert, error)
	// RecipientAlertIDs returns the set of alert ids the user already has
	// a recipient row for.
	RecipientAlertIDs(ctx context.Context, userID string) (map[string]bool, error)
	// MarkRead flips the read flag and reports whether a row matched.
	MarkRead(ctx context.Context, alertID, userID string) (bool, error)

	AddClick(ctx context.Context, click *models.AlertClick) error
	// Clicks returns one page of the click/alert/user join plus the total
	// row count.
	Clicks(ctx context.Context, limit, offset int) ([]*models.ClickReportRow, int, error)
	CountClicks(ctx context.Context, since time.Time) (int, error)
}

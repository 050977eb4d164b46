package repository

import (
	"context"

	"slotbot-backend/internal/features/clicktrack/models"
)

// ClickTrackRepository persists inbound traffic records. Rows are never
// updated except for the converted flag.
type ClickTrackRepository interface {
	Create(ctx context.Context, track *models.ClickTrack) error
	// MarkConverted flips the converted flag on every row carrying the
	// click id and reports whether any row matched.
	MarkConverted(ctx context.Context, clickID string) (bool, error)
}

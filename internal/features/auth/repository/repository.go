package repository

import (
	"context"
	"time"

	"slotbot-backend/internal/features/auth/models"
)

// SessionRepository stores bearer sessions with a TTL. Sessions are
// disposable; losing the store logs everyone out and nothing else.
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	// Get returns nil without error when the token is unknown or expired.
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

package repository

import (
	"context"
	"time"

	"slotbot-backend/internal/features/user/models"
)

// UserRepository persists users and their push subscriptions.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns the full user population. The alert materializer
	// evaluates the targeting predicate over this set.
	List(ctx context.Context) ([]*models.User, error)
	UpdateSettings(ctx context.Context, id string, update *models.SettingsUpdate) error
	SetEmailOptIn(ctx context.Context, id string, enabled bool) error
	// TrialsExpiringBetween returns users whose trial lapses inside the
	// half-open window [from, to).
	TrialsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.User, error)

	SavePushSubscription(ctx context.Context, sub *models.PushSubscription) error
	PushSubscriptions(ctx context.Context, userID string) ([]*models.PushSubscription, error)
}

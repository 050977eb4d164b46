package repository

import (
	"context"

	"slotbot-backend/internal/features/casino/models"
)

// CasinoRepository persists casino listings.
type CasinoRepository interface {
	Create(ctx context.Context, casino *models.Casino) error
	GetByID(ctx context.Context, id string) (*models.Casino, error)
	GetByCleanName(ctx context.Context, cleanName string) (*models.Casino, error)
	ListApproved(ctx context.Context) ([]*models.Casino, error)
}

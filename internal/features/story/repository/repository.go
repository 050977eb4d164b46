package repository

import (
	"context"

	"slotbot-backend/internal/features/story/models"
)

// StoryRepository persists win stories through their moderation lifecycle.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id string) (*models.Story, error)
	ListByStatus(ctx context.Context, status models.StoryStatus) ([]*models.Story, error)
	UpdateStatus(ctx context.Context, id string, status models.StoryStatus) error
}

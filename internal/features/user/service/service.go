package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/common/unsubscribe"
	"slotbot-backend/internal/features/user/models"
	"slotbot-backend/internal/features/user/repository"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateSettings(ctx context.Context, id string, update *models.SettingsUpdate) (*models.User, error)
	SubscribePush(ctx context.Context, userID string, sub *models.PushSubscription) error
	// Unsubscribe disables alert emails for the user encoded in token.
	Unsubscribe(ctx context.Context, token string) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}

func (s *userService) UpdateSettings(ctx context.Context, id string, update *models.SettingsUpdate) (*models.User, error) {
	if err := s.repo.UpdateSettings(ctx, id, update); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("update settings", err)
	}
	return s.GetByID(ctx, id)
}

func (s *userService) SubscribePush(ctx context.Context, userID string, sub *models.PushSubscription) error {
	if sub.Endpoint == "" {
		return apperrors.NewValidationError("endpoint", "endpoint is required")
	}
	if sub.P256dh == "" || sub.Auth == "" {
		return apperrors.NewValidationError("keys", "p256dh and auth keys are required")
	}

	sub.ID = uuid.New().String()
	sub.UserID = userID
	sub.CreatedAt = time.Now()

	if err := s.repo.SavePushSubscription(ctx, sub); err != nil {
		return apperrors.NewDatabaseError("save push subscription", err)
	}
	return nil
}

func (s *userService) Unsubscribe(ctx context.Context, token string) error {
	userID, issuedAt, err := unsubscribe.Decode(token)
	if err != nil {
		return apperrors.NewValidationError("token", "malformed unsubscribe token")
	}

	if err := s.repo.SetEmailOptIn(ctx, userID, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewUserNotFoundError(userID)
		}
		return apperrors.NewDatabaseError("set email opt-in", err)
	}

	logger.Info().
		Str("user_id", userID).
		Time("token_issued_at", issuedAt).
		Msg("User unsubscribed from alert emails")
	return nil
}

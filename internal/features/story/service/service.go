package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/features/story/models"
	"slotbot-backend/internal/features/story/repository"
)

// CaptchaVerifier checks a client challenge token. An unconfigured verifier
// reports every token as valid.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type StoryService interface {
	Submit(ctx context.Context, userID, remoteIP string, input *models.StorySubmitRequest) (*models.Story, error)
	ListApproved(ctx context.Context) ([]*models.Story, error)
	ListByStatus(ctx context.Context, status models.StoryStatus) ([]*models.Story, error)
	SetStatus(ctx context.Context, id string, status models.StoryStatus) (*models.Story, error)
}

type storyService struct {
	repo    repository.StoryRepository
	captcha CaptchaVerifier
}

func NewStoryService(repo repository.StoryRepository, captcha CaptchaVerifier) StoryService {
	return &storyService{
		repo:    repo,
		captcha: captcha,
	}
}

func (s *storyService) Submit(ctx context.Context, userID, remoteIP string, input *models.StorySubmitRequest) (*models.Story, error) {
	ok, err := s.captcha.Verify(ctx, input.RecaptchaToken, remoteIP)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalAPI, "reCAPTCHA verification unavailable")
	}
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeRecaptcha, "reCAPTCHA verification failed")
	}

	if input.WinAmount <= 0 {
		return nil, apperrors.NewValidationError("win_amount", "win amount must be greater than 0")
	}

	now := time.Now()
	story := &models.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Slot:      input.Slot,
		WinAmount: input.WinAmount,
		Text:      input.Text,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		return nil, apperrors.NewDatabaseError("create story", err)
	}

	logger.Info().Str("story_id", story.ID).Str("user_id", userID).Msg("Win story submitted")
	return story, nil
}

func (s *storyService) ListApproved(ctx context.Context) ([]*models.Story, error) {
	return s.ListByStatus(ctx, models.StatusApproved)
}

func (s *storyService) ListByStatus(ctx context.Context, status models.StoryStatus) ([]*models.Story, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.NewValidationError("status", "unknown story status")
	}

	stories, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list stories", err)
	}
	return stories, nil
}

func (s *storyService) SetStatus(ctx context.Context, id string, status models.StoryStatus) (*models.Story, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.NewValidationError("status", "unknown story status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewStoryNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("update story status", err)
	}

	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get story", err)
	}
	return story, nil
}

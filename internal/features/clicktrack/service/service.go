package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/features/clicktrack/models"
	"slotbot-backend/internal/features/clicktrack/repository"
	"slotbot-backend/internal/platform/postback"
)

type TrackRequest struct {
	Referrer  string
	ClickID   string
	Offer     string
	Geo       string
	UserAgent string
	IP        string
}

type ClickTrackService interface {
	Record(ctx context.Context, input *TrackRequest) (*models.ClickTrack, error)
	// Convert marks the click id converted and fires the outbound postback.
	Convert(ctx context.Context, clickID string) error
}

type clickTrackService struct {
	repo     repository.ClickTrackRepository
	postback *postback.Client
}

func NewClickTrackService(repo repository.ClickTrackRepository, postbackClient *postback.Client) ClickTrackService {
	return &clickTrackService{
		repo:     repo,
		postback: postbackClient,
	}
}

func (s *clickTrackService) Record(ctx context.Context, input *TrackRequest) (*models.ClickTrack, error) {
	track := &models.ClickTrack{
		ID:        uuid.New().String(),
		Referrer:  input.Referrer,
		ClickID:   input.ClickID,
		Offer:     input.Offer,
		Geo:       input.Geo,
		UserAgent: input.UserAgent,
		IP:        input.IP,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, track); err != nil {
		return nil, apperrors.NewDatabaseError("create click track", err)
	}
	return track, nil
}

func (s *clickTrackService) Convert(ctx context.Context, clickID string) error {
	if clickID == "" {
		return apperrors.NewValidationError("cid", "cid is required")
	}

	matched, err := s.repo.MarkConverted(ctx, clickID)
	if err != nil {
		return apperrors.NewDatabaseError("mark converted", err)
	}
	if !matched {
		return apperrors.NewNotFoundError("click track", clickID)
	}

	// The conversion is recorded either way; a dead affiliate endpoint
	// must not fail the request.
	if s.postback.Enabled() {
		if err := s.postback.Fire(ctx, clickID); err != nil {
			logger.Warn().Str("click_id", clickID).Err(err).Msg("Outbound postback failed")
		}
	}
	return nil
}

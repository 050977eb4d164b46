package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slotbot-backend/internal/common/cache"
	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/features/casino/models"
	"slotbot-backend/internal/features/casino/repository"
)

const casinoListCacheKey = "casinos:approved"

type CasinoService interface {
	Create(ctx context.Context, input *models.CasinoCreateRequest) (*models.Casino, error)
	GetByID(ctx context.Context, id string) (*models.Casino, error)
	ListApproved(ctx context.Context) ([]*models.Casino, error)
}

type casinoService struct {
	repo     repository.CasinoRepository
	cache    *cache.CacheService
	cacheTTL time.Duration
}

func NewCasinoService(repo repository.CasinoRepository, cacheService *cache.CacheService, cacheTTL time.Duration) CasinoService {
	return &casinoService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}
}

func (s *casinoService) Create(ctx context.Context, input *models.CasinoCreateRequest) (*models.Casino, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	if input.URL == "" {
		return nil, apperrors.NewValidationError("url", "url is required")
	}

	casino := &models.Casino{
		ID:        uuid.New().String(),
		Name:      input.Name,
		CleanName: models.MakeCleanName(input.Name),
		URL:       models.EnsureScheme(input.URL),
		Logo:      input.Logo,
		Approved:  input.Approved,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, casino); err != nil {
		return nil, apperrors.NewDatabaseError("create casino", err)
	}

	// The row is persisted. A failed invalidation means the public list is
	// stale until the cache TTL lapses, not that the create failed.
	if err := s.cache.Delete(ctx, casinoListCacheKey); err != nil {
		logger.Warn().Err(err).Str("casino_id", casino.ID).Msg("Failed to invalidate casino list cache")
	}
	return casino, nil
}

func (s *casinoService) GetByID(ctx context.Context, id string) (*models.Casino, error) {
	casino, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewCasinoNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get casino", err)
	}
	return casino, nil
}

func (s *casinoService) ListApproved(ctx context.Context) ([]*models.Casino, error) {
	var casinos []*models.Casino
	err := s.cache.GetOrSet(ctx, casinoListCacheKey, &casinos, s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListApproved(ctx)
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			fmt.Sprintf("Failed to list casinos: %v", err))
	}
	return casinos, nil
}

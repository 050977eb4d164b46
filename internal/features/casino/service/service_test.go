package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbot-backend/internal/common/cache"
	"slotbot-backend/internal/features/casino/models"
	"slotbot-backend/internal/features/casino/repository"
)

// fakeCasinoRepo overrides only the methods a test needs; the embedded
// interface panics on anything unexpected.
type fakeCasinoRepo struct {
	repository.CasinoRepository

	create func(ctx context.Context, casino *models.Casino) error
}

func (f *fakeCasinoRepo) Create(ctx context.Context, casino *models.Casino) error {
	return f.create(ctx, casino)
}

// deadCache builds a CacheService whose every operation fails, backed by a
// client pointing at a port nothing listens on.
func deadCache() *cache.CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return cache.NewCacheService(client)
}

func TestCreate(t *testing.T) {
	t.Run("succeeds when cache invalidation fails", func(t *testing.T) {
		var saved *models.Casino
		svc := NewCasinoService(&fakeCasinoRepo{
			create: func(_ context.Context, casino *models.Casino) error {
				saved = casino
				return nil
			},
		}, deadCache(), time.Minute)

		casino, err := svc.Create(context.Background(), &models.CasinoCreateRequest{
			Name:     "Lucky Spin",
			URL:      "luckyspin.example",
			Approved: true,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, saved.ID, casino.ID)
		assert.Equal(t, "lucky-spin", casino.CleanName)
		assert.Equal(t, "https://luckyspin.example", casino.URL)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		svc := NewCasinoService(&fakeCasinoRepo{}, deadCache(), time.Minute)

		_, err := svc.Create(context.Background(), &models.CasinoCreateRequest{URL: "x.example"})
		assert.Error(t, err)
	})
}

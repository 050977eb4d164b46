package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/features/clicktrack/models"
	"slotbot-backend/internal/features/clicktrack/repository"
	"slotbot-backend/internal/platform/postback"
)

type fakeClickTrackRepo struct {
	repository.ClickTrackRepository

	created   *models.ClickTrack
	converted string
	matched   bool
}

func (f *fakeClickTrackRepo) Create(_ context.Context, track *models.ClickTrack) error {
	f.created = track
	return nil
}

func (f *fakeClickTrackRepo) MarkConverted(_ context.Context, clickID string) (bool, error) {
	f.converted = clickID
	return f.matched, nil
}

func TestRecord(t *testing.T) {
	repo := &fakeClickTrackRepo{}
	svc := NewClickTrackService(repo, postback.NewClient(""))

	track, err := svc.Record(context.Background(), &TrackRequest{
		Referrer:  "https://google.com",
		ClickID:   "abc123",
		Offer:     "welcome",
		Geo:       "DE",
		UserAgent: "Mozilla/5.0",
		IP:        "1.2.3.4",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, track.ID)
	assert.False(t, track.Converted)
	assert.Equal(t, "abc123", repo.created.ClickID)
}

func TestConvert(t *testing.T) {
	t.Run("fires postback for matched click", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.RawQuery
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		repo := &fakeClickTrackRepo{matched: true}
		svc := NewClickTrackService(repo, postback.NewClient(server.URL+"/pb?cid={click_id}"))

		require.NoError(t, svc.Convert(context.Background(), "abc123"))
		assert.Equal(t, "abc123", repo.converted)
		assert.Equal(t, "cid=abc123", gotPath)
	})

	t.Run("dead postback endpoint does not fail conversion", func(t *testing.T) {
		repo := &fakeClickTrackRepo{matched: true}
		svc := NewClickTrackService(repo, postback.NewClient("http://127.0.0.1:1/pb?cid={click_id}"))

		require.NoError(t, svc.Convert(context.Background(), "abc123"))
		assert.Equal(t, "abc123", repo.converted)
	})

	t.Run("unknown click id is 404", func(t *testing.T) {
		svc := NewClickTrackService(&fakeClickTrackRepo{matched: false}, postback.NewClient(""))

		err := svc.Convert(context.Background(), "nope")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsNotFound())
	})

	t.Run("missing cid is a validation error", func(t *testing.T) {
		svc := NewClickTrackService(&fakeClickTrackRepo{}, postback.NewClient(""))

		err := svc.Convert(context.Background(), "")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsValidation())
	})
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "slotbot-backend/internal/common/errors"
	"slotbot-backend/internal/features/story/models"
	"slotbot-backend/internal/features/story/repository"
)

type fakeStoryRepo struct {
	repository.StoryRepository

	created *models.Story
}

func (f *fakeStoryRepo) Create(_ context.Context, story *models.Story) error {
	f.created = story
	return nil
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(context.Context, string, string) (bool, error) {
	return f.ok, f.err
}

func submitRequest() *models.StorySubmitRequest {
	return &models.StorySubmitRequest{
		Slot:           "Book of Gold",
		WinAmount:      1250.50,
		Text:           "Hit the bonus round twice in ten spins.",
		RecaptchaToken: "tok",
	}
}

func TestStorySubmit(t *testing.T) {
	t.Run("stores pending story on valid captcha", func(t *testing.T) {
		repo := &fakeStoryRepo{}
		svc := NewStoryService(repo, &fakeCaptcha{ok: true})

		story, err := svc.Submit(context.Background(), "u1", "1.2.3.4", submitRequest())
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, story.Status)
		assert.Equal(t, "u1", story.UserID)
		assert.Equal(t, repo.created.ID, story.ID)
	})

	t.Run("rejects failed captcha", func(t *testing.T) {
		repo := &fakeStoryRepo{}
		svc := NewStoryService(repo, &fakeCaptcha{ok: false})

		_, err := svc.Submit(context.Background(), "u1", "1.2.3.4", submitRequest())
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeRecaptcha, appErr.Code)
		assert.Nil(t, repo.created)
	})

	t.Run("captcha outage is an external error", func(t *testing.T) {
		svc := NewStoryService(&fakeStoryRepo{}, &fakeCaptcha{err: errors.New("timeout")})

		_, err := svc.Submit(context.Background(), "u1", "1.2.3.4", submitRequest())
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeExternalAPI, appErr.Code)
	})

	t.Run("rejects non-positive win amount", func(t *testing.T) {
		svc := NewStoryService(&fakeStoryRepo{}, &fakeCaptcha{ok: true})

		req := submitRequest()
		req.WinAmount = 0
		_, err := svc.Submit(context.Background(), "u1", "1.2.3.4", req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.True(t, appErr.IsValidation())
	})
}

func TestStoryStatusValidation(t *testing.T) {
	svc := NewStoryService(&fakeStoryRepo{}, &fakeCaptcha{ok: true})

	_, err := svc.SetStatus(context.Background(), "s1", models.StoryStatus("published"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.True(t, appErr.IsValidation())
}

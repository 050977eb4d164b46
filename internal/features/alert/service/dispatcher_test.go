package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slotbot-backend/internal/features/alert/models"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

func recipients(n int) []*models.RecipientUser {
	out := make([]*models.RecipientUser, n)
	for i := range out {
		out[i] = &models.RecipientUser{
			AlertID: "a1",
			UserID:  fmt.Sprintf("u%d", i),
			Email:   fmt.Sprintf("user%d@example.com", i),
		}
	}
	return out
}

func newTestDispatcher(repo *mockAlertRepository, mail *mockMailer) (*Dispatcher, *[]time.Duration) {
	d := NewDispatcher(repo, mail, "https://beatonlineslots.com")
	var sleeps []time.Duration
	d.sleep = func(dur time.Duration) {
		sleeps = append(sleeps, dur)
	}
	return d, &sleeps
}

func TestDispatcherThrottling(t *testing.T) {
	repo := new(mockAlertRepository)
	mail := new(mockMailer)
	d, sleeps := newTestDispatcher(repo, mail)

	alert := &models.Alert{ID: "a1", Message: "test"}
	repo.On("RecipientsWithUsers", mock.Anything, "a1").Return(recipients(10), nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := d.SendAlertEmails(context.Background(), alert, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Sent)
	assert.Equal(t, 0, result.Failed)

	// 10 sends: 7 intra-batch delays, then the batch pause after the 8th,
	// then 1 more intra-batch delay. No delay before the first send.
	want := []time.Duration{
		125 * time.Millisecond, 125 * time.Millisecond, 125 * time.Millisecond,
		125 * time.Millisecond, 125 * time.Millisecond, 125 * time.Millisecond,
		125 * time.Millisecond,
		time.Second,
		125 * time.Millisecond,
	}
	assert.Equal(t, want, *sleeps)
	mail.AssertNumberOfCalls(t, "Send", 10)
}

func TestDispatcherSkipsOptedOut(t *testing.T) {
	repo := new(mockAlertRepository)
	mail := new(mockMailer)
	d, sleeps := newTestDispatcher(repo, mail)

	optedOut := false
	rcpts := recipients(3)
	rcpts[1].EmailOptIn = &optedOut

	alert := &models.Alert{ID: "a1", Message: "test"}
	repo.On("RecipientsWithUsers", mock.Anything, "a1").Return(rcpts, nil)
	mail.On("Send", mock.Anything, "user0@example.com", mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, "user2@example.com", mock.Anything, mock.Anything).Return(nil)

	result, err := d.SendAlertEmails(context.Background(), alert, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Len(t, *sleeps, 1)
	mail.AssertNotCalled(t, "Send", mock.Anything, "user1@example.com", mock.Anything, mock.Anything)
}

func TestDispatcherCountsFailures(t *testing.T) {
	repo := new(mockAlertRepository)
	mail := new(mockMailer)
	d, _ := newTestDispatcher(repo, mail)

	alert := &models.Alert{ID: "a1", Message: "test"}
	repo.On("RecipientsWithUsers", mock.Anything, "a1").Return(recipients(4), nil)
	mail.On("Send", mock.Anything, "user0@example.com", mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, "user1@example.com", mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))
	mail.On("Send", mock.Anything, "user2@example.com", mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, "user3@example.com", mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))

	result, err := d.SendAlertEmails(context.Background(), alert, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 2, result.Failed)
}

func TestDispatcherNoRecipients(t *testing.T) {
	repo := new(mockAlertRepository)
	mail := new(mockMailer)
	d, sleeps := newTestDispatcher(repo, mail)

	alert := &models.Alert{ID: "a1", Message: "test"}
	repo.On("RecipientsWithUsers", mock.Anything, "a1").Return([]*models.RecipientUser{}, nil)

	result, err := d.SendAlertEmails(context.Background(), alert, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Empty(t, *sleeps)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"slotbot-backend/internal/features/alert/models"
	casinomodels "slotbot-backend/internal/features/casino/models"
	usermodels "slotbot-backend/internal/features/user/models"
)

type mockAlertRepository struct {
	mock.Mock
}

func (m *mockAlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	return m.Called(ctx, alert).Error(0)
}

func (m *mockAlertRepository) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *mockAlertRepository) ListLive(ctx context.Context, now time.Time) ([]*models.Alert, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Alert), args.Error(1)
}

func (m *mockAlertRepository) AddRecipients(ctx context.Context, alertID string, userIDs []string) error {
	return m.Called(ctx, alertID, userIDs).Error(0)
}

func (m *mockAlertRepository) RecipientsWithUsers(ctx context.Context, alertID string) ([]*models.RecipientUser, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecipientUser), args.Error(1)
}

func (m *mockAlertRepository) RecipientAlerts(ctx context.Context, userID string, now time.Time) ([]*models.RecipientAlert, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecipientAlert), args.Error(1)
}

func (m *mockAlertRepository) RecipientAlertIDs(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *mockAlertRepository) MarkRead(ctx context.Context, alertID, userID string) (bool, error) {
	args := m.Called(ctx, alertID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAlertRepository) AddClick(ctx context.Context, click *models.AlertClick) error {
	return m.Called(ctx, click).Error(0)
}

func (m *mockAlertRepository) Clicks(ctx context.Context, limit, offset int) ([]*models.ClickReportRow, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.ClickReportRow), args.Int(1), args.Error(2)
}

func (m *mockAlertRepository) CountClicks(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *usermodels.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*usermodels.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodels.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*usermodels.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodels.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*usermodels.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usermodels.User), args.Error(1)
}

func (m *mockUserRepository) UpdateSettings(ctx context.Context, id string, update *usermodels.SettingsUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockUserRepository) SetEmailOptIn(ctx context.Context, id string, enabled bool) error {
	return m.Called(ctx, id, enabled).Error(0)
}

func (m *mockUserRepository) TrialsExpiringBetween(ctx context.Context, from, to time.Time) ([]*usermodels.User, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usermodels.User), args.Error(1)
}

func (m *mockUserRepository) SavePushSubscription(ctx context.Context, sub *usermodels.PushSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockUserRepository) PushSubscriptions(ctx context.Context, userID string) ([]*usermodels.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usermodels.PushSubscription), args.Error(1)
}

type mockCasinoRepository struct {
	mock.Mock
}

func (m *mockCasinoRepository) Create(ctx context.Context, casino *casinomodels.Casino) error {
	return m.Called(ctx, casino).Error(0)
}

func (m *mockCasinoRepository) GetByID(ctx context.Context, id string) (*casinomodels.Casino, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casinomodels.Casino), args.Error(1)
}

func (m *mockCasinoRepository) GetByCleanName(ctx context.Context, cleanName string) (*casinomodels.Casino, error) {
	args := m.Called(ctx, cleanName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casinomodels.Casino), args.Error(1)
}

func (m *mockCasinoRepository) ListApproved(ctx context.Context) ([]*casinomodels.Casino, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*casinomodels.Casino), args.Error(1)
}

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
	"slotbot-backend/internal/common/validation"
	"slotbot-backend/internal/features/alert/models"
	"slotbot-backend/internal/features/alert/repository"
	casinomodels "slotbot-backend/internal/features/casino/models"
	casinorepo "slotbot-backend/internal/features/casino/repository"
	usermodels "slotbot-backend/internal/features/user/models"
	userrepo "slotbot-backend/internal/features/user/repository"
	"slotbot-backend/internal/platform/push"
)

// PushSender delivers one web push notification to one subscription.
type PushSender interface {
	Send(ctx context.Context, sub *usermodels.PushSubscription, n *push.Notification) error
	Enabled() bool
}

// directClickPrefix marks synthetic click ids for direct-casino traffic, so
// alert-driven and direct clicks share one analytics table.
const directClickPrefix = "direct-"

// pushDedupWindow suppresses duplicate push notifications per (alert, user).
// Best-effort only; losing the keys on restart is acceptable.
const pushDedupWindow = 6 * time.Hour

// clickStatsCacheKey is refreshed by the background stats warmer.
const clickStatsCacheKey = "stats:clicks_24h"

type AlertService interface {
	Create(ctx context.Context, creatorID string, input *models.AlertCreateRequest) (*models.Alert, *models.DispatchResult, error)
	ForUser(ctx context.Context, user *usermodels.User) ([]*models.AlertResponse, error)
	MarkRead(ctx context.Context, userID, alertID string) error
	Check(ctx context.Context, user *usermodels.User) ([]*models.AlertResponse, error)
	ResolveClick(ctx context.Context, alertID string, user *usermodels.User) (string, error)
	DirectCasinoClick(ctx context.Context, cleanName string, user *usermodels.User) (string, error)
	ClickReport(ctx context.Context, page, perPage int) ([]*models.ClickReportRow, int, error)
	ClickStats(ctx context.Context) (int, error)
}

type alertService struct {
	repo       repository.AlertRepository
	users      userrepo.UserRepository
	casinos    casinorepo.CasinoRepository
	dispatcher *Dispatcher
	push       PushSender
	cache      *cache.CacheService
	now        func() time.Time
}

func NewAlertService(
	repo repository.AlertRepository,
	users userrepo.UserRepository,
	casinos casinorepo.CasinoRepository,
	dispatcher *Dispatcher,
	pushSender PushSender,
	cacheService *cache.CacheService,
) AlertService {
	return &alertService{
		repo:       repo,
		users:      users,
		casinos:    casinos,
		dispatcher: dispatcher,
		push:       pushSender,
		cache:      cacheService,
		now:        time.Now,
	}
}

// Create persists the alert, materializes its recipient snapshot from the
// current user population and synchronously dispatches the email fanout.
// Email failures are logged but never fail alert creation.
func (s *alertService) Create(ctx context.Context, creatorID string, input *models.AlertCreateRequest) (*models.Alert, *models.DispatchResult, error) {
	if err := validation.AlertMessage(input.Message); err != nil {
		return nil, nil, apperrors.NewValidationError("message", err.Error())
	}
	if err := validation.AlertDuration(input.Duration); err != nil {
		return nil, nil, apperrors.NewValidationError("duration", err.Error())
	}
	if err := validation.TargetList(input.GeoTargets); err != nil {
		return nil, nil, apperrors.NewValidationError("geo_targets", err.Error())
	}
	if err := validation.TargetList(input.ReferralCodes); err != nil {
		return nil, nil, apperrors.NewValidationError("referral_codes", err.Error())
	}

	var casino *casinomodels.Casino
	var casinoID *string
	casinoName := input.CasinoName
	if input.CasinoID != "" {
		found, err := s.casinos.GetByID(ctx, input.CasinoID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, apperrors.NewCasinoNotFoundError(input.CasinoID)
			}
			return nil, nil, apperrors.NewDatabaseError("get casino", err)
		}
		casino = found
		casinoID = &found.ID
		if casinoName == "" {
			casinoName = found.Name
		}
	}

	now := s.now()
	targeting := models.NewTargeting(input.GeoTargets, input.ReferralCodes)

	alert := &models.Alert{
		ID:      uuid.New().String(),
		Message: input.Message,
		// Stored in normalized form: empty lists become ["all"].
		GeoTargets:     targeting.Geo.Strings(),
		ReferralCodes:  targeting.Referral.Strings(),
		StartTime:      now,
		EndTime:        now.Add(time.Duration(input.Duration) * time.Minute),
		CasinoID:       casinoID,
		CasinoName:     casinoName,
		Slot:           input.Slot,
		SlotImage:      input.SlotImage,
		CustomURL:      input.CustomURL,
		MaxPotential:   input.MaxPotential,
		RecommendedBet: input.RecommendedBet,
		StopLimit:      input.StopLimit,
		TargetWin:      input.TargetWin,
		MaxWin:         input.MaxWin,
		RTP:            input.RTP,
		CreatedBy:      creatorID,
		CreatedAt:      now,
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, nil, apperrors.NewDatabaseError("create alert", err)
	}

	matched, err := s.materializeRecipients(ctx, alert, targeting, now)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().
		Str("alert_id", alert.ID).
		Int("recipients", matched).
		Msg("Alert created and recipients materialized")

	result, err := s.dispatcher.SendAlertEmails(ctx, alert, casino)
	if err != nil {
		// Alert creation succeeds regardless of email delivery.
		logger.Error().Str("alert_id", alert.ID).Err(err).Msg("Alert email dispatch failed")
		result = &models.DispatchResult{}
	}

	return alert, result, nil
}

func (s *alertService) materializeRecipients(ctx context.Context, alert *models.Alert, targeting models.Targeting, now time.Time) (int, error) {
	population, err := s.users.List(ctx)
	if err != nil {
		return 0, apperrors.NewDatabaseError("list users", err)
	}

	var userIDs []string
	for _, u := range population {
		if targeting.Eligible(u, now) {
			userIDs = append(userIDs, u.ID)
		}
	}

	if err := s.repo.AddRecipients(ctx, alert.ID, userIDs); err != nil {
		return 0, apperrors.NewDatabaseError("add recipients", err)
	}
	return len(userIDs), nil
}

// ForUser returns the caller's unexpired recipient alerts, re-matched
// against the user's current geo and referral code. Access is deliberately
// not re-checked here; only accessible recipients were ever materialized.
func (s *alertService) ForUser(ctx context.Context, user *usermodels.User) ([]*models.AlertResponse, error) {
	now := s.now()
	rows, err := s.repo.RecipientAlerts(ctx, user.ID, now)
	if err != nil {
		return nil, apperrors.NewDatabaseError("recipient alerts", err)
	}

	responses := make([]*models.AlertResponse, 0, len(rows))
	for _, row := range rows {
		if !row.Alert.Targeting().MatchesProfile(user.Geo, user.ReferralCode) {
			continue
		}
		responses = append(responses, &models.AlertResponse{
			Alert:  row.Alert,
			Read:   row.Read,
			Status: row.Alert.StatusAt(now),
		})
	}
	return responses, nil
}

// MarkRead flips the caller's read flag. Idempotent when the recipient row
// exists; fails identically on every call when it does not.
func (s *alertService) MarkRead(ctx context.Context, userID, alertID string) error {
	ok, err := s.repo.MarkRead(ctx, alertID, userID)
	if err != nil {
		return apperrors.NewDatabaseError("mark read", err)
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotRecipient,
			fmt.Sprintf("No recipient record for alert %s", alertID)).
			WithDetail("alert_id", alertID)
	}
	return nil
}

// Check recomputes the caller's eligibility over all live alerts, creates
// any missing recipient rows and push-notifies only the newly created ones.
// It returns the caller's currently-active alerts.
func (s *alertService) Check(ctx context.Context, user *usermodels.User) ([]*models.AlertResponse, error) {
	now := s.now()

	live, err := s.repo.ListLive(ctx, now)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list live alerts", err)
	}

	existing, err := s.repo.RecipientAlertIDs(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("recipient alert ids", err)
	}

	var newAlerts []*models.Alert
	for _, alert := range live {
		if existing[alert.ID] {
			continue
		}
		if alert.Targeting().Eligible(user, now) {
			newAlerts = append(newAlerts, alert)
		}
	}

	if len(newAlerts) > 0 {
		// Conflict-ignoring insert keeps a concurrent check from another
		// tab from failing here.
		for _, alert := range newAlerts {
			if err := s.repo.AddRecipients(ctx, alert.ID, []string{user.ID}); err != nil {
				return nil, apperrors.NewDatabaseError("add recipient", err)
			}
		}
		s.notifyNewRecipient(ctx, user, newAlerts)
	}

	responses, err := s.ForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	active := make([]*models.AlertResponse, 0, len(responses))
	for _, r := range responses {
		if r.Status == models.StatusActive {
			active = append(active, r)
		}
	}
	return active, nil
}

// notifyNewRecipient sends one push notification per newly materialized
// alert. Failures are logged only; push is best-effort by design.
func (s *alertService) notifyNewRecipient(ctx context.Context, user *usermodels.User, alerts []*models.Alert) {
	if s.push == nil || !s.push.Enabled() {
		return
	}

	subs, err := s.users.PushSubscriptions(ctx, user.ID)
	if err != nil {
		logger.Warn().Str("user_id", user.ID).Err(err).Msg("Failed to load push subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	for _, alert := range alerts {
		dedupKey := fmt.Sprintf("push_dedup:%s:%s", alert.ID, user.ID)
		won, err := s.cache.Acquire(ctx, dedupKey, pushDedupWindow)
		if err != nil {
			logger.Warn().Err(err).Msg("Push dedup check failed")
			continue
		}
		if !won {
			continue
		}

		notification := &push.Notification{
			Title: "New slot alert",
			Body:  alert.Message,
			URL:   "/alerts",
		}
		if alert.Slot != "" {
			notification.Title = fmt.Sprintf("New alert: %s", alert.Slot)
		}

		for _, sub := range subs {
			if err := s.push.Send(ctx, sub, notification); err != nil {
				logger.Warn().
					Str("alert_id", alert.ID).
					Str("user_id", user.ID).
					Err(err).
					Msg("Push notification failed")
			}
		}
	}
}

// ResolveClick records one outbound click for an alert and returns the
// redirect destination. Precedence: custom URL, then the linked casino's
// URL, then the site root. Resolution failures degrade to the root fallback;
// only an unknown alert id is surfaced as not-found.
func (s *alertService) ResolveClick(ctx context.Context, alertID string, user *usermodels.User) (string, error) {
	alert, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NewAlertNotFoundError(alertID)
		}
		return "", apperrors.NewDatabaseError("get alert", err)
	}

	destination := "/"
	switch {
	case alert.CustomURL != "":
		destination = casinomodels.EnsureScheme(alert.CustomURL)
	case alert.CasinoID != nil:
		casino, err := s.casinos.GetByID(ctx, *alert.CasinoID)
		if err != nil {
			// Fail open: broken casino reference still redirects home.
			logger.Warn().Str("alert_id", alertID).Err(err).Msg("Click casino resolution failed")
		} else {
			destination = casino.PlayURL()
		}
	}

	if err := s.recordClick(ctx, alert.ID, user); err != nil {
		return "", err
	}
	return destination, nil
}

// DirectCasinoClick records a click for direct casino traffic under a
// synthesized composite id and returns the casino URL.
func (s *alertService) DirectCasinoClick(ctx context.Context, cleanName string, user *usermodels.User) (string, error) {
	casino, err := s.casinos.GetByCleanName(ctx, cleanName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NewCasinoNotFoundError(cleanName)
		}
		return "", apperrors.NewDatabaseError("get casino", err)
	}
	if !casino.Approved {
		return "", apperrors.NewCasinoNotFoundError(cleanName)
	}

	if err := s.recordClick(ctx, directClickPrefix+casino.ID, user); err != nil {
		return "", err
	}
	return casino.PlayURL(), nil
}

func (s *alertService) recordClick(ctx context.Context, alertID string, user *usermodels.User) error {
	click := &models.AlertClick{
		ID:        uuid.New().String(),
		AlertID:   alertID,
		CreatedAt: s.now(),
	}

	if user != nil {
		// Geo is looked up fresh from the user record at click time and
		// denormalized so the history survives later profile edits.
		click.UserID = &user.ID
		click.Username = user.Email
		click.Email = user.Email
		if fresh, err := s.users.GetByID(ctx, user.ID); err == nil {
			click.Geo = fresh.Geo
		} else {
			click.Geo = user.Geo
		}
	}

	if err := s.repo.AddClick(ctx, click); err != nil {
		return apperrors.NewDatabaseError("record click", err)
	}
	return nil
}

// ClickReport returns one page of the admin click report.
func (s *alertService) ClickReport(ctx context.Context, page, perPage int) ([]*models.ClickReportRow, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 500 {
		perPage = 50
	}

	rows, total, err := s.repo.Clicks(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("click report", err)
	}
	return rows, total, nil
}

// ClickStats returns the 24h click counter, served from the cache the
// background warmer maintains, falling back to a direct count on a miss.
func (s *alertService) ClickStats(ctx context.Context) (int, error) {
	if s.cache != nil {
		var count int
		if err := s.cache.Get(ctx, clickStatsCacheKey, &count); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountClicks(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		return 0, apperrors.NewDatabaseError("count clicks", err)
	}
	return count, nil
}

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"slotbot-backend/internal/common/cache"
	"slotbot-backend/internal/common/logger"
	alertrepo "slotbot-backend/internal/features/alert/repository"
	userrepo "slotbot-backend/internal/features/user/repository"
	"slotbot-backend/internal/platform/mailer"
)

const (
	trialReminderInterval = 24 * time.Hour
	trialReminderWindow   = 24 * time.Hour
	// One reminder per user per trial; the dedup key outlives the window.
	trialReminderDedup = 72 * time.Hour

	clickStatsInterval = 10 * time.Minute
	clickStatsWindow   = 24 * time.Hour
	clickStatsCacheKey = "stats:clicks_24h"
)

// Scheduler owns the background jobs: trial expiry reminder emails and the
// click stats cache warmer.
type Scheduler struct {
	scheduler     gocron.Scheduler
	users         userrepo.UserRepository
	alerts        alertrepo.AlertRepository
	mailer        *mailer.Client
	cache         *cache.CacheService
	statsCacheTTL time.Duration
}

func NewScheduler(
	users userrepo.UserRepository,
	alerts alertrepo.AlertRepository,
	mailClient *mailer.Client,
	cacheService *cache.CacheService,
	statsCacheTTL time.Duration,
) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler:     sched,
		users:         users,
		alerts:        alerts,
		mailer:        mailClient,
		cache:         cacheService,
		statsCacheTTL: statsCacheTTL,
	}, nil
}

func (s *Scheduler) Start() error {
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(trialReminderInterval),
		gocron.NewTask(s.sendTrialReminders),
	); err != nil {
		return fmt.Errorf("failed to schedule trial reminders: %w", err)
	}

	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(clickStatsInterval),
		gocron.NewTask(s.warmClickStats),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return fmt.Errorf("failed to schedule click stats warmer: %w", err)
	}

	s.scheduler.Start()
	logger.Info().Msg("Background scheduler started")
	return nil
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// sendTrialReminders emails users whose trial lapses within the next day.
func (s *Scheduler) sendTrialReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	expiring, err := s.users.TrialsExpiringBetween(ctx, now, now.Add(trialReminderWindow))
	if err != nil {
		logger.Error().Err(err).Msg("Trial reminder query failed")
		return
	}

	sent := 0
	for _, user := range expiring {
		if !user.EmailEnabled() {
			continue
		}

		dedupKey := fmt.Sprintf("trial_reminder:%s", user.ID)
		won, err := s.cache.Acquire(ctx, dedupKey, trialReminderDedup)
		if err != nil {
			logger.Warn().Err(err).Msg("Trial reminder dedup check failed")
			continue
		}
		if !won {
			continue
		}

		subject := "Your trial is about to expire"
		body := fmt.Sprintf(
			"<p>Your trial access ends on %s. Upgrade now to keep receiving slot alerts.</p>",
			user.TrialUntil.Format("January 2, 2006"),
		)
		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			logger.Warn().Str("user_id", user.ID).Err(err).Msg("Trial reminder email failed")
			continue
		}
		sent++
	}

	logger.Info().Int("candidates", len(expiring)).Int("sent", sent).Msg("Trial reminder run finished")
}

// warmClickStats refreshes the cached 24h click counter used by the admin
// dashboard.
func (s *Scheduler) warmClickStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.alerts.CountClicks(ctx, time.Now().Add(-clickStatsWindow))
	if err != nil {
		logger.Error().Err(err).Msg("Click stats query failed")
		return
	}

	if err := s.cache.Set(ctx, clickStatsCacheKey, count, s.statsCacheTTL); err != nil {
		logger.Error().Err(err).Msg("Click stats cache write failed")
		return
	}
	logger.Debug().Int("clicks_24h", count).Msg("Click stats cache refreshed")
}

package service

import (
	"context"
	"time"

	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/features/alert/models"
	"slotbot-backend/internal/features/alert/repository"
	casinomodels "slotbot-backend/internal/features/casino/models"
)

// MailSender is the outbound transactional email capability.
type MailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

const (
	dispatchBatchSize = 8
	// 125ms between sends keeps us at <=8 emails/sec, under the
	// provider's 10/sec ceiling.
	intraBatchDelay = 125 * time.Millisecond
	// Extra pause after each full batch as safety margin.
	interBatchPause = time.Second
)

// Dispatcher fans an alert out to its recipient snapshot by email, throttled
// to respect the mail provider's rate limit.
type Dispatcher struct {
	repo    repository.AlertRepository
	mailer  MailSender
	baseURL string
	sleep   func(time.Duration)
}

func NewDispatcher(repo repository.AlertRepository, mailer MailSender, baseURL string) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		mailer:  mailer,
		baseURL: baseURL,
		sleep:   time.Sleep,
	}
}

// SendAlertEmails emails every eligible recipient of the alert and returns
// aggregate counts. Individual send failures are counted, never fatal; the
// error return covers only the recipient query itself.
func (d *Dispatcher) SendAlertEmails(ctx context.Context, alert *models.Alert, casino *casinomodels.Casino) (*models.DispatchResult, error) {
	recipients, err := d.repo.RecipientsWithUsers(ctx, alert.ID)
	if err != nil {
		return nil, err
	}

	eligible := make([]*models.RecipientUser, 0, len(recipients))
	for _, rcpt := range recipients {
		if rcpt.EmailEnabled() {
			eligible = append(eligible, rcpt)
		}
	}

	result := &models.DispatchResult{}
	if len(eligible) == 0 {
		return result, nil
	}

	for i, rcpt := range eligible {
		if i > 0 {
			if i%dispatchBatchSize == 0 {
				d.sleep(interBatchPause)
			} else {
				d.sleep(intraBatchDelay)
			}
		}

		subject, html := renderAlertEmail(alert, casino, rcpt, d.baseURL)
		if err := d.mailer.Send(ctx, rcpt.Email, subject, html); err != nil {
			result.Failed++
			logger.Warn().
				Str("alert_id", alert.ID).
				Str("email", rcpt.Email).
				Err(err).
				Msg("Alert email send failed")
			continue
		}
		result.Sent++
	}

	logger.Info().
		Str("alert_id", alert.ID).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("Alert email dispatch finished")

	return result, nil
}

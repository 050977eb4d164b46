package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"slotbot-backend/internal/features/alert/models"
	"slotbot-backend/internal/features/alert/repository"

	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.AlertRepository {
	return &postgresRepository{db: db}
}

const alertColumns = `id, message, geo_targets, referral_codes, start_time, end_time,
	casino_id, casino_name, slot, slot_image, custom_url,
	max_potential, recommended_bet, stop_limit, target_win, max_win, rtp,
	created_by, created_at`

func (r *postgresRepository) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Message, pq.Array(alert.GeoTargets), pq.Array(alert.ReferralCodes),
		alert.StartTime, alert.EndTime,
		alert.CasinoID, alert.CasinoName, alert.Slot, alert.SlotImage, alert.CustomURL,
		alert.MaxPotential, alert.RecommendedBet, alert.StopLimit,
		alert.TargetWin, alert.MaxWin, alert.RTP,
		alert.CreatedBy, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	return scanAlert(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) ListLive(ctx context.Context, now time.Time) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE end_time >= $1 ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list live alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		alert, err := scanAlertRows(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *postgresRepository) AddRecipients(ctx context.Context, alertID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO alert_recipients (alert_id, user_id, read, created_at)
		SELECT $1, unnest($2::text[]), false, now()
		ON CONFLICT (alert_id, user_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, alertID, pq.Array(userIDs))
	if err != nil {
		return fmt.Errorf("failed to add recipients: %w", err)
	}
	return nil
}

func (r *postgresRepository) RecipientsWithUsers(ctx context.Context, alertID string) ([]*models.RecipientUser, error) {
	query := `
		SELECT ar.alert_id, ar.user_id, u.email, u.email_opt_in, u.geo, ar.read
		FROM alert_recipients ar
		JOIN users u ON u.id = ar.user_id
		WHERE ar.alert_id = $1
		ORDER BY ar.created_at`

	rows, err := r.db.QueryContext(ctx, query, alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipients: %w", err)
	}
	defer rows.Close()

	var recipients []*models.RecipientUser
	for rows.Next() {
		rec := &models.RecipientUser{}
		var optIn sql.NullBool
		if err := rows.Scan(&rec.AlertID, &rec.UserID, &rec.Email, &optIn, &rec.Geo, &rec.Read); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		if optIn.Valid {
			b := optIn.Bool
			rec.EmailOptIn = &b
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

func (r *postgresRepository) RecipientAlerts(ctx context.Context, userID string, now time.Time) ([]*models.RecipientAlert, error) {
	query := `
		SELECT ` + prefixedAlertColumns("a") + `, ar.read
		FROM alert_recipients ar
		JOIN alerts a ON a.id = ar.alert_id
		WHERE ar.user_id = $1 AND a.end_time >= $2
		ORDER BY a.start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipient alerts: %w", err)
	}
	defer rows.Close()

	var result []*models.RecipientAlert
	for rows.Next() {
		ra := &models.RecipientAlert{}
		if err := scanAlertInto(rows, &ra.Alert, &ra.Read); err != nil {
			return nil, err
		}
		result = append(result, ra)
	}
	return result, rows.Err()
}

func (r *postgresRepository) RecipientAlertIDs(ctx context.Context, userID string) (map[string]bool, error) {
	query := `SELECT alert_id FROM alert_recipients WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipient alert ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan alert id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (r *postgresRepository) MarkRead(ctx context.Context, alertID, userID string) (bool, error) {
	query := `UPDATE alert_recipients SET read = true WHERE alert_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, alertID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to mark alert as read: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *postgresRepository) AddClick(ctx context.Context, click *models.AlertClick) error {
	query := `
		INSERT INTO alert_clicks (id, alert_id, user_id, username, email, geo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		click.ID, click.AlertID, click.UserID, click.Username, click.Email, click.Geo, click.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

func (r *postgresRepository) Clicks(ctx context.Context, limit, offset int) ([]*models.ClickReportRow, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM alert_clicks`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	query := `
		SELECT c.id, c.alert_id, COALESCE(a.message, ''), COALESCE(a.casino_name, ''),
		       c.username, c.email, c.geo, c.created_at
		FROM alert_clicks c
		LEFT JOIN alerts a ON a.id = c.alert_id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var report []*models.ClickReportRow
	for rows.Next() {
		row := &models.ClickReportRow{}
		if err := rows.Scan(&row.ClickID, &row.AlertID, &row.Message, &row.CasinoName,
			&row.Username, &row.Email, &row.Geo, &row.ClickedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan click row: %w", err)
		}
		report = append(report, row)
	}
	return report, total, rows.Err()
}

func (r *postgresRepository) CountClicks(ctx context.Context, since time.Time) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM alert_clicks WHERE created_at >= $1`, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return total, nil
}

// scanner abstracts sql.Row and sql.Rows for the shared alert scan.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row *sql.Row) (*models.Alert, error) {
	alert := &models.Alert{}
	if err := scanAlertInto(row, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func scanAlertRows(rows *sql.Rows) (*models.Alert, error) {
	alert := &models.Alert{}
	if err := scanAlertInto(rows, alert); err != nil {
		return nil, fmt.Errorf("failed to scan alert: %w", err)
	}
	return alert, nil
}

func scanAlertInto(s scanner, alert *models.Alert, extra ...interface{}) error {
	var geo, refs pq.StringArray
	var casinoID, casinoName, slot, slotImage, customURL sql.NullString

	dest := []interface{}{
		&alert.ID, &alert.Message, &geo, &refs, &alert.StartTime, &alert.EndTime,
		&casinoID, &casinoName, &slot, &slotImage, &customURL,
		&alert.MaxPotential, &alert.RecommendedBet, &alert.StopLimit,
		&alert.TargetWin, &alert.MaxWin, &alert.RTP,
		&alert.CreatedBy, &alert.CreatedAt,
	}
	dest = append(dest, extra...)

	if err := s.Scan(dest...); err != nil {
		return err
	}

	alert.GeoTargets = []string(geo)
	alert.ReferralCodes = []string(refs)
	if casinoID.Valid {
		id := casinoID.String
		alert.CasinoID = &id
	}
	alert.CasinoName = casinoName.String
	alert.Slot = slot.String
	alert.SlotImage = slotImage.String
	alert.CustomURL = customURL.String
	return nil
}

func prefixedAlertColumns(alias string) string {
	return alias + `.id, ` + alias + `.message, ` + alias + `.geo_targets, ` + alias + `.referral_codes, ` +
		alias + `.start_time, ` + alias + `.end_time, ` +
		alias + `.casino_id, ` + alias + `.casino_name, ` + alias + `.slot, ` + alias + `.slot_image, ` + alias + `.custom_url, ` +
		alias + `.max_potential, ` + alias + `.recommended_bet, ` + alias + `.stop_limit, ` +
		alias + `.target_win, ` + alias + `.max_win, ` + alias + `.rtp, ` +
		alias + `.created_by, ` + alias + `.created_at`
}

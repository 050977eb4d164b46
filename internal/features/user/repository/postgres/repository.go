package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"slotbot-backend/internal/features/user/models"
	"slotbot-backend/internal/features/user/repository"

	_ "github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

const userColumns = `id, email, password_hash, geo, referral_code, paid, trial_until, email_opt_in, click_id, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Geo, user.ReferralCode,
		user.Paid, user.TrialUntil, user.EmailOptIn, user.ClickID,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *postgresRepository) UpdateSettings(ctx context.Context, id string, update *models.SettingsUpdate) error {
	query := `
		UPDATE users
		SET geo = COALESCE($2, geo),
		    email_opt_in = COALESCE($3, email_opt_in),
		    updated_at = now()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, update.Geo, update.EmailOptIn)
	if err != nil {
		return fmt.Errorf("failed to update user settings: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) SetEmailOptIn(ctx context.Context, id string, enabled bool) error {
	query := `UPDATE users SET email_opt_in = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, enabled)
	if err != nil {
		return fmt.Errorf("failed to set email opt-in: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) TrialsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE paid = false AND trial_until >= $1 AND trial_until < $2`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring trials: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *postgresRepository) SavePushSubscription(ctx context.Context, sub *models.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, endpoint) DO UPDATE SET p256dh = $4, auth = $5`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	return nil
}

func (r *postgresRepository) PushSubscriptions(ctx context.Context, userID string) ([]*models.PushSubscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions
		WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.PushSubscription
	for rows.Next() {
		sub := &models.PushSubscription{}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *postgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var trial sql.NullTime
	var optIn sql.NullBool
	var clickID sql.NullString

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Geo, &user.ReferralCode,
		&user.Paid, &trial, &optIn, &clickID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if trial.Valid {
		t := trial.Time
		user.TrialUntil = &t
	}
	if optIn.Valid {
		b := optIn.Bool
		user.EmailOptIn = &b
	}
	if clickID.Valid {
		user.ClickID = clickID.String
	}
	return user, nil
}

func (r *postgresRepository) scanAll(rows *sql.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var trial sql.NullTime
		var optIn sql.NullBool
		var clickID sql.NullString

		err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Geo, &user.ReferralCode,
			&user.Paid, &trial, &optIn, &clickID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		if trial.Valid {
			t := trial.Time
			user.TrialUntil = &t
		}
		if optIn.Valid {
			b := optIn.Bool
			user.EmailOptIn = &b
		}
		if clickID.Valid {
			user.ClickID = clickID.String
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

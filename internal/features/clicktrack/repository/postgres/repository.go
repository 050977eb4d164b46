package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"slotbot-backend/internal/features/clicktrack/models"
	"slotbot-backend/internal/features/clicktrack/repository"
)

type clickTrackRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ClickTrackRepository {
	return &clickTrackRepository{db: db}
}

func (r *clickTrackRepository) Create(ctx context.Context, track *models.ClickTrack) error {
	query := `
		INSERT INTO click_tracks (id, referrer, click_id, offer, geo, user_agent, ip, converted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		track.ID,
		track.Referrer,
		track.ClickID,
		track.Offer,
		track.Geo,
		track.UserAgent,
		track.IP,
		track.Converted,
		track.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert click track: %w", err)
	}
	return nil
}

func (r *clickTrackRepository) MarkConverted(ctx context.Context, clickID string) (bool, error) {
	query := `UPDATE click_tracks SET converted = true WHERE click_id = $1`

	result, err := r.db.ExecContext(ctx, query, clickID)
	if err != nil {
		return false, fmt.Errorf("failed to mark click track converted: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

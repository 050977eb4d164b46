package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"slotbot-backend/internal/features/story/models"
	"slotbot-backend/internal/features/story/repository"
)

const storyColumns = "id, user_id, slot, win_amount, text, status, created_at, updated_at"

type storyRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	query := `
		INSERT INTO stories (` + storyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		story.ID,
		story.UserID,
		story.Slot,
		story.WinAmount,
		story.Text,
		story.Status,
		story.CreatedAt,
		story.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert story: %w", err)
	}
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`

	var story models.Story
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&story.ID,
		&story.UserID,
		&story.Slot,
		&story.WinAmount,
		&story.Text,
		&story.Status,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

func (r *storyRepository) ListByStatus(ctx context.Context, status models.StoryStatus) ([]*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		var story models.Story
		if err := rows.Scan(
			&story.ID,
			&story.UserID,
			&story.Slot,
			&story.WinAmount,
			&story.Text,
			&story.Status,
			&story.CreatedAt,
			&story.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, &story)
	}
	return stories, rows.Err()
}

func (r *storyRepository) UpdateStatus(ctx context.Context, id string, status models.StoryStatus) error {
	query := `UPDATE stories SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update story status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

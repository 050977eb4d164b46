package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"slotbot-backend/internal/features/casino/models"
	"slotbot-backend/internal/features/casino/repository"

	_ "github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.CasinoRepository {
	return &postgresRepository{db: db}
}

const casinoColumns = `id, name, clean_name, url, logo, approved, created_at`

func (r *postgresRepository) Create(ctx context.Context, casino *models.Casino) error {
	query := `
		INSERT INTO casinos (` + casinoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		casino.ID, casino.Name, casino.CleanName, casino.URL, casino.Logo,
		casino.Approved, casino.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create casino: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Casino, error) {
	query := `SELECT ` + casinoColumns + ` FROM casinos WHERE id = $1`
	return scanCasino(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) GetByCleanName(ctx context.Context, cleanName string) (*models.Casino, error) {
	query := `SELECT ` + casinoColumns + ` FROM casinos WHERE clean_name = $1`
	return scanCasino(r.db.QueryRowContext(ctx, query, cleanName))
}

func (r *postgresRepository) ListApproved(ctx context.Context) ([]*models.Casino, error) {
	query := `SELECT ` + casinoColumns + ` FROM casinos WHERE approved = true ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list casinos: %w", err)
	}
	defer rows.Close()

	var casinos []*models.Casino
	for rows.Next() {
		casino := &models.Casino{}
		var logo sql.NullString
		if err := rows.Scan(&casino.ID, &casino.Name, &casino.CleanName, &casino.URL,
			&logo, &casino.Approved, &casino.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan casino: %w", err)
		}
		casino.Logo = logo.String
		casinos = append(casinos, casino)
	}
	return casinos, rows.Err()
}

func scanCasino(row *sql.Row) (*models.Casino, error) {
	casino := &models.Casino{}
	var logo sql.NullString
	err := row.Scan(&casino.ID, &casino.Name, &casino.CleanName, &casino.URL,
		&logo, &casino.Approved, &casino.CreatedAt)
	if err != nil {
		return nil, err
	}
	casino.Logo = logo.String
	return casino, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/cart/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// LoadLines implements RepositoryInterface.LoadLines
func (r *postgresRepository) LoadLines(ctx context.Context, userID uuid.UUID) (model.Lines, error) {
	query := `
		SELECT slug, variant_id, size_id, color, size_name, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}
	defer rows.Close()

	lines := model.Lines{}
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(
			&line.Slug,
			&line.VariantID,
			&line.SizeID,
			&line.Color,
			&line.Size,
			&line.Quantity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}

	return lines, nil
}

// SaveLines implements RepositoryInterface.SaveLines
// The whole cart is replaced in one transaction, mirroring a document
// write of the owner's line array. Positions renumber from zero so the
// stored order is always the slice order.
func (r *postgresRepository) SaveLines(ctx context.Context, userID uuid.UUID, lines model.Lines) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin cart save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	insert := `
		INSERT INTO cart_lines
			(user_id, position, slug, variant_id, size_id, color, size_name, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	for position, line := range lines {
		if _, err := tx.Exec(ctx, insert,
			userID,
			position,
			line.Slug,
			line.VariantID,
			line.SizeID,
			line.Color,
			line.Size,
			line.Quantity,
			now,
		); err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart save: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const confirmationColumns = `id, customer_id, service_id, step_name, status, duration_seconds, confirmed_at, created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new step confirmation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (Confirmation, error) {
	status := params.Status
	if status == "" {
		status = StatusConfirmed
	}

	query := `
		INSERT INTO step_confirmations (customer_id, service_id, step_name, status, duration_seconds, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + confirmationColumns

	c, err := scanConfirmation(r.pool.QueryRow(ctx, query,
		params.CustomerID, params.ServiceID, params.StepName, status, params.DurationSeconds, params.ConfirmedAt,
	))
	if err != nil {
		return Confirmation{}, fmt.Errorf("create step confirmation: %w", err)
	}
	return c, nil
}

// ListByCustomerID returns confirmations in the order they were recorded.
func (r *Repo) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Confirmation, error) {
	query := `SELECT ` + confirmationColumns + ` FROM step_confirmations WHERE customer_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list step confirmations: %w", err)
	}
	defer rows.Close()

	items := make([]Confirmation, 0)
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan step confirmation: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step confirmations: %w", err)
	}
	return items, nil
}

func scanConfirmation(row pgx.Row) (Confirmation, error) {
	var c Confirmation
	err := row.Scan(&c.ID, &c.CustomerID, &c.ServiceID, &c.StepName, &c.Status, &c.DurationSeconds, &c.ConfirmedAt, &c.CreatedAt)
	return c, err
}

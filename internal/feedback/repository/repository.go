package repository

import (
	"context"
	"errors"
	"fmt"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	feedbackColumns     = `id, customer_id, rating, feedback_text, submitted_at`
	foreignKeyViolation = "23503"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new feedback repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (Feedback, error) {
	query := `
		INSERT INTO feedback (customer_id, rating, feedback_text)
		VALUES ($1, $2, $3)
		RETURNING ` + feedbackColumns

	f, err := scanFeedback(r.pool.QueryRow(ctx, query, params.CustomerID, params.Rating, params.FeedbackText))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return Feedback{}, apperr.Validation("unknown customer")
		}
		return Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return f, nil
}

func (r *Repo) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE customer_id = $1 ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list feedback by customer: %w", err)
	}
	defer rows.Close()

	return scanAll(rows)
}

func (r *Repo) ListAll(ctx context.Context) ([]Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	return scanAll(rows)
}

func scanFeedback(row pgx.Row) (Feedback, error) {
	var f Feedback
	err := row.Scan(&f.ID, &f.CustomerID, &f.Rating, &f.FeedbackText, &f.SubmittedAt)
	return f, err
}

func scanAll(rows pgx.Rows) ([]Feedback, error) {
	items := make([]Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return items, nil
}

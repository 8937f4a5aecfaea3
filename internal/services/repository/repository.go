package repository

import (
	"context"
	"errors"
	"fmt"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	serviceNotFoundMessage = "service not found"
	serviceColumns         = `id, customer_id, service_type, description, status, created_at, updated_at`
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new services repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (ServiceRecord, error) {
	query := `
		INSERT INTO services (customer_id, service_type, description)
		VALUES ($1, $2, $3)
		RETURNING ` + serviceColumns

	s, err := scanService(r.pool.QueryRow(ctx, query, params.CustomerID, params.ServiceType, params.Description))
	if err != nil {
		return ServiceRecord{}, fmt.Errorf("create service: %w", err)
	}
	return s, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (ServiceRecord, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	s, err := scanService(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceRecord{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return ServiceRecord{}, fmt.Errorf("get service by id: %w", err)
	}
	return s, nil
}

func (r *Repo) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]ServiceRecord, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list services by customer: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func (r *Repo) ListByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]ServiceRecord, error) {
	if len(customerIDs) == 0 {
		return []ServiceRecord{}, nil
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE customer_id = ANY($1::uuid[]) ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("list services by customers: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func (r *Repo) ListAll(ctx context.Context) ([]ServiceRecord, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func (r *Repo) Update(ctx context.Context, params UpdateParams) (ServiceRecord, error) {
	query := `
		UPDATE services SET
			service_type = COALESCE($2, service_type),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + serviceColumns

	s, err := scanService(r.pool.QueryRow(ctx, query, params.ID, params.ServiceType, params.Description, params.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceRecord{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return ServiceRecord{}, fmt.Errorf("update service: %w", err)
	}
	return s, nil
}

func scanService(row pgx.Row) (ServiceRecord, error) {
	var s ServiceRecord
	err := row.Scan(&s.ID, &s.CustomerID, &s.ServiceType, &s.Description, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func scanServices(rows pgx.Rows) ([]ServiceRecord, error) {
	items := make([]ServiceRecord, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return items, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	customerNotFoundMessage = "customer not found"
	uniqueViolation         = "23505"

	customerColumns = `id, name, email, phone, license_number, address, city, state, postal_code, created_at, updated_at`
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (Customer, error) {
	query := `
		INSERT INTO customers (name, phone, email, license_number, address, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		params.Name, params.Phone, params.Email, params.LicenseNumber,
		params.Address, params.City, params.State, params.PostalCode,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, apperr.Conflict("a customer with this phone number already exists")
		}
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("get customer by id: %w", err)
	}
	return c, nil
}

func (r *Repo) GetByPhone(ctx context.Context, phone string) (Customer, bool, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, false, nil
		}
		return Customer{}, false, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, true, nil
}

func (r *Repo) List(ctx context.Context, search string) ([]Customer, error) {
	var searchParam interface{}
	if search != "" {
		searchParam = containsPattern(search)
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1::text IS NULL
			OR name ILIKE $1 ESCAPE '\'
			OR phone ILIKE $1 ESCAPE '\'
			OR license_number ILIKE $1 ESCAPE '\')
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, searchParam)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	items := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return items, nil
}

func (r *Repo) Update(ctx context.Context, params UpdateParams) (Customer, error) {
	query := `
		UPDATE customers SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			email = COALESCE($4, email),
			license_number = COALESCE($5, license_number),
			address = COALESCE($6, address),
			city = COALESCE($7, city),
			state = COALESCE($8, state),
			postal_code = COALESCE($9, postal_code),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Phone, params.Email, params.LicenseNumber,
		params.Address, params.City, params.State, params.PostalCode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Customer{}, apperr.Conflict("a customer with this phone number already exists")
		}
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNumber,
		&c.Address, &c.City, &c.State, &c.PostalCode, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches search literally anywhere in a column.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

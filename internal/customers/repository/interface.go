package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer is a person who used the kiosk, keyed by phone.
type Customer struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Email         *string   `db:"email"`
	Phone         string    `db:"phone"`
	LicenseNumber *string   `db:"license_number"`
	Address       *string   `db:"address"`
	City          *string   `db:"city"`
	State         *string   `db:"state"`
	PostalCode    *string   `db:"postal_code"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// CreateParams contains parameters for creating a customer.
type CreateParams struct {
	Name          string
	Phone         string
	Email         *string
	LicenseNumber *string
	Address       *string
	City          *string
	State         *string
	PostalCode    *string
}

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	ID            uuid.UUID
	Name          *string
	Phone         *string
	Email         *string
	LicenseNumber *string
	Address       *string
	City          *string
	State         *string
	PostalCode    *string
}

// CustomerReader provides read operations for customers.
type CustomerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	// GetByPhone returns (Customer{}, false, nil) when no customer has phone.
	GetByPhone(ctx context.Context, phone string) (Customer, bool, error)
	// List returns customers newest first. A non-empty search matches name,
	// phone or license number case-insensitively.
	List(ctx context.Context, search string) ([]Customer, error)
}

// CustomerWriter provides write operations for customers.
type CustomerWriter interface {
	Create(ctx context.Context, params CreateParams) (Customer, error)
	Update(ctx context.Context, params UpdateParams) (Customer, error)
}

// Repository combines all customer repository operations.
type Repository interface {
	CustomerReader
	CustomerWriter
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ServiceRecord is one transfer request made by a customer.
type ServiceRecord struct {
	ID          uuid.UUID `db:"id"`
	CustomerID  uuid.UUID `db:"customer_id"`
	ServiceType string    `db:"service_type"`
	Description *string   `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CreateParams contains parameters for creating a service record.
type CreateParams struct {
	CustomerID  uuid.UUID
	ServiceType string
	Description *string
}

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	ID          uuid.UUID
	ServiceType *string
	Description *string
	Status      *string
}

// ServiceReader provides read operations for service records.
type ServiceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (ServiceRecord, error)
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]ServiceRecord, error)
	ListByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]ServiceRecord, error)
	ListAll(ctx context.Context) ([]ServiceRecord, error)
}

// ServiceWriter provides write operations for service records.
type ServiceWriter interface {
	Create(ctx context.Context, params CreateParams) (ServiceRecord, error)
	Update(ctx context.Context, params UpdateParams) (ServiceRecord, error)
}

// Repository combines all service record operations.
type Repository interface {
	ServiceReader
	ServiceWriter
}

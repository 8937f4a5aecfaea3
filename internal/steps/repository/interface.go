package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatusConfirmed is the only status the kiosk writes today.
const StatusConfirmed = "confirmed"

// Confirmation records that a customer finished one processing step and how
// long it took.
type Confirmation struct {
	ID              uuid.UUID  `db:"id"`
	CustomerID      uuid.UUID  `db:"customer_id"`
	ServiceID       *uuid.UUID `db:"service_id"`
	StepName        string     `db:"step_name"`
	Status          string     `db:"status"`
	DurationSeconds int64      `db:"duration_seconds"`
	ConfirmedAt     *time.Time `db:"confirmed_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

// CreateParams contains parameters for recording a confirmation.
type CreateParams struct {
	CustomerID      uuid.UUID
	ServiceID       *uuid.UUID
	StepName        string
	Status          string
	DurationSeconds int64
	ConfirmedAt     time.Time
}

// Repository is the step confirmation persistence gateway.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Confirmation, error)
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Confirmation, error)
}

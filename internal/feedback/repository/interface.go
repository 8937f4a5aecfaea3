package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Feedback is one rating left at the end of the wizard. CustomerID is nil for
// anonymous feedback.
type Feedback struct {
	ID           uuid.UUID  `db:"id"`
	CustomerID   *uuid.UUID `db:"customer_id"`
	Rating       int        `db:"rating"`
	FeedbackText *string    `db:"feedback_text"`
	SubmittedAt  time.Time  `db:"submitted_at"`
}

// CreateParams contains parameters for storing feedback.
type CreateParams struct {
	CustomerID   *uuid.UUID
	Rating       int
	FeedbackText *string
}

// Repository is the feedback persistence gateway.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Feedback, error)
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Feedback, error)
	// ListAll returns every rating, newest first.
	ListAll(ctx context.Context) ([]Feedback, error)
}

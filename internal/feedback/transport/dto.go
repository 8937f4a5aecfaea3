package transport

import (
	"time"

	"github.com/google/uuid"
)

// SubmitFeedbackRequest is the feedback form. CustomerID is optional.
type SubmitFeedbackRequest struct {
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Rating     Rating     `json:"rating" validate:"min=1,max=5"`
	Message    *string    `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// FeedbackResponse represents stored feedback.
type FeedbackResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  *uuid.UUID `json:"customerId,omitempty"`
	Rating      int        `json:"rating"`
	Message     *string    `json:"message,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

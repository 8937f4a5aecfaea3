package transport

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationResponse is one recorded step.
type ConfirmationResponse struct {
	ID              uuid.UUID  `json:"id"`
	ServiceID       *uuid.UUID `json:"serviceId,omitempty"`
	StepName        string     `json:"stepName"`
	Status          string     `json:"status"`
	DurationSeconds int64      `json:"durationSeconds"`
	Duration        string     `json:"duration"`
	ConfirmedAt     *time.Time `json:"confirmedAt,omitempty"`
}

// ConfirmationListResponse lists a customer's steps.
type ConfirmationListResponse struct {
	Items []ConfirmationResponse `json:"items"`
}

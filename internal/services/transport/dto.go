package transport

import (
	"time"

	"github.com/google/uuid"
)

// UpdateServiceRequest contains the fields an admin may change.
type UpdateServiceRequest struct {
	ServiceType *string `json:"serviceType,omitempty" validate:"omitempty,oneof=one_day normal"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// ServiceResponse represents a service record in API responses.
type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customerId"`
	ServiceType string    `json:"serviceType"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateCustomerRequest contains data for registering a customer.
type CreateCustomerRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Phone         string  `json:"phone" validate:"required,contactnumber"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	LicenseNumber *string `json:"licenseNumber,omitempty" validate:"omitempty,min=2,max=50"`
}

// UpdateCustomerRequest contains the fields an admin may edit.
type UpdateCustomerRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,contactnumber"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	LicenseNumber *string `json:"licenseNumber,omitempty" validate:"omitempty,min=2,max=50"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode    *string `json:"postalCode,omitempty" validate:"omitempty,max=20"`
}

// ListCustomersRequest filters the admin customer list.
type ListCustomersRequest struct {
	Search string `form:"search" validate:"max=100"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         string    `json:"phone"`
	PhoneNational string    `json:"phoneNational"`
	LicenseNumber *string   `json:"licenseNumber,omitempty"`
	Address       *string   `json:"address,omitempty"`
	City          *string   `json:"city,omitempty"`
	State         *string   `json:"state,omitempty"`
	PostalCode    *string   `json:"postalCode,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CustomerListResponse wraps a list of customers.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
}

// CustomerDetailResponse is a customer with everything recorded against them.
// The related lists are opaque here; they are filled by the owning modules.
type CustomerDetailResponse struct {
	Customer CustomerResponse `json:"customer"`
	Related  interface{}      `json:"related,omitempty"`
}

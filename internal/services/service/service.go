package service

import (
	"context"

	"dmt_kiosk_backend/internal/services/repository"
	"dmt_kiosk_backend/internal/services/transport"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for service records.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new services service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Open records a new transfer request for customerID. The processing tier is
// the service type and the vehicle class goes in the description.
func (s *Service) Open(ctx context.Context, customerID uuid.UUID, serviceType, transferType string) (repository.ServiceRecord, error) {
	if serviceType == "" {
		return repository.ServiceRecord{}, apperr.Validation("service type is required")
	}

	var description *string
	if transferType != "" {
		description = &transferType
	}

	rec, err := s.repo.Create(ctx, repository.CreateParams{
		CustomerID:  customerID,
		ServiceType: serviceType,
		Description: description,
	})
	if err != nil {
		return repository.ServiceRecord{}, err
	}

	s.log.Info("service opened", "serviceId", rec.ID, "customerId", customerID, "serviceType", serviceType)
	return rec, nil
}

// SetStatus moves a service record to status.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (repository.ServiceRecord, error) {
	return s.repo.Update(ctx, repository.UpdateParams{ID: id, Status: &status})
}

// Update applies an admin edit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateServiceRequest) (transport.ServiceResponse, error) {
	rec, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:          id,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("service updated", "serviceId", rec.ID, "status", rec.Status)
	return ToResponse(rec), nil
}

// ListByCustomerID returns a customer's services newest first.
func (s *Service) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]transport.ServiceResponse, error) {
	items, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToResponses(items), nil
}

// ToResponse maps a stored record to its API shape.
func ToResponse(r repository.ServiceRecord) transport.ServiceResponse {
	return transport.ServiceResponse{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		ServiceType: r.ServiceType,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToResponses(items []repository.ServiceRecord) []transport.ServiceResponse {
	out := make([]transport.ServiceResponse, len(items))
	for i, r := range items {
		out[i] = ToResponse(r)
	}
	return out
}

package service

import (
	"context"
	"strings"

	"dmt_kiosk_backend/internal/customers/repository"
	"dmt_kiosk_backend/internal/customers/transport"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/phone"
	"dmt_kiosk_backend/platform/sanitize"

	"github.com/google/uuid"
)

// RelatedReader loads what other modules recorded against a customer.
type RelatedReader interface {
	CustomerRelated(ctx context.Context, customerID uuid.UUID) (interface{}, error)
}

// Service provides business logic for customers.
type Service struct {
	repo    repository.Repository
	related RelatedReader
	log     *logger.Logger
}

// New creates a new customers service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// SetRelatedReader injects the reader used by Detail.
func (s *Service) SetRelatedReader(r RelatedReader) {
	s.related = r
}

// IntakeParams is what the kiosk intake form knows about a customer.
type IntakeParams struct {
	FullName      string
	ContactNumber string
	VehicleNumber string
}

// Register finds the customer by phone and updates them in place, or creates
// a new one. When another kiosk creates the same phone between the lookup and
// the insert, the lookup runs once more and the new row is updated instead.
func (s *Service) Register(ctx context.Context, p IntakeParams) (repository.Customer, bool, error) {
	normalized := phone.NormalizeE164(p.ContactNumber)
	name := sanitize.Text(p.FullName)
	vehicle := strings.TrimSpace(p.VehicleNumber)

	for attempt := 0; ; attempt++ {
		existing, found, err := s.repo.GetByPhone(ctx, normalized)
		if err != nil {
			return repository.Customer{}, false, err
		}

		if found {
			updated, err := s.repo.Update(ctx, repository.UpdateParams{
				ID:            existing.ID,
				Name:          &name,
				LicenseNumber: &vehicle,
			})
			if err != nil {
				return repository.Customer{}, false, err
			}
			s.log.Info("customer updated from intake", "customerId", updated.ID)
			return updated, false, nil
		}

		created, err := s.repo.Create(ctx, repository.CreateParams{
			Name:          name,
			Phone:         normalized,
			LicenseNumber: &vehicle,
		})
		if err == nil {
			s.log.Info("customer registered", "customerId", created.ID)
			return created, true, nil
		}
		if attempt > 0 || !apperr.Is(err, apperr.KindConflict) {
			return repository.Customer{}, false, err
		}
		s.log.Debug("phone registered concurrently, retrying lookup")
	}
}

// Create registers a customer from the admin API.
func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (transport.CustomerResponse, error) {
	c, err := s.repo.Create(ctx, repository.CreateParams{
		Name:          sanitize.Text(req.Name),
		Phone:         phone.NormalizeE164(req.Phone),
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		return transport.CustomerResponse{}, err
	}
	return ToResponse(c), nil
}

// GetByID retrieves a customer by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.CustomerResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CustomerResponse{}, err
	}
	return ToResponse(c), nil
}

// Detail is GetByID plus the related records, when a reader is wired.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (transport.CustomerDetailResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CustomerDetailResponse{}, err
	}

	resp := transport.CustomerDetailResponse{Customer: ToResponse(c)}
	if s.related != nil {
		related, err := s.related.CustomerRelated(ctx, id)
		if err != nil {
			return transport.CustomerDetailResponse{}, err
		}
		resp.Related = related
	}
	return resp, nil
}

// List returns customers newest first. The search term is also tried in
// E.164 form so "0771234567" finds "+94771234567".
func (s *Service) List(ctx context.Context, req transport.ListCustomersRequest) (transport.CustomerListResponse, error) {
	search := strings.TrimSpace(req.Search)

	items, err := s.repo.List(ctx, search)
	if err != nil {
		return transport.CustomerListResponse{}, err
	}

	if normalized := phone.NormalizeE164(search); search != "" && normalized != search {
		byPhone, err := s.repo.List(ctx, normalized)
		if err != nil {
			return transport.CustomerListResponse{}, err
		}
		items = mergeByID(items, byPhone)
	}

	return ToListResponse(items), nil
}

// All returns every customer, newest first.
func (s *Service) All(ctx context.Context) ([]repository.Customer, error) {
	return s.repo.List(ctx, "")
}

// Update applies an admin edit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCustomerRequest) (transport.CustomerResponse, error) {
	params := repository.UpdateParams{
		ID:            id,
		Name:          trimmed(req.Name),
		Email:         req.Email,
		LicenseNumber: trimmed(req.LicenseNumber),
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	c, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.CustomerResponse{}, err
	}

	s.log.Info("customer updated", "customerId", c.ID)
	return ToResponse(c), nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := sanitize.Text(*v)
	return &t
}

// mergeByID appends extra items not already in base, then keeps newest first.
func mergeByID(base, extra []repository.Customer) []repository.Customer {
	seen := make(map[uuid.UUID]bool, len(base))
	for _, c := range base {
		seen[c.ID] = true
	}
	for _, c := range extra {
		if !seen[c.ID] {
			base = append(base, c)
			seen[c.ID] = true
		}
	}
	sortNewestFirst(base)
	return base
}

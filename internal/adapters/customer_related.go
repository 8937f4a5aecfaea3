package adapters

import (
	"context"
	"fmt"

	customersvc "dmt_kiosk_backend/internal/customers/service"
	doctransport "dmt_kiosk_backend/internal/documents/transport"
	feedbacktransport "dmt_kiosk_backend/internal/feedback/transport"
	servicetransport "dmt_kiosk_backend/internal/services/transport"
	stepstransport "dmt_kiosk_backend/internal/steps/transport"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ServiceLister is the narrow interface for a customer's service records.
type ServiceLister interface {
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]servicetransport.ServiceResponse, error)
}

// DocumentLister is the narrow interface for a customer's documents.
type DocumentLister interface {
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]doctransport.DocumentResponse, error)
}

// FeedbackLister is the narrow interface for a customer's feedback.
type FeedbackLister interface {
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]feedbacktransport.FeedbackResponse, error)
}

// StepLister is the narrow interface for a customer's confirmed steps.
type StepLister interface {
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]stepstransport.ConfirmationResponse, error)
}

// CustomerRelated is the admin detail view of everything recorded for one
// customer.
type CustomerRelated struct {
	Services  []servicetransport.ServiceResponse    `json:"services"`
	Documents []doctransport.DocumentResponse       `json:"documents"`
	Feedback  []feedbacktransport.FeedbackResponse  `json:"feedback"`
	Steps     []stepstransport.ConfirmationResponse `json:"steps"`
}

// CustomerRelatedReader implements customers/service.RelatedReader by
// fanning out to the services, documents, feedback and steps modules.
type CustomerRelatedReader struct {
	services  ServiceLister
	documents DocumentLister
	feedback  FeedbackLister
	steps     StepLister
}

// NewCustomerRelatedReader creates the adapter.
func NewCustomerRelatedReader(services ServiceLister, documents DocumentLister, feedback FeedbackLister, steps StepLister) *CustomerRelatedReader {
	return &CustomerRelatedReader{services: services, documents: documents, feedback: feedback, steps: steps}
}

var _ customersvc.RelatedReader = (*CustomerRelatedReader)(nil)

// CustomerRelated loads the four collections concurrently.
func (a *CustomerRelatedReader) CustomerRelated(ctx context.Context, customerID uuid.UUID) (interface{}, error) {
	var out CustomerRelated
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := a.services.ListByCustomerID(gctx, customerID)
		if err != nil {
			return fmt.Errorf("list services: %w", err)
		}
		out.Services = items
		return nil
	})
	g.Go(func() error {
		items, err := a.documents.ListByCustomerID(gctx, customerID)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		out.Documents = items
		return nil
	})
	g.Go(func() error {
		items, err := a.feedback.ListByCustomerID(gctx, customerID)
		if err != nil {
			return fmt.Errorf("list feedback: %w", err)
		}
		out.Feedback = items
		return nil
	})
	g.Go(func() error {
		if a.steps == nil {
			return nil
		}
		items, err := a.steps.ListByCustomerID(gctx, customerID)
		if err != nil {
			return fmt.Errorf("list steps: %w", err)
		}
		out.Steps = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

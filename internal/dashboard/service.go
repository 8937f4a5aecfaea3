package dashboard

import (
	"context"
	"fmt"

	customerrepo "dmt_kiosk_backend/internal/customers/repository"
	customersvc "dmt_kiosk_backend/internal/customers/service"
	customertransport "dmt_kiosk_backend/internal/customers/transport"
	docrepo "dmt_kiosk_backend/internal/documents/repository"
	feedbackrepo "dmt_kiosk_backend/internal/feedback/repository"
	servicerepo "dmt_kiosk_backend/internal/services/repository"
	"dmt_kiosk_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// CustomerSource lists every customer, newest first.
type CustomerSource interface {
	All(ctx context.Context) ([]customerrepo.Customer, error)
}

// ServiceSource lists every service record.
type ServiceSource interface {
	ListAll(ctx context.Context) ([]servicerepo.ServiceRecord, error)
}

// DocumentSource lists every document row.
type DocumentSource interface {
	ListAll(ctx context.Context) ([]docrepo.Document, error)
}

// FeedbackSource lists every rating.
type FeedbackSource interface {
	ListAll(ctx context.Context) ([]feedbackrepo.Feedback, error)
}

// Overview is the dashboard payload: the summary plus the customer table.
type Overview struct {
	Stats     Stats                                `json:"stats"`
	Customers []customertransport.CustomerResponse `json:"customers"`
}

// Service loads the four tables concurrently and summarizes them. Nothing
// is cached; every call reads fresh rows.
type Service struct {
	customers CustomerSource
	services  ServiceSource
	documents DocumentSource
	feedback  FeedbackSource
	log       *logger.Logger
}

func NewService(customers CustomerSource, services ServiceSource, documents DocumentSource, feedback FeedbackSource, log *logger.Logger) *Service {
	return &Service{customers: customers, services: services, documents: documents, feedback: feedback, log: log}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		customers []customerrepo.Customer
		services  []servicerepo.ServiceRecord
		documents []docrepo.Document
		feedback  []feedbackrepo.Feedback
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if customers, err = s.customers.All(gctx); err != nil {
			return fmt.Errorf("load customers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if services, err = s.services.ListAll(gctx); err != nil {
			return fmt.Errorf("load services: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if documents, err = s.documents.ListAll(gctx); err != nil {
			return fmt.Errorf("load documents: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if feedback, err = s.feedback.ListAll(gctx); err != nil {
			return fmt.Errorf("load feedback: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.WithContext(ctx).Error("dashboard load failed", "error", err)
		return Overview{}, err
	}

	rows := make([]customertransport.CustomerResponse, len(customers))
	for i, c := range customers {
		rows[i] = customersvc.ToResponse(c)
	}

	return Overview{
		Stats:     Summarize(customers, services, documents, feedback),
		Customers: rows,
	}, nil
}

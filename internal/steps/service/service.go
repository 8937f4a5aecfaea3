// Package service records completed wizard steps. It listens for
// StepCompleted rather than being called by the wizard directly.
package service

import (
	"context"
	"fmt"
	"time"

	"dmt_kiosk_backend/internal/events"
	"dmt_kiosk_backend/internal/steps/repository"
	"dmt_kiosk_backend/internal/steps/transport"
	"dmt_kiosk_backend/internal/wizard/domain"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for step confirmations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new step confirmation service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// RegisterHandlers subscribes the service to the bus.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.StepCompleted{}.EventName(), events.HandlerFunc(s.Handle))
}

// Handle stores a confirmation for a StepCompleted event.
func (s *Service) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(events.StepCompleted)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	duration := e.EndedAt.Sub(e.StartedAt)
	if duration < 0 {
		duration = 0
	}

	c, err := s.repo.Create(ctx, repository.CreateParams{
		CustomerID:      e.CustomerID,
		ServiceID:       e.ServiceID,
		StepName:        e.StepName,
		Status:          repository.StatusConfirmed,
		DurationSeconds: int64(duration / time.Second),
		ConfirmedAt:     e.EndedAt,
	})
	if err != nil {
		s.log.Error("failed to record step confirmation", "error", err, "customerId", e.CustomerID, "step", e.StepID)
		return err
	}

	s.log.Info("step confirmed", "confirmationId", c.ID, "customerId", e.CustomerID, "step", e.StepID, "durationSeconds", c.DurationSeconds)
	return nil
}

// ListByCustomerID returns a customer's recorded steps in order.
func (s *Service) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]transport.ConfirmationResponse, error) {
	items, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ConfirmationResponse, len(items))
	for i, c := range items {
		out[i] = ToResponse(c)
	}
	return out, nil
}

func ToResponse(c repository.Confirmation) transport.ConfirmationResponse {
	return transport.ConfirmationResponse{
		ID:              c.ID,
		ServiceID:       c.ServiceID,
		StepName:        c.StepName,
		Status:          c.Status,
		DurationSeconds: c.DurationSeconds,
		Duration:        domain.FormatElapsed(time.Duration(c.DurationSeconds) * time.Second),
		ConfirmedAt:     c.ConfirmedAt,
	}
}

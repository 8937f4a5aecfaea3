package service

import (
	"context"

	"dmt_kiosk_backend/internal/feedback/repository"
	"dmt_kiosk_backend/internal/feedback/transport"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides business logic for feedback.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new feedback service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit stores a rating. Messages are cleaned of markup and blank ones
// are stored as NULL.
func (s *Service) Submit(ctx context.Context, req transport.SubmitFeedbackRequest) (transport.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return transport.FeedbackResponse{}, apperr.Validation("rating must be between 1 and 5")
	}

	var text *string
	if req.Message != nil {
		if t := sanitize.Multiline(*req.Message); t != "" {
			text = &t
		}
	}

	f, err := s.repo.Create(ctx, repository.CreateParams{
		CustomerID:   req.CustomerID,
		Rating:       int(req.Rating),
		FeedbackText: text,
	})
	if err != nil {
		return transport.FeedbackResponse{}, err
	}

	s.log.Info("feedback submitted", "feedbackId", f.ID, "rating", f.Rating, "anonymous", f.CustomerID == nil)
	return ToResponse(f), nil
}

// ListByCustomerID returns a customer's feedback newest first.
func (s *Service) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]transport.FeedbackResponse, error) {
	items, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.FeedbackResponse, len(items))
	for i, f := range items {
		out[i] = ToResponse(f)
	}
	return out, nil
}

func ToResponse(f repository.Feedback) transport.FeedbackResponse {
	return transport.FeedbackResponse{
		ID:          f.ID,
		CustomerID:  f.CustomerID,
		Rating:      f.Rating,
		Message:     f.FeedbackText,
		SubmittedAt: f.SubmittedAt,
	}
}

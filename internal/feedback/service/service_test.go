package service

import (
	"context"
	"testing"
	"time"

	"dmt_kiosk_backend/internal/feedback/repository"
	"dmt_kiosk_backend/internal/feedback/transport"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created []repository.CreateParams
}

func (f *fakeRepo) Create(_ context.Context, p repository.CreateParams) (repository.Feedback, error) {
	f.created = append(f.created, p)
	return repository.Feedback{
		ID:           uuid.New(),
		CustomerID:   p.CustomerID,
		Rating:       p.Rating,
		FeedbackText: p.FeedbackText,
		SubmittedAt:  time.Now(),
	}, nil
}

func (f *fakeRepo) ListByCustomerID(context.Context, uuid.UUID) ([]repository.Feedback, error) {
	return nil, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]repository.Feedback, error) {
	return nil, nil
}

func TestSubmitStoresRatingAndTrimmedMessage(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.Discard())
	customerID := uuid.New()
	msg := "  quick service  "

	got, err := svc.Submit(context.Background(), transport.SubmitFeedbackRequest{
		CustomerID: &customerID,
		Rating:     5,
		Message:    &msg,
	})
	require.NoError(t, err)
	require.Equal(t, 5, got.Rating)
	require.Equal(t, "quick service", *got.Message)
	require.Equal(t, customerID, *got.CustomerID)
}

func TestSubmitBlankMessageIsOmitted(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.Discard())
	blank := "   "

	got, err := svc.Submit(context.Background(), transport.SubmitFeedbackRequest{Rating: 3, Message: &blank})
	require.NoError(t, err)
	require.Nil(t, got.Message)
	require.Nil(t, got.CustomerID)
	require.Nil(t, repo.created[0].FeedbackText)
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.Discard())

	_, err := svc.Submit(context.Background(), transport.SubmitFeedbackRequest{Rating: 0})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Empty(t, repo.created)
}

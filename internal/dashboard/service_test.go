package dashboard

import (
	"context"
	"errors"
	"testing"

	customerrepo "dmt_kiosk_backend/internal/customers/repository"
	docrepo "dmt_kiosk_backend/internal/documents/repository"
	feedbackrepo "dmt_kiosk_backend/internal/feedback/repository"
	servicerepo "dmt_kiosk_backend/internal/services/repository"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type sources struct {
	customers []customerrepo.Customer
	services  []servicerepo.ServiceRecord
	documents []docrepo.Document
	feedback  []feedbackrepo.Feedback
	err       error
}

func (s sources) All(context.Context) ([]customerrepo.Customer, error) { return s.customers, nil }

type serviceSource struct{ sources }

func (s serviceSource) ListAll(context.Context) ([]servicerepo.ServiceRecord, error) {
	return s.services, s.err
}

type documentSource struct{ sources }

func (s documentSource) ListAll(context.Context) ([]docrepo.Document, error) {
	return s.documents, nil
}

type feedbackSource struct{ sources }

func (s feedbackSource) ListAll(context.Context) ([]feedbackrepo.Feedback, error) {
	return s.feedback, nil
}

func newOverviewService(src sources) *Service {
	return NewService(src, serviceSource{src}, documentSource{src}, feedbackSource{src}, logger.Discard())
}

func TestOverview(t *testing.T) {
	src := sources{
		customers: []customerrepo.Customer{{ID: uuid.New(), Name: "Nimal", Phone: "+94771234567"}},
		services:  []servicerepo.ServiceRecord{{ServiceType: "one_day"}},
		documents: make([]docrepo.Document, 7),
		feedback:  ratings(5),
	}

	overview, err := newOverviewService(src).Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.Customers, 1)
	require.Equal(t, "Nimal", overview.Customers[0].Name)
	require.Equal(t, 7, overview.Stats.TotalDocuments)
	require.Equal(t, "5.00", overview.Stats.AverageRatingDisplay)
}

func TestOverviewPropagatesLoadError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := newOverviewService(sources{err: boom}).Overview(context.Background())
	require.ErrorIs(t, err, boom)
}

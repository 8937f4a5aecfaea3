package service

import (
	"context"
	"testing"

	"dmt_kiosk_backend/internal/customers/repository"
	"dmt_kiosk_backend/internal/customers/transport"
	"dmt_kiosk_backend/platform/logger"

	"github.com/stretchr/testify/require"
)

func TestRegisterUpdatesExistingCustomerByPhone(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	svc := New(repo, logger.Discard())

	existing, err := repo.Create(ctx, repository.CreateParams{Name: "Old Name", Phone: "+94771234567"})
	require.NoError(t, err)

	got, created, err := svc.Register(ctx, IntakeParams{
		FullName:      "Nimal Perera",
		ContactNumber: "0771234567",
		VehicleNumber: "WP CAB-1234",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, existing.ID, got.ID)
	require.Equal(t, "Nimal Perera", got.Name)
	require.Equal(t, "WP CAB-1234", *got.LicenseNumber)
	require.Equal(t, 1, repo.Len())
}

func TestRegisterCreatesNewCustomer(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	svc := New(repo, logger.Discard())

	got, created, err := svc.Register(ctx, IntakeParams{FullName: " Kamal ", ContactNumber: "771234567", VehicleNumber: "CAR-9"})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "Kamal", got.Name)
	require.Equal(t, "+94771234567", got.Phone)

	again, created, err := svc.Register(ctx, IntakeParams{FullName: "Kamal", ContactNumber: "0771234567", VehicleNumber: "CAR-9"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, got.ID, again.ID)
	require.Equal(t, 1, repo.Len())
}

// racingRepo hides the first phone lookup, as if another kiosk inserted the
// same number right after it ran.
type racingRepo struct {
	*repository.MemoryRepo
	missed bool
}

func (r *racingRepo) GetByPhone(ctx context.Context, phone string) (repository.Customer, bool, error) {
	if !r.missed {
		r.missed = true
		return repository.Customer{}, false, nil
	}
	return r.MemoryRepo.GetByPhone(ctx, phone)
}

func TestRegisterRecoversFromConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	repo := &racingRepo{MemoryRepo: repository.NewMemoryRepo()}
	svc := New(repo, logger.Discard())

	other, err := repo.Create(ctx, repository.CreateParams{Name: "Other Kiosk", Phone: "+94771234567"})
	require.NoError(t, err)

	got, created, err := svc.Register(ctx, IntakeParams{FullName: "Nimal", ContactNumber: "0771234567", VehicleNumber: "WP-1"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, other.ID, got.ID)
	require.Equal(t, "Nimal", got.Name)
	require.Equal(t, 1, repo.Len())
}

func TestListMatchesLocalPhoneForm(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	svc := New(repo, logger.Discard())

	_, _, err := svc.Register(ctx, IntakeParams{FullName: "Sunil", ContactNumber: "0771234567", VehicleNumber: "WP-1"})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, IntakeParams{FullName: "Ravi", ContactNumber: "0712222222", VehicleNumber: "WP-2"})
	require.NoError(t, err)

	res, err := svc.List(ctx, transport.ListCustomersRequest{Search: "0771234567"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	require.Equal(t, "Sunil", res.Items[0].Name)

	res, err = svc.List(ctx, transport.ListCustomersRequest{Search: "wp-2"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	require.Equal(t, "Ravi", res.Items[0].Name)

	res, err = svc.List(ctx, transport.ListCustomersRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
}

package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
)

// MemoryRepo is an in-process Repository with the same phone uniqueness rule
// as the customers table. It backs tests and local runs without PostgreSQL.
type MemoryRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]Customer
	clock func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[uuid.UUID]Customer), clock: time.Now}
}

var _ Repository = (*MemoryRepo)(nil)

// Len is the number of stored customers.
func (r *MemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *MemoryRepo) Create(_ context.Context, p CreateParams) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findPhoneLocked(p.Phone); ok {
		return Customer{}, apperr.Conflict("a customer with this phone number already exists")
	}
	now := r.clock()
	c := Customer{
		ID: uuid.New(), Name: p.Name, Phone: p.Phone, Email: p.Email, LicenseNumber: p.LicenseNumber,
		Address: p.Address, City: p.City, State: p.State, PostalCode: p.PostalCode,
		CreatedAt: now, UpdatedAt: now,
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id uuid.UUID) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Customer{}, apperr.NotFound(customerNotFoundMessage)
	}
	return c, nil
}

func (r *MemoryRepo) GetByPhone(_ context.Context, phone string) (Customer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.findPhoneLocked(phone)
	return c, ok, nil
}

func (r *MemoryRepo) List(_ context.Context, search string) ([]Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(search)
	out := make([]Customer, 0, len(r.byID))
	for _, c := range r.byID {
		if needle == "" || matches(c, needle) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, p UpdateParams) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[p.ID]
	if !ok {
		return Customer{}, apperr.NotFound(customerNotFoundMessage)
	}
	if p.Phone != nil {
		if other, taken := r.findPhoneLocked(*p.Phone); taken && other.ID != c.ID {
			return Customer{}, apperr.Conflict("a customer with this phone number already exists")
		}
		c.Phone = *p.Phone
	}
	set(&c.Name, p.Name)
	setPtr(&c.Email, p.Email)
	setPtr(&c.LicenseNumber, p.LicenseNumber)
	setPtr(&c.Address, p.Address)
	setPtr(&c.City, p.City)
	setPtr(&c.State, p.State)
	setPtr(&c.PostalCode, p.PostalCode)
	c.UpdatedAt = r.clock()

	r.byID[c.ID] = c
	return c, nil
}

func (r *MemoryRepo) findPhoneLocked(phone string) (Customer, bool) {
	for _, c := range r.byID {
		if c.Phone == phone {
			return c, true
		}
	}
	return Customer{}, false
}

func matches(c Customer, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(strings.ToLower(c.Phone), needle) {
		return true
	}
	return c.LicenseNumber != nil && strings.Contains(strings.ToLower(*c.LicenseNumber), needle)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setPtr(dst **string, v *string) {
	if v != nil {
		copied := *v
		*dst = &copied
	}
}

package service

import (
	"sort"

	"dmt_kiosk_backend/internal/customers/repository"
	"dmt_kiosk_backend/internal/customers/transport"
	"dmt_kiosk_backend/platform/phone"
)

// ToResponse maps a stored customer to its API shape.
func ToResponse(c repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		PhoneNational: phone.National(c.Phone),
		LicenseNumber: c.LicenseNumber,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		PostalCode:    c.PostalCode,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToListResponse(items []repository.Customer) transport.CustomerListResponse {
	out := make([]transport.CustomerResponse, len(items))
	for i, c := range items {
		out[i] = ToResponse(c)
	}
	return transport.CustomerListResponse{Items: out, Total: len(out)}
}

func sortNewestFirst(items []repository.Customer) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

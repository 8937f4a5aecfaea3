// Package customers provides the customers bounded context module.
// Customers are created by the kiosk intake and browsed by admins.
package customers

import (
	"dmt_kiosk_backend/internal/customers/handler"
	"dmt_kiosk_backend/internal/customers/repository"
	"dmt_kiosk_backend/internal/customers/service"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the customers module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRepository(repository.New(pool), val, log)
}

// NewModuleWithRepository wires the module on top of any repository.
func NewModuleWithRepository(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "customers"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the admin customer routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/customers")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)

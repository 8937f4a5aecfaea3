// Package services provides the service records bounded context module.
// A service record is opened when a kiosk customer picks a transfer type.
package services

import (
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/internal/services/handler"
	"dmt_kiosk_backend/internal/services/repository"
	"dmt_kiosk_backend/internal/services/service"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the services bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the services module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "services"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the admin service routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.PATCH("/services/:id", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)

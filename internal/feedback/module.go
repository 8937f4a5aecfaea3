// Package feedback provides the customer feedback module.
package feedback

import (
	"dmt_kiosk_backend/internal/feedback/handler"
	"dmt_kiosk_backend/internal/feedback/repository"
	"dmt_kiosk_backend/internal/feedback/service"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the feedback module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the feedback module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

func (m *Module) Name() string {
	return "feedback"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/feedback", m.handler.Submit)
}

var _ apphttp.Module = (*Module)(nil)

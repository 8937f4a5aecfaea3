// Package steps records the processing steps each customer confirmed at the
// kiosk.
package steps

import (
	"dmt_kiosk_backend/internal/events"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/internal/steps/handler"
	"dmt_kiosk_backend/internal/steps/repository"
	"dmt_kiosk_backend/internal/steps/service"
	"dmt_kiosk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the step confirmations module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the module and subscribes it to StepCompleted.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	svc.RegisterHandlers(bus)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "steps"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/customers/:id/steps", m.handler.ListByCustomer)
}

var _ apphttp.Module = (*Module)(nil)

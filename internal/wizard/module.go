// Package wizard provides the kiosk wizard module: session state, the
// customer flow actions and the elapsed time stream.
package wizard

import (
	"dmt_kiosk_backend/internal/events"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/internal/wizard/handler"
	"dmt_kiosk_backend/internal/wizard/repository"
	"dmt_kiosk_backend/internal/wizard/service"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"
)

// Module is the wizard module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the wizard on top of a session store. Collaborators for
// customers, services, documents and feedback are set on Service().
func NewModule(store repository.SessionStore, bus events.Bus, val *validator.Validator, publicBaseURL string, log *logger.Logger) *Module {
	svc := service.New(store, bus, log)
	return &Module{
		handler: handler.New(svc, val, publicBaseURL),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "wizard"
}

// Service returns the service layer for dependency injection.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/routes/resolve", m.handler.ResolveRoute)

	wizard := ctx.V1.Group("/wizard")
	wizard.GET("/steps", m.handler.ListSteps)
	wizard.GET("/transfer-types", m.handler.ListTransferTypes)

	sessions := wizard.Group("/sessions")
	sessions.POST("", m.handler.Create)
	sessions.GET("/:id", m.handler.Get)
	sessions.PUT("/:id/language", m.handler.SetLanguage)
	sessions.POST("/:id/theme/toggle", m.handler.ToggleTheme)
	sessions.PATCH("/:id/customer", m.handler.PatchCustomer)
	sessions.POST("/:id/steps/current/complete", m.handler.CompleteCurrent)
	sessions.POST("/:id/steps/:step/start", m.handler.StartStep)
	sessions.POST("/:id/steps/:step/complete", m.handler.CompleteStep)
	sessions.GET("/:id/elapsed", m.handler.Elapsed)
	sessions.GET("/:id/elapsed/stream", m.handler.ElapsedStream)
	sessions.GET("/:id/handoff.png", m.handler.Handoff)
	sessions.POST("/:id/intake", m.handler.Intake)
	sessions.POST("/:id/transfer-type", m.handler.SelectTransferType)
	sessions.POST("/:id/checklist/:doc/toggle", m.handler.ToggleChecklist)
	sessions.POST("/:id/documents/confirm", m.handler.ConfirmDocuments)
	sessions.POST("/:id/documents/:doc/file", m.handler.UploadDocument)
	sessions.POST("/:id/feedback", m.handler.SubmitFeedback)
}

var _ apphttp.Module = (*Module)(nil)

package dashboard

import (
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/logger"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(customers CustomerSource, services ServiceSource, documents DocumentSource, feedback FeedbackSource, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(customers, services, documents, feedback, log))}
}

func (m *Module) Name() string {
	return "dashboard"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/dashboard", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)

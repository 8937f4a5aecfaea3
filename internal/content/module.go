package content

import (
	apphttp "dmt_kiosk_backend/internal/http"
)

// Module wires the content lookup routes.
type Module struct {
	catalog *Catalog
	handler *Handler
}

func NewModule(catalog *Catalog) *Module {
	return &Module{catalog: catalog, handler: NewHandler(catalog)}
}

func (m *Module) Name() string {
	return "content"
}

// Catalog returns the loaded tables for other modules.
func (m *Module) Catalog() *Catalog {
	return m.catalog
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/content")
	group.GET("", m.handler.List)
	group.GET("/:lang", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)

// Package documents provides the documents bounded context module.
// Rows are written when a customer confirms the checklist; scans are optional.
package documents

import (
	"dmt_kiosk_backend/internal/adapters/storage"
	"dmt_kiosk_backend/internal/documents/handler"
	"dmt_kiosk_backend/internal/documents/repository"
	"dmt_kiosk_backend/internal/documents/service"
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the documents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates the documents module. store may be nil when MinIO is not
// configured.
func NewModule(pool *pgxpool.Pool, store storage.StorageService, bucket string, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, bucket, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "documents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the admin document routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/documents")
	group.DELETE("/:id", m.handler.Delete)
	group.GET("/:id/download", m.handler.Download)
}

var _ apphttp.Module = (*Module)(nil)

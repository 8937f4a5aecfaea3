package admin

import (
	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module is the admin sign-in module implementing http.Module.
type Module struct {
	guard   *Guard
	handler *Handler
}

func NewModule(guard *Guard, val *validator.Validator) *Module {
	return &Module{guard: guard, handler: NewHandler(guard, val)}
}

func (m *Module) Name() string {
	return "admin"
}

// Middleware guards the admin route group.
func (m *Module) Middleware() gin.HandlerFunc {
	return Required(m.guard)
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.AdminPublic.POST("/login", m.handler.Login)
	ctx.AdminPublic.POST("/logout", m.handler.Logout)
	ctx.AdminPublic.GET("/session", m.handler.Session)
}

var _ apphttp.Module = (*Module)(nil)

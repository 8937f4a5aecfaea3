// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"dmt_kiosk_backend/internal/events"
	"dmt_kiosk_backend/platform/config"
	"dmt_kiosk_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig is the config slice the router needs.
type RouterConfig interface {
	config.HTTPConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is pinged by /api/ready. Each checker must succeed.
	Health []HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// AdminMiddleware guards the /api/v1/admin group.
	AdminMiddleware gin.HandlerFunc
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

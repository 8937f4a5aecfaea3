package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "dmt_kiosk_backend/internal/http"
	"dmt_kiosk_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type stubConfig struct{}

func (stubConfig) GetHTTPAddr() string      { return ":0" }
func (stubConfig) GetCORSAllowAll() bool    { return true }
func (stubConfig) GetCORSOrigins() []string { return nil }
func (stubConfig) GetRateLimitRPS() float64 { return 0 }
func (stubConfig) GetRateLimitBurst() int   { return 0 }

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestApp(health ...apphttp.HealthChecker) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{Config: stubConfig{}, Logger: logger.Discard(), Health: health}
}

func TestUnknownPathReturnsJSONNotFound(t *testing.T) {
	engine := New(newTestApp())

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"not found"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestReady(t *testing.T) {
	ok := New(newTestApp(pingFunc(func(context.Context) error { return nil })))
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d, want 200", rec.Code)
	}

	down := New(newTestApp(pingFunc(func(context.Context) error { return errors.New("down") })))
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d, want 503", rec.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	engine := New(newTestApp())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}

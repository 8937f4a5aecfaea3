package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	customerrepo "dmt_kiosk_backend/internal/customers/repository"
	customersvc "dmt_kiosk_backend/internal/customers/service"
	"dmt_kiosk_backend/internal/events"
	"dmt_kiosk_backend/internal/wizard/repository"
	"dmt_kiosk_backend/internal/wizard/service"
	"dmt_kiosk_backend/platform/logger"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	engine    *gin.Engine
	handler   *Handler
	customers *customerrepo.MemoryRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Discard()
	svc := service.New(repository.NewMemoryStore(time.Hour), events.NewInMemoryBus(log), log)
	customers := customerrepo.NewMemoryRepo()
	svc.SetCustomerRegistrar(customersvc.New(customers, log))

	h := New(svc, validator.New(), "https://kiosk.example.lk")
	h.tick = 10 * time.Millisecond

	engine := gin.New()
	engine.GET("/routes/resolve", h.ResolveRoute)
	engine.POST("/sessions", h.Create)
	engine.GET("/sessions/:id", h.Get)
	engine.POST("/sessions/:id/steps/:step/start", h.StartStep)
	engine.POST("/sessions/:id/steps/:step/complete", h.CompleteStep)
	engine.GET("/sessions/:id/elapsed/stream", h.ElapsedStream)
	engine.GET("/sessions/:id/handoff.png", h.Handoff)
	engine.POST("/sessions/:id/intake", h.Intake)
	engine.POST("/sessions/:id/transfer-type", h.SelectTransferType)
	engine.POST("/sessions/:id/documents/confirm", h.ConfirmDocuments)

	return &testServer{engine: engine, handler: h, customers: customers}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Session.ID
}

func TestCreateNegotiatesLanguage(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/sessions", nil, http.Header{"Accept-Language": {"ta-LK,ta;q=0.9,en;q=0.5"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session struct {
			State struct {
				Language    string `json:"language"`
				CurrentStep int    `json:"currentStep"`
				Theme       string `json:"theme"`
			} `json:"state"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ta", resp.Session.State.Language)
	require.Equal(t, 1, resp.Session.State.CurrentStep)
	require.Equal(t, "light", resp.Session.State.Theme)
}

func TestCreateRejectsUnknownLanguage(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/sessions", map[string]string{"language": "fr"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntakeValidationReportsFields(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/intake", map[string]string{
		"vehicleNumber": "WP CAB-1234",
		"fullName":      "Nimal Perera",
		"contactNumber": "07712-34567",
		"serviceType":   "one_day",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Details, "contactNumber")
	require.Zero(t, s.customers.Len())
}

func TestIntakeDeduplicatesByPhone(t *testing.T) {
	s := newTestServer(t)
	intake := map[string]string{
		"vehicleNumber": "WP CAB-1234",
		"fullName":      "Nimal Perera",
		"contactNumber": "0771234567",
		"serviceType":   "normal",
	}

	for i := 0; i < 2; i++ {
		id := s.createSession(t)
		rec := s.do(t, http.MethodPost, "/sessions/"+id+"/intake", intake, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Next string `json:"next"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "/service-selection", resp.Next)
	}
	require.Equal(t, 1, s.customers.Len())
}

func TestLaterStepsRequireIntake(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/transfer-type", map[string]string{"transferType": "car"}, nil)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/documents/confirm", nil, nil)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestResolveRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/routes/resolve?path=/documents", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"page":"documents"`)

	rec = s.do(t, http.MethodGet, "/routes/resolve?path=/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/sessions/6f1c2b9e-8d1a-4d43-9d2f-1d2c3b4a5e6f", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/sessions/not-a-uuid", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandoffRendersPNG(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/handoff.png", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = s.do(t, http.MethodGet, "/sessions/"+id+"/handoff.png?size=10", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestElapsedStreamEmitsTicks(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/steps/1/start", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/elapsed/stream", nil).WithContext(ctx)
	stream := httptest.NewRecorder()
	s.engine.ServeHTTP(stream, req)

	require.Equal(t, "text/event-stream", stream.Header().Get("Content-Type"))
	events := strings.Count(stream.Body.String(), "event:elapsed")
	require.GreaterOrEqual(t, events, 2)
	require.Contains(t, stream.Body.String(), `"stepId":1`)
}

func TestElapsedStreamFollowsCompletedStep(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/steps/1/start", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/elapsed/stream", nil).WithContext(ctx)
	stream := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.engine.ServeHTTP(stream, req)
	}()

	time.Sleep(40 * time.Millisecond)
	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/steps/1/complete", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	<-done

	var steps []string
	for _, block := range strings.Split(stream.Body.String(), "\n\n") {
		switch {
		case strings.Contains(block, `"stepId":1`):
			steps = append(steps, "1")
		case strings.Contains(block, `"stepId":2`):
			steps = append(steps, "2")
		}
	}
	joined := strings.Join(steps, "")
	require.Contains(t, joined, "2")
	require.NotContains(t, joined[strings.Index(joined, "2"):], "1")
}

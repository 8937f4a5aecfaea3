package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"dmt_kiosk_backend/internal/content"
	"dmt_kiosk_backend/internal/wizard/domain"
	"dmt_kiosk_backend/internal/wizard/service"
	"dmt_kiosk_backend/internal/wizard/transport"
	"dmt_kiosk_backend/platform/httpkit"
	"dmt_kiosk_backend/platform/qr"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidSession = "invalid session ID"
	msgInvalidStep    = "invalid step"
	msgInvalidDoc     = "invalid document"

	minQRSize = 128
	maxQRSize = 1024
)

// Handler handles kiosk wizard HTTP requests.
type Handler struct {
	svc           *service.Service
	val           *validator.Validator
	publicBaseURL string
	tick          time.Duration
}

// New creates a new wizard handler. publicBaseURL is encoded in the hand-off
// QR code.
func New(svc *service.Service, val *validator.Validator, publicBaseURL string) *Handler {
	return &Handler{svc: svc, val: val, publicBaseURL: publicBaseURL, tick: time.Second}
}

// ResolveRoute reports whether a client path is a known page.
// GET /api/v1/routes/resolve?path=
func (h *Handler) ResolveRoute(c *gin.Context) {
	route, ok := domain.ResolveRoute(c.Query("path"))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "not found", nil)
		return
	}
	httpkit.OK(c, route)
}

// ListSteps returns the processing steps.
// GET /api/v1/wizard/steps
func (h *Handler) ListSteps(c *gin.Context) {
	httpkit.OK(c, transport.StepsResponse{Steps: domain.Steps()})
}

// ListTransferTypes returns the service selection options.
// GET /api/v1/wizard/transfer-types
func (h *Handler) ListTransferTypes(c *gin.Context) {
	httpkit.OK(c, transport.TransferTypesResponse{TransferTypes: domain.TransferTypes()})
}

// Create opens a session.
// POST /api/v1/wizard/sessions
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, err.Error())
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	code := req.Language
	if code == "" {
		code = content.Negotiate(c.GetHeader("Accept-Language"))
	}
	lang, err := domain.ParseLanguage(code)
	if httpkit.HandleError(c, err) {
		return
	}

	session, err := h.svc.Create(c.Request.Context(), lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.NewSessionResponse(session, h.svc.Now()))
}

// Get returns a session.
// GET /api/v1/wizard/sessions/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSessionResponse(session, h.svc.Now()))
}

// SetLanguage switches the display language.
// PUT /api/v1/wizard/sessions/:id/language
func (h *Handler) SetLanguage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.SetLanguageRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.svc.SetLanguage(c.Request.Context(), id, req.Language)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSessionResponse(session, h.svc.Now()))
}

// ToggleTheme flips light and dark.
// POST /api/v1/wizard/sessions/:id/theme/toggle
func (h *Handler) ToggleTheme(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.ToggleTheme(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSessionResponse(session, h.svc.Now()))
}

// PatchCustomer merges partially typed form fields.
// PATCH /api/v1/wizard/sessions/:id/customer
func (h *Handler) PatchCustomer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var patch domain.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, err.Error())
		return
	}

	session, err := h.svc.PatchCustomer(c.Request.Context(), id, patch)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSessionResponse(session, h.svc.Now()))
}

// StartStep records a start time for a step.
// POST /api/v1/wizard/sessions/:id/steps/:step/start
func (h *Handler) StartStep(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	step, ok := intParam(c, "step", msgInvalidStep)
	if !ok {
		return
	}

	session, err := h.svc.StartStep(c.Request.Context(), id, step)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewSessionResponse(session, h.svc.Now()))
}

// CompleteStep closes a step and opens the next.
// POST /api/v1/wizard/sessions/:id/steps/:step/complete
func (h *Handler) CompleteStep(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	step, ok := intParam(c, "step", msgInvalidStep)
	if !ok {
		return
	}

	out, err := h.svc.CompleteStep(c.Request.Context(), id, step)
	if httpkit.HandleError(c, err) {
		return
	}
	h.flow(c, out)
}

// CompleteCurrent closes whatever step the session is on.
// POST /api/v1/wizard/sessions/:id/steps/current/complete
func (h *Handler) CompleteCurrent(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.svc.CompleteCurrent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	h.flow(c, out)
}

// Elapsed returns the running time of the current step.
// GET /api/v1/wizard/sessions/:id/elapsed
func (h *Handler) Elapsed(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	step, elapsed, err := h.svc.Elapsed(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewElapsedResponse(step, elapsed))
}

// ElapsedStream pushes an "elapsed" event every tick for the current step
// until the client goes away or the session ends.
// GET /api/v1/wizard/sessions/:id/elapsed/stream
func (h *Handler) ElapsedStream(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	session, err := h.svc.Get(ctx, id)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	timer := domain.NewStepTimer(h.tick, h.svc.Now)
	defer timer.Stop()

	// step is the current step as last read from the store; ticks for any
	// other step are dropped.
	step := session.State.CurrentStep
	track := func(s *domain.Session) {
		step = s.State.CurrentStep
		if t, ok := s.Timing(step); ok && t.EndTime == nil {
			timer.Track(step, t.StartTime)
			return
		}
		timer.Idle()
	}
	track(session)

	c.SSEvent("elapsed", transport.NewElapsedResponse(session.State.CurrentStep, session.Elapsed(h.svc.Now())))
	c.Writer.Flush()

	poll := time.NewTicker(h.tick)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tick, ok := <-timer.C():
			if !ok {
				return
			}
			if tick.StepID != step {
				continue
			}
			c.SSEvent("elapsed", transport.NewElapsedResponse(tick.StepID, tick.Elapsed))
			c.Writer.Flush()
		case <-poll.C:
			current, err := h.svc.Get(ctx, id)
			if err != nil {
				c.SSEvent("closed", gin.H{"reason": "session ended"})
				c.Writer.Flush()
				return
			}
			if current.State.CurrentStep != step || current.State.CurrentStep != timer.StepID() {
				track(current)
			}
		}
	}
}

// Handoff renders a QR code that reopens this session on another device.
// GET /api/v1/wizard/sessions/:id/handoff.png?size=
func (h *Handler) Handoff(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}

	size := qr.DefaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			httpkit.Error(c, http.StatusBadRequest, "size must be between 128 and 1024", nil)
			return
		}
		size = n
	}

	png, err := qr.PNG(h.publicBaseURL+"/?session="+id.String(), size)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Intake submits the customer information form.
// POST /api/v1/wizard/sessions/:id/intake
func (h *Handler) Intake(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.IntakeRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.svc.Intake(c.Request.Context(), id, service.IntakeParams{
		VehicleNumber: req.VehicleNumber,
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		ServiceType:   domain.ServiceType(req.ServiceType),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	h.flow(c, out)
}

// SelectTransferType chooses the vehicle class.
// POST /api/v1/wizard/sessions/:id/transfer-type
func (h *Handler) SelectTransferType(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.TransferTypeRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.svc.SelectTransferType(c.Request.Context(), id, req.TransferType)
	if httpkit.HandleError(c, err) {
		return
	}
	h.flow(c, out)
}

// ToggleChecklist ticks or unticks a required document.
// POST /api/v1/wizard/sessions/:id/checklist/:doc/toggle
func (h *Handler) ToggleChecklist(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	doc, ok := intParam(c, "doc", msgInvalidDoc)
	if !ok {
		return
	}

	session, err := h.svc.ToggleChecklist(c.Request.Context(), id, doc)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ChecklistResponse{
		SessionResponse: transport.NewSessionResponse(session, h.svc.Now()),
		Document:        doc,
		Checked:         session.Checklist[doc-1],
	})
}

// ConfirmDocuments moves on from the documents page.
// POST /api/v1/wizard/sessions/:id/documents/confirm
func (h *Handler) ConfirmDocuments(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	out, err := h.svc.ConfirmDocuments(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	h.flow(c, out)
}

// UploadDocument stores a scan sent as the multipart field "file".
// POST /api/v1/wizard/sessions/:id/documents/:doc/file
func (h *Handler) UploadDocument(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	doc, ok := intParam(c, "doc", msgInvalidDoc)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := file.Read(sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, nil)
			return
		}
	}

	result, err := h.svc.UploadDocument(c.Request.Context(), id, doc, service.DocumentFile{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SubmitFeedback rates the visit and ends the session.
// POST /api/v1/wizard/sessions/:id/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.FeedbackRequest
	if !h.bind(c, &req) {
		return
	}

	result, next, err := h.svc.SubmitFeedback(c.Request.Context(), id, req.Rating, req.Message)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FeedbackResponse{Feedback: result, Next: next})
}

func (h *Handler) flow(c *gin.Context, out service.Outcome) {
	httpkit.OK(c, transport.FlowResponse{
		SessionResponse: transport.NewSessionResponse(out.Session, h.svc.Now()),
		Next:            out.Next,
	})
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return false
	}
	return true
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSession, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

func intParam(c *gin.Context, name, msg string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
		return 0, false
	}
	return n, true
}

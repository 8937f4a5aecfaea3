package handler

import (
	"net/http"

	"dmt_kiosk_backend/internal/feedback/service"
	"dmt_kiosk_backend/internal/feedback/transport"
	"dmt_kiosk_backend/platform/httpkit"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles feedback HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new feedback handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit stores feedback that is not tied to a wizard session.
// POST /api/v1/feedback
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

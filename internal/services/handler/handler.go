package handler

import (
	"net/http"

	"dmt_kiosk_backend/internal/services/service"
	"dmt_kiosk_backend/internal/services/transport"
	"dmt_kiosk_backend/platform/httpkit"
	"dmt_kiosk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles admin HTTP requests for service records.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const msgInvalidID = "invalid service ID"

// New creates a new services handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Update changes a service's status, type or description.
// PATCH /api/v1/admin/services/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.ValidationError(c, err)
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.LogAdminAction(c, "service updated", "serviceId", id)
	httpkit.OK(c, result)
}

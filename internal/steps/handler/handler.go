package handler

import (
	"net/http"

	"dmt_kiosk_backend/internal/steps/service"
	"dmt_kiosk_backend/internal/steps/transport"
	"dmt_kiosk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles step confirmation HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates a new step confirmation handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListByCustomer returns the steps a customer confirmed.
// GET /api/v1/admin/customers/:id/steps
func (h *Handler) ListByCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, httpkit.MsgInvalidRequest, nil)
		return
	}

	items, err := h.svc.ListByCustomerID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ConfirmationListResponse{Items: items})
}

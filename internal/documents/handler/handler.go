package handler

import (
	"net/http"

	"dmt_kiosk_backend/internal/documents/service"
	"dmt_kiosk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles admin HTTP requests for documents.
type Handler struct {
	svc *service.Service
}

const msgInvalidID = "invalid document ID"

// New creates a new documents handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Delete removes a document.
// DELETE /api/v1/admin/documents/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.LogAdminAction(c, "document deleted", "documentId", id)
	c.Status(http.StatusNoContent)
}

// Download returns a presigned link to the document's scan.
// GET /api/v1/admin/documents/:id/download
func (h *Handler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.DownloadURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

package content

import (
	"dmt_kiosk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the string tables.
type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// LanguagesResponse lists the supported languages.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

// List handles GET /api/v1/content
func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, LanguagesResponse{Languages: h.catalog.Languages(), Default: English})
}

// Get handles GET /api/v1/content/:lang
func (h *Handler) Get(c *gin.Context) {
	table, err := h.catalog.Lookup(c.Param("lang"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, table)
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kreolabs/boutik/internal/export"
)

// ExportHandler serves the full-data export and import routes.
type ExportHandler struct {
	exporter *export.Exporter
}

// NewExportHandler creates the export handler.
func NewExportHandler(e *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: e}
}

// MountRoutes registers the export routes on the router.
func (h *ExportHandler) MountRoutes(r chi.Router) {
	r.Get("/export", h.Export)
	r.Post("/import", h.Import)
}

// Export returns the full bundle with every module section present.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.exporter.Build())
}

// Import validates the posted bundle and replaces the data of every module
// section it carries.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var bundle export.Bundle
	if err := DecodeJSON(r, &bundle); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.exporter.Import(r.Context(), &bundle); err != nil {
		RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

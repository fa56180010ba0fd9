package httpapi

import (
	"net/http"

	"medvagas-engine/internal/domain"
)

type RegionsHandler struct{}

// List serves the region -> states drill-down data the panel renders.
func (RegionsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, domain.Regions)
}

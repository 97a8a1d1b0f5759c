// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/prospect/internal/domain/model"
)

// BootstrapHandler handles on-demand rollout projection requests.
type BootstrapHandler struct {
	deps Dependencies
}

// NewBootstrapHandler creates a new bootstrap handler.
func NewBootstrapHandler(deps Dependencies) *BootstrapHandler {
	return &BootstrapHandler{deps: deps}
}

// HandleBootstrap handles GET /players/{id}/potential/bootstrap requests.
// An optional pos query parameter projects at a specific position;
// otherwise the player's current primary position is used.
func (h *BootstrapHandler) HandleBootstrap(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.bootstrap_potential"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	pos := model.Position(r.URL.Query().Get("pos"))

	proj, err := h.deps.BootstrapPotential(r.Context(), id, pos)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

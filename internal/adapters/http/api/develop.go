// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/domain/types"
)

// DevelopHandler handles development pass requests.
type DevelopHandler struct {
	deps Dependencies
}

// NewDevelopHandler creates a new develop handler.
func NewDevelopHandler(deps Dependencies) *DevelopHandler {
	return &DevelopHandler{deps: deps}
}

// developRequest mirrors the OpenAPI schema for POST /players/{id}/develop.
// Years defaults to one season when the body omits it or is empty.
type developRequest struct {
	Years         *int    `json:"years"`
	NewPlayer     bool    `json:"new_player"`
	CoachingRank  float64 `json:"coaching_rank"`
	SkipPotential bool    `json:"skip_potential"`
}

// HandleDevelop handles POST /players/{id}/develop requests.
func (h *DevelopHandler) HandleDevelop(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.develop_player"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req developRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	years := 1
	if req.Years != nil {
		years = *req.Years
	}

	err := h.deps.RequestDevelop(r.Context(), id, types.DevelopRequest{
		Years:         years,
		NewPlayer:     req.NewPlayer,
		CoachingRank:  req.CoachingRank,
		SkipPotential: req.SkipPotential,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", PlayerID: id})
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrDuplicatePass):
		writeError(w, http.StatusConflict, "duplicate_pass", WrapKind(op, ErrDuplicate, err))
	case errors.Is(err, service.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, service.ErrInvalidYears), errors.Is(err, service.ErrInvalidCoachingRank):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

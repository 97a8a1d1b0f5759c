// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

// BoardDependencies defines the interface for board operations.
type BoardDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// BoardHandler handles prospect board requests.
type BoardHandler struct {
	deps         BoardDependencies
	defaultLimit int
	maxLimit     int
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies, defaultLimit, maxLimit int) *BoardHandler {
	return &BoardHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleGetBoard handles GET /board?limit=N requests. A missing limit
// falls back to the configured default.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/prospect/internal/domain/model"
)

// PlayersHandler handles player lifecycle requests.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playerRequest mirrors the OpenAPI schema for POST /players.
type playerRequest struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Born        model.Born     `json:"born"`
	Height      int            `json:"height"`
	Weight      int            `json:"weight"`
	Team        string         `json:"team"`
	PosOverride string         `json:"pos_override"`
	Season      int            `json:"season"`
	Attrs       map[string]int `json:"attrs"`
}

func (p playerRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("missing name")
	case p.Born.Year <= 0:
		return errors.New("missing born.year")
	case p.Season <= p.Born.Year:
		return errors.New("season must be after born.year")
	case len(p.Attrs) == 0:
		return errors.New("missing attrs")
	}
	for name, v := range p.Attrs {
		if v < 0 || v > 100 {
			return errors.New("attribute " + name + " out of range [0,100]")
		}
	}
	return nil
}

func (p playerRequest) toModel() *model.Player {
	player := &model.Player{
		ID:          p.ID,
		Name:        p.Name,
		Born:        p.Born,
		Height:      p.Height,
		Weight:      p.Weight,
		Team:        p.Team,
		PosOverride: model.Position(p.PosOverride),
	}
	snap := player.AddSeason(p.Season)
	snap.Attrs = make(map[string]int, len(p.Attrs))
	for name, v := range p.Attrs {
		snap.Attrs[name] = v
	}
	return player
}

// HandlePlayers handles POST /players and GET /players requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.CreatePlayer(r.Context(), req.toModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PlayersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"

	players, err := h.deps.ListPlayers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandlePlayer handles GET and DELETE /players/{id} requests.
func (h *PlayersHandler) HandlePlayer(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_player"

	switch r.Method {
	case http.MethodGet:
		p, err := h.deps.GetPlayer(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.deps.RemovePlayer(r.Context(), id); err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "removed", PlayerID: id})
	default:
		http.NotFound(w, r)
	}
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/prospect/internal/adapters/repository"
	"github.com/okian/prospect/internal/adapters/roster"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Player lifecycle.
	CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	RemovePlayer(ctx context.Context, id string) error

	// RequestDevelop queues an asynchronous development pass.
	RequestDevelop(ctx context.Context, playerID string, req types.DevelopRequest) error

	// BootstrapPotential runs an on-demand rollout projection.
	BootstrapPotential(ctx context.Context, playerID string, pos model.Position) (types.BootstrapProjection, error)

	// Read operations expose board data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, playerID string) (Entry, error)
}

// Entry mirrors the read shape returned by board queries.
type Entry = types.Entry

// Board limit defaults.
const (
	defaultBoardLimit = 50
	defaultBoardMax   = 1000
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	playersHandler   *PlayersHandler
	developHandler   *DevelopHandler
	bootstrapHandler *BootstrapHandler
	boardHandler     *BoardHandler
	rankHandler      *RankHandler
	dashboardHandler *dashboardHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithBoardDefaultLimit sets the board size returned when no limit is
// given.
func WithBoardDefaultLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.boardHandler.defaultLimit = n
		}
	}
}

// WithBoardMaxLimit caps the board size a single request may ask for.
func WithBoardMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.boardHandler.maxLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		playersHandler:   NewPlayersHandler(deps),
		developHandler:   NewDevelopHandler(deps),
		bootstrapHandler: NewBootstrapHandler(deps),
		boardHandler:     NewBoardHandler(deps, defaultBoardLimit, defaultBoardMax),
		rankHandler:      NewRankHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.handlePlayerSubtree, "players"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// handlePlayerSubtree routes /players/{id}, /players/{id}/develop, and
// /players/{id}/potential/bootstrap.
func (s *Server) handlePlayerSubtree(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch rest {
	case "":
		s.playersHandler.HandlePlayer(w, r, id)
	case "develop":
		s.developHandler.HandleDevelop(w, r, id)
	case "potential/bootstrap":
		s.bootstrapHandler.HandleBootstrap(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

type ackResponse struct {
	Status   string `json:"status"`
	PlayerID string `json:"player_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, roster.ErrNotFound) || errors.Is(err, repository.ErrNotFound)
}

// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	jobqueue "github.com/okian/prospect/internal/adapters/mq/queue"
	workerpool "github.com/okian/prospect/internal/adapters/mq/worker"
	repository "github.com/okian/prospect/internal/adapters/repository"
	"github.com/okian/prospect/internal/adapters/roster"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/passguard"
	"github.com/okian/prospect/internal/domain/potential"
	"github.com/okian/prospect/internal/domain/progression"
	"github.com/okian/prospect/internal/domain/sport"
	"github.com/okian/prospect/internal/domain/sport/registry"
	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/pkg/logger"
	"github.com/okian/prospect/pkg/metrics"

	"github.com/google/uuid"
)

// Estimator kind identifiers accepted by WithEstimator.
const (
	EstimatorRegression = "regression"
	EstimatorBootstrap  = "bootstrap"
)

// DevelopRequest describes one requested development pass.
type DevelopRequest = types.DevelopRequest

// BootstrapProjection is the result of an on-demand rollout projection.
type BootstrapProjection = types.BootstrapProjection

// Service wires the development engine, roster, board, and job pipeline
// together and implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	board    repository.Store
	players  *roster.Store
	guard    passguard.Guard
	jobQueue jobqueue.Queue
	pool     *workerpool.Pool

	engine    *progression.Engine
	bootstrap *potential.BootstrapSimulator
	strategy  sport.Strategy

	// Configuration
	sportName     string
	estimatorKind string
	trials        int
	seed          uint64
	seedSet       bool
	workerCount   int
	queueSize     int
	guardSize     int
	teamCount     int
	coefficients  potential.CoefficientTable

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSport selects the sport strategy by its registered name.
func WithSport(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.sportName = name
		}
	}
}

// WithEstimator selects the projection estimator kind.
func WithEstimator(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.estimatorKind = kind
		}
	}
}

// WithBootstrapTrials sets the rollout count for bootstrap projections.
func WithBootstrapTrials(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.trials = n
		}
	}
}

// WithSeed fixes the random seed, making development runs reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
		s.seedSet = true
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithGuardSize sets the size of the pass-guard cache.
func WithGuardSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.guardSize = size
		}
	}
}

// WithTeamCount sets the league size bounding valid coaching ranks.
func WithTeamCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.teamCount = n
		}
	}
}

// WithCoefficients overrides the sport's built-in regression table,
// typically with one loaded from a calibration file.
func WithCoefficients(table potential.CoefficientTable) Option {
	return func(s *Service) {
		if len(table) > 0 {
			s.coefficients = table
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sportName:     "gridiron",
		estimatorKind: EstimatorRegression,
		trials:        potential.DefaultTrials,
		workerCount:   runtime.NumCPU(),
		queueSize:     10_000,
		guardSize:     100_000,
		teamCount:     30,
		stopCh:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting prospect service...")

	bundle, err := registry.New(s.sportName)
	if err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	s.strategy = bundle.Strategy

	table := bundle.Coefficients
	if len(s.coefficients) > 0 {
		table = s.coefficients
		s.logger.Info(ctx, "using calibrated coefficient table",
			logger.Int("positions", len(table)),
		)
	}

	bootOpts := []potential.BootstrapOption{potential.WithTrials(s.trials)}
	if s.seedSet {
		bootOpts = append(bootOpts, potential.WithSeed(s.seed))
	}
	// The simulator always exists: it backs on-demand projections even
	// when the engine runs on the regression estimator.
	s.bootstrap, err = potential.NewBootstrapSimulator(bundle.Strategy, bootOpts...)
	if err != nil {
		return fmt.Errorf("building bootstrap simulator: %w", err)
	}

	var estimator potential.Estimator
	switch s.estimatorKind {
	case EstimatorRegression:
		estimator, err = potential.NewRegressionEstimator(table)
		if err != nil {
			return fmt.Errorf("building regression estimator: %w", err)
		}
	case EstimatorBootstrap:
		estimator = s.bootstrap
	default:
		return fmt.Errorf("estimator %q: %w", s.estimatorKind, ErrUnknownEstimator)
	}

	engineOpts := []progression.Option{}
	if s.seedSet {
		engineOpts = append(engineOpts, progression.WithRandomSource(sport.NewSeededSource(s.seed, 0)))
	}
	s.engine, err = progression.New(bundle.Strategy, estimator, bundle.Tagger, engineOpts...)
	if err != nil {
		return fmt.Errorf("building development engine: %w", err)
	}

	s.board = repository.NewTreapStore(ctx)
	s.players = roster.New()
	s.guard = passguard.NewInMemoryGuard(
		passguard.WithMaxSize(s.guardSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.players, s.board, s.engine, s.guard)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "prospect service started",
		logger.String("sport", s.sportName),
		logger.String("estimator", s.estimatorKind),
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("guardSize", s.guardSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping prospect service...")

	if s.pool != nil {
		s.pool.Stop()
	}

	if s.board != nil {
		if closer, ok := s.board.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "prospect service stopped")
}

// CreatePlayer registers a player, runs a synchronous finalize pass so
// ratings and tags are populated, and places the player on the board.
// An empty ID is assigned a fresh UUID.
func (s *Service) CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if p == nil {
		return nil, roster.ErrNilPlayer
	}
	if p.Current() == nil {
		return nil, progression.ErrNoSnapshot
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	start := time.Now()
	if err := s.engine.Develop(ctx, p, progression.WithYears(0)); err != nil {
		return nil, fmt.Errorf("finalizing player %s: %w", p.ID, err)
	}
	metrics.RecordDevelop()
	metrics.ObserveDevelopDuration(time.Since(start).Seconds())

	if err := s.players.Put(ctx, p); err != nil {
		return nil, err
	}
	if err := s.upsertBoardRow(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "player created",
		logger.String("player_id", p.ID),
		logger.String("pos", string(p.Current().Pos)),
		logger.Int("overall", p.Current().Overall),
		logger.Int("potential", p.Current().Potential),
	)
	return p, nil
}

// GetPlayer returns the stored player state.
func (s *Service) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.players.Get(ctx, id)
}

// ListPlayers returns all players ordered by id.
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.players.List(ctx), nil
}

// RemovePlayer drops a player from the roster and the board.
func (s *Service) RemovePlayer(ctx context.Context, id string) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	if err := s.players.Remove(ctx, id); err != nil {
		return err
	}
	return s.board.Remove(ctx, id)
}

// RequestDevelop validates and enqueues a development pass. At most one
// pass per player per target season is admitted; repeats are rejected
// until the reservation is released by a failed pass.
func (s *Service) RequestDevelop(ctx context.Context, playerID string, req DevelopRequest) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	if req.Years < 0 {
		return ErrInvalidYears
	}
	if req.CoachingRank != 0 && (req.CoachingRank < 1 || req.CoachingRank > float64(s.teamCount)) {
		return ErrInvalidCoachingRank
	}

	p, err := s.players.Get(ctx, playerID)
	if err != nil {
		return err
	}

	key := passguard.KeyFor(p, req.Years)
	if s.guard.SeenAndRecord(ctx, key) {
		metrics.RecordGuardHit()
		s.logger.Debug(ctx, "duplicate development pass rejected",
			logger.String("player_id", playerID),
			logger.String("guard_key", key),
		)
		return ErrDuplicatePass
	}
	metrics.UpdateGuardSize(s.guard.Size())

	ok := s.jobQueue.Enqueue(ctx, jobqueue.Job{
		PlayerID:      playerID,
		Years:         req.Years,
		NewPlayer:     req.NewPlayer,
		CoachingRank:  req.CoachingRank,
		SkipPotential: req.SkipPotential,
	})
	if !ok {
		// Release the reservation so the caller can retry.
		s.guard.Unrecord(ctx, key)
		return ErrQueueFull
	}
	return nil
}

// SeenAndRecord atomically checks whether a pass key was reserved and
// reserves it if not. Returns true if the key was already reserved.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	seen := s.guard.SeenAndRecord(ctx, key)
	if seen {
		metrics.RecordGuardHit()
	}
	return seen
}

// Unrecord releases a pass reservation, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, key string) {
	s.guard.Unrecord(ctx, key)
}

// TopN returns the best n board rows.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.board.TopN(ctx, n)
}

// Rank returns the board row for a player.
func (s *Service) Rank(ctx context.Context, playerID string) (types.Entry, error) {
	if !s.isStarted() {
		return types.Entry{}, ErrNotStarted
	}
	return s.board.Rank(ctx, playerID)
}

// BootstrapPotential projects a player's ceiling with the Monte-Carlo
// simulator regardless of the engine's configured estimator. An empty
// pos falls back to the player's current primary position.
func (s *Service) BootstrapPotential(ctx context.Context, playerID string, pos model.Position) (BootstrapProjection, error) {
	if !s.isStarted() {
		return BootstrapProjection{}, ErrNotStarted
	}

	p, err := s.players.Get(ctx, playerID)
	if err != nil {
		return BootstrapProjection{}, err
	}
	cur := p.Current()
	if cur == nil {
		return BootstrapProjection{}, progression.ErrNoSnapshot
	}
	if pos == "" {
		pos = cur.Pos
	}

	age := p.Age(cur.Season)
	start := time.Now()
	v, err := s.bootstrap.Project(ctx, cur, age, pos)
	if err != nil {
		return BootstrapProjection{}, fmt.Errorf("bootstrap projection for %s: %w", playerID, err)
	}
	metrics.RecordPotentialProjection(EstimatorBootstrap)
	metrics.AddBootstrapTrials(s.bootstrap.Trials())
	metrics.ObserveBootstrapDuration(time.Since(start).Seconds())

	return BootstrapProjection{
		PlayerID:  playerID,
		Pos:       pos,
		Age:       age,
		Potential: v,
		Trials:    s.bootstrap.Trials(),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"sport":       s.sportName,
		"estimator":   s.estimatorKind,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"guardSize":   s.guardSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		playerCount := s.players.Len(ctx)
		boardSize := s.board.Count(ctx)

		stats["queueLength"] = queueLen
		stats["players"] = playerCount
		stats["boardSize"] = boardSize
		stats["guardEntries"] = s.guard.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdatePlayersTotal(playerCount)
		metrics.UpdateBoardSize(boardSize)
		metrics.UpdateGuardSize(s.guard.Size())
	}

	return stats
}

// Size returns the current number of entries in the pass guard.
func (s *Service) Size() int64 {
	if s.guard == nil {
		return 0
	}
	return s.guard.Size()
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) upsertBoardRow(ctx context.Context, p *model.Player) error {
	cur := p.Current()
	_, err := s.board.Upsert(ctx, types.Entry{
		PlayerID:  p.ID,
		Name:      p.Name,
		Pos:       string(cur.Pos),
		Overall:   cur.Overall,
		Potential: cur.Potential,
	})
	if err != nil {
		return fmt.Errorf("updating board for %s: %w", p.ID, err)
	}
	return nil
}

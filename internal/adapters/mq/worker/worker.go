// Package worker defines worker contracts for asynchronous development
// passes.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/prospect/internal/adapters/mq/queue"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/passguard"
	"github.com/okian/prospect/internal/domain/progression"
	"github.com/okian/prospect/internal/domain/types"
	"github.com/okian/prospect/pkg/logger"
	"github.com/okian/prospect/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = queue.Job

// Roster loads and saves player state.
type Roster interface {
	Get(ctx context.Context, id string) (*model.Player, error)
	Put(ctx context.Context, p *model.Player) error
}

// Board receives the derived ranking row after a pass completes.
type Board interface {
	Upsert(ctx context.Context, e types.Entry) (bool, error)
}

// Developer runs a development pass on a player.
type Developer interface {
	Develop(ctx context.Context, p *model.Player, opts ...progression.DevelopOption) error
}

// Guard releases a reserved pass when the job fails, so a retry is not
// rejected as a duplicate.
type Guard interface {
	Unrecord(ctx context.Context, key string)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes development jobs and writes the results back.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing development jobs.
type InMemoryWorker struct {
	queue     Queue
	roster    Roster
	board     Board
	developer Developer
	guard     Guard
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, r Roster, b Board, d Developer, g Guard, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		roster:    r,
		board:     b,
		developer: d,
		guard:     g,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job",
					logger.String("player_id", job.PlayerID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs a single development pass end to end: load the
// player, advance and finalize, save, then refresh the board row.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()

	p, err := w.roster.Get(ctx, job.PlayerID)
	if err != nil {
		// The player was verified at enqueue time; a miss here means a
		// removal raced the job. Nothing to roll back.
		metrics.RecordWorkerError()
		metrics.RecordError("worker", "player_missing")
		return fmt.Errorf("loading player %s: %w", job.PlayerID, err)
	}

	guardKey := passguard.KeyFor(p, job.Years)

	if err := w.develop(ctx, p, job); err != nil {
		w.fail(ctx, guardKey)
		metrics.RecordError("worker", "develop_failed")
		return fmt.Errorf("developing player %s: %w", job.PlayerID, err)
	}

	if err := w.roster.Put(ctx, p); err != nil {
		w.fail(ctx, guardKey)
		metrics.RecordError("worker", "save_failed")
		return fmt.Errorf("saving player %s: %w", job.PlayerID, err)
	}

	cur := p.Current()
	_, err = w.board.Upsert(ctx, types.Entry{
		PlayerID:  p.ID,
		Name:      p.Name,
		Pos:       string(cur.Pos),
		Overall:   cur.Overall,
		Potential: cur.Potential,
	})
	if err != nil {
		// Roster state is already saved; the board will catch up on the
		// next pass.
		metrics.RecordWorkerError()
		metrics.RecordError("worker", "board_failed")
		return fmt.Errorf("updating board for %s: %w", job.PlayerID, err)
	}

	metrics.RecordWorkerJob()
	metrics.RecordDevelop()
	metrics.ObserveDevelopDuration(time.Since(start).Seconds())
	if job.Years > 0 {
		metrics.AddSeasonsProgressed(job.Years)
	}
	return nil
}

// develop translates the job into engine passes. Bulk-generated players
// roll forward in place; existing players get one appended snapshot per
// season so history stays season-by-season.
func (w *InMemoryWorker) develop(ctx context.Context, p *model.Player, job Job) error {
	base := make([]progression.DevelopOption, 0, 3)
	if job.CoachingRank > 0 {
		base = append(base, progression.WithCoachingRank(job.CoachingRank))
	}
	if job.SkipPotential {
		base = append(base, progression.SkipPotential())
	}

	if job.NewPlayer {
		opts := append(base, progression.AsNewPlayer(), progression.WithYears(job.Years))
		return w.developer.Develop(ctx, p, opts...)
	}

	if job.Years == 0 {
		opts := append(base, progression.WithYears(0))
		return w.developer.Develop(ctx, p, opts...)
	}

	for i := 0; i < job.Years; i++ {
		cur := p.Current()
		if cur == nil {
			return progression.ErrNoSnapshot
		}
		p.AddSeason(cur.Season + 1)

		opts := append(base, progression.WithYears(1))
		if err := w.developer.Develop(ctx, p, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (w *InMemoryWorker) fail(ctx context.Context, guardKey string) {
	metrics.RecordWorkerError()
	if w.guard != nil {
		w.guard.Unrecord(ctx, guardKey)
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	roster    Roster
	board     Board
	developer Developer
	guard     Guard

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, r Roster, b Board, d Developer, g Guard) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     q,
		roster:    r,
		board:     b,
		developer: d,
		guard:     g,
		shutdown:  make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q, r, b, d, g,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateActiveWorkers(workerCount)

	return pool
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	p.signalShutdown()

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
	metrics.UpdateActiveWorkers(0)
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new jobs arrive and the dequeue
	// channels drain to closure.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	p.signalShutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateActiveWorkers(0)
	return nil
}

func (p *Pool) signalShutdown() {
	select {
	case <-p.shutdown:
		// already signaled
	default:
		close(p.shutdown)
	}
}

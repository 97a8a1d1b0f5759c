// Package metrics provides Prometheus metrics for the prospect scouting service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Subsystem names grouping the service's metrics.
const (
	subsystemEngine   = "engine"
	subsystemBoard    = "board"
	subsystemPipeline = "pipeline"
	subsystemService  = "service"
)

// Manager manages all Prometheus metrics for the prospect service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Engine metrics - development passes and potential projections
	develops             prometheus.Counter
	developDuration      prometheus.Histogram
	seasonsProgressed    prometheus.Counter
	potentialProjections *prometheus.CounterVec
	bootstrapTrials      prometheus.Counter
	bootstrapDuration    prometheus.Histogram

	// Board metrics - ranked prospect board
	boardSize        prometheus.Gauge
	boardUpdates     prometheus.Counter
	boardRankQueries prometheus.Counter

	// Pipeline metrics - develop-job queue and workers
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	jobsEnqueued  prometheus.Counter
	jobsDequeued  prometheus.Counter
	jobsDropped   prometheus.Counter
	activeWorkers prometheus.Gauge
	workerJobs    prometheus.Counter
	workerErrors  prometheus.Counter
	jobWait       prometheus.Histogram

	// Service metrics - roster, guard, HTTP, errors, system health
	playersTotal        prometheus.Gauge
	guardSize           prometheus.Gauge
	guardHits           prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
	errorsTotal         *prometheus.CounterVec
	systemMemoryUsage   prometheus.Gauge
	systemGoroutines    prometheus.Gauge
	uptimeSeconds       prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prospect",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Engine metrics
	m.develops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemEngine,
		Name:      "develops_total",
		Help:      "Total number of development passes applied to players",
	})

	m.developDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystemEngine,
		Name:      "develop_duration_seconds",
		Help:      "Duration of a full development pass in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.seasonsProgressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemEngine,
		Name:      "seasons_progressed_total",
		Help:      "Total number of single-season progressions applied",
	})

	m.potentialProjections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: subsystemEngine,
			Name:      "potential_projections_total",
			Help:      "Total number of potential projections by estimator strategy",
		},
		[]string{"estimator"},
	)

	m.bootstrapTrials = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemEngine,
		Name:      "bootstrap_trials_total",
		Help:      "Total number of Monte-Carlo rollout trials executed",
	})

	m.bootstrapDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystemEngine,
		Name:      "bootstrap_duration_seconds",
		Help:      "Duration of a full bootstrap projection in seconds",
		Buckets:   m.histogramBuckets,
	})

	// Board metrics
	m.boardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemBoard,
		Name:      "size",
		Help:      "Number of players currently ranked on the prospect board",
	})

	m.boardUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemBoard,
		Name:      "updates_total",
		Help:      "Total number of board upserts",
	})

	m.boardRankQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemBoard,
		Name:      "rank_queries_total",
		Help:      "Total number of rank lookups against the board",
	})

	// Pipeline metrics
	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "queue_size",
		Help:      "Current number of develop jobs waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "queue_capacity",
		Help:      "Maximum develop-job queue capacity",
	})

	m.jobsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "jobs_enqueued_total",
		Help:      "Total number of develop jobs accepted into the queue",
	})

	m.jobsDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "jobs_dequeued_total",
		Help:      "Total number of develop jobs handed to workers",
	})

	m.jobsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "jobs_dropped_total",
		Help:      "Total number of develop jobs rejected on backpressure",
	})

	m.activeWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "active_workers",
		Help:      "Number of workers draining the develop-job queue",
	})

	m.workerJobs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "worker_jobs_total",
		Help:      "Total number of develop jobs completed by workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "worker_errors_total",
		Help:      "Total number of develop jobs that failed in a worker",
	})

	m.jobWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystemPipeline,
		Name:      "job_wait_seconds",
		Help:      "Time a develop job spent queued before a worker picked it up",
		Buckets:   m.histogramBuckets,
	})

	// Service metrics
	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "players_total",
		Help:      "Number of players currently held in the roster store",
	})

	m.guardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "guard_size",
		Help:      "Number of player-season keys tracked by the pass guard",
	})

	m.guardHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "guard_hits_total",
		Help:      "Total number of duplicate develop requests caught by the pass guard",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: subsystemService,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: subsystemService,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests currently being served",
	})

	m.errorsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: subsystemService,
			Name:      "errors_total",
			Help:      "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "system_memory_usage_bytes",
		Help:      "Process heap allocation in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.uptimeSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystemService,
		Name:      "uptime_seconds",
		Help:      "Seconds elapsed since the service started",
	})
}

// Engine metrics functions.

// RecordDevelop increments the development pass counter.
func RecordDevelop() {
	globalManager.develops.Inc()
}

// ObserveDevelopDuration records the duration of a development pass.
func ObserveDevelopDuration(seconds float64) {
	globalManager.developDuration.Observe(seconds)
}

// AddSeasonsProgressed adds to the season progression counter.
func AddSeasonsProgressed(n int) {
	globalManager.seasonsProgressed.Add(float64(n))
}

// RecordPotentialProjection increments the projection counter for an estimator.
func RecordPotentialProjection(estimator string) {
	globalManager.potentialProjections.WithLabelValues(estimator).Inc()
}

// AddBootstrapTrials adds to the rollout trial counter.
func AddBootstrapTrials(n int) {
	globalManager.bootstrapTrials.Add(float64(n))
}

// ObserveBootstrapDuration records the duration of a bootstrap projection.
func ObserveBootstrapDuration(seconds float64) {
	globalManager.bootstrapDuration.Observe(seconds)
}

// Board metrics functions.

// UpdateBoardSize sets the number of ranked players.
func UpdateBoardSize(n int) {
	globalManager.boardSize.Set(float64(n))
}

// RecordBoardUpdate increments the board upsert counter.
func RecordBoardUpdate() {
	globalManager.boardUpdates.Inc()
}

// RecordBoardRankQuery increments the rank lookup counter.
func RecordBoardRankQuery() {
	globalManager.boardRankQueries.Inc()
}

// Pipeline metrics functions.

// UpdateQueueSize sets the current develop-job queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordJobEnqueued increments the enqueued-job counter.
func RecordJobEnqueued() {
	globalManager.jobsEnqueued.Inc()
}

// RecordJobDequeued increments the dequeued-job counter.
func RecordJobDequeued() {
	globalManager.jobsDequeued.Inc()
}

// RecordJobDropped increments the dropped-job counter.
func RecordJobDropped() {
	globalManager.jobsDropped.Inc()
}

// UpdateActiveWorkers sets the number of running workers.
func UpdateActiveWorkers(count int) {
	globalManager.activeWorkers.Set(float64(count))
}

// RecordWorkerJob increments the completed-job counter.
func RecordWorkerJob() {
	globalManager.workerJobs.Inc()
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// ObserveJobWait records how long a job waited in the queue.
func ObserveJobWait(seconds float64) {
	globalManager.jobWait.Observe(seconds)
}

// Service metrics functions.

// UpdatePlayersTotal sets the roster size.
func UpdatePlayersTotal(count int) {
	globalManager.playersTotal.Set(float64(count))
}

// UpdateGuardSize sets the pass-guard entry count.
func UpdateGuardSize(count int64) {
	globalManager.guardSize.Set(float64(count))
}

// RecordGuardHit increments the duplicate develop-request counter.
func RecordGuardHit() {
	globalManager.guardHits.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, status string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(seconds)
}

// IncHTTPInFlight increments the in-flight request gauge.
func IncHTTPInFlight() {
	globalManager.httpInFlight.Inc()
}

// DecHTTPInFlight decrements the in-flight request gauge.
func DecHTTPInFlight() {
	globalManager.httpInFlight.Dec()
}

// RecordError records an error with component and severity labels.
func RecordError(component, severity string) {
	globalManager.errorsTotal.WithLabelValues(component, severity).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// UpdateUptime sets the service uptime in seconds.
func UpdateUptime(seconds float64) {
	globalManager.uptimeSeconds.Set(seconds)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

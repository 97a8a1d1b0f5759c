// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults; Load layers file and env.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Sport selects the rating model: gridiron or hoops.
	Sport string `koanf:"sport"`

	// Estimator selects the potential estimator: regression or bootstrap.
	Estimator string `koanf:"estimator"`

	// BootstrapTrials sets the rollout count per bootstrap projection.
	BootstrapTrials int `koanf:"bootstrap_trials"`

	// Seed pins the random source for reproducible development passes.
	// Zero leaves the source time-seeded.
	Seed uint64 `koanf:"seed"`

	// QueueSize bounds the in-memory development job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of development workers.
	WorkerCount int `koanf:"worker_count"`

	// GuardSize caps the pass-guard reservation cache.
	GuardSize int `koanf:"guard_size"`

	// TeamCount bounds the valid coaching rank range [1, TeamCount].
	TeamCount int `koanf:"team_count"`

	// CoefficientsFile optionally overrides the built-in regression
	// coefficient table with a YAML file.
	CoefficientsFile string `koanf:"coefficients_file"`

	// BoardTopDefault is the board size served when no limit is given.
	BoardTopDefault int `koanf:"board_top_default"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		Sport:           "gridiron",
		Estimator:       "regression",
		BootstrapTrials: 20,
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU(),
		GuardSize:       100_000,
		TeamCount:       30,
		BoardTopDefault: 50,
	}
}

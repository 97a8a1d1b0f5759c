package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if PROSPECT_CONFIG is set
//  3. env (prefix PROSPECT_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PROSPECT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROSPECT_ADDR, PROSPECT_QUEUE_SIZE, ...
	// Map env keys like PROSPECT_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PROSPECT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "prospect_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Sport == "":
		return fmt.Errorf("%w: sport must not be empty", ErrInvalidConfig)
	case c.Estimator != "regression" && c.Estimator != "bootstrap":
		return fmt.Errorf("%w: estimator must be regression or bootstrap, got %q", ErrInvalidConfig, c.Estimator)
	case c.BootstrapTrials < 1:
		return fmt.Errorf("%w: bootstrap_trials must be positive", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.GuardSize < 1:
		return fmt.Errorf("%w: guard_size must be positive", ErrInvalidConfig)
	case c.TeamCount < 1:
		return fmt.Errorf("%w: team_count must be positive", ErrInvalidConfig)
	case c.BoardTopDefault < 1:
		return fmt.Errorf("%w: board_top_default must be positive", ErrInvalidConfig)
	}
	return nil
}

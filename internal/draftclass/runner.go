package draftclass

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/prospect/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// processingWait gives the worker pool time to drain queued passes
// before the roster is fetched back.
const processingWait = 10 * time.Second

// Run executes the complete draft class cycle: generate, create,
// develop, fetch, verify, dump.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting draft class run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("size", config.ClassSize),
		logger.Int("years", config.DevelopYears),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate the class
	rookies, err := GenerateClass(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("class generation failed: %w", err)
	}

	// Step 3: Create every rookie
	if err := submitClass(ctx, config, rookies, stats); err != nil {
		return fmt.Errorf("rookie creation failed: %w", err)
	}

	// Step 4: Queue development passes
	if config.DevelopYears > 0 {
		if err := developClass(ctx, config, rookies, stats); err != nil {
			return fmt.Errorf("development queueing failed: %w", err)
		}

		logger.Get().Info(ctx, "waiting for development passes to drain")
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting: %w", ctx.Err())
		case <-time.After(processingWait):
		}
	}

	// Step 5: Fetch developed players back
	players, err := fetchPlayers(ctx, config, rookies, stats)
	if err != nil {
		return fmt.Errorf("player retrieval failed: %w", err)
	}

	// Step 6: Get the board
	board, err := getBoard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("board retrieval failed: %w", err)
	}

	// Step 7: Verify invariants
	if err := verifyResults(config, players, board, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save the class to file
	if err := saveClassToFile(ctx, config, rookies); err != nil {
		logger.Get().Warn(ctx, "failed to save class to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "draft class run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveClassToFile saves the generated class, with assigned ids, to a
// JSON file.
func saveClassToFile(ctx context.Context, config *Config, rookies []Rookie) error {
	if len(rookies) == 0 {
		return fmt.Errorf("no rookies to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "draft_class_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(rookies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal class: %w", err)
	}
	if err := os.WriteFile(filename, data, logFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "class saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var rookiesPerSecond float64
	if stats.Duration > 0 {
		rookiesPerSecond = float64(stats.RookiesCreated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("rookiesGenerated", stats.RookiesGenerated),
		logger.Int("rookiesCreated", stats.RookiesCreated),
		logger.Int("rookiesFailed", stats.RookiesFailed),
		logger.Int("passesRequested", stats.PassesRequested),
		logger.Int("passesRejected", stats.PassesRejected),
		logger.Int("playersVerified", stats.PlayersVerified),
		logger.Int("invariantFailures", stats.InvariantFailures),
		logger.Int("boardEntries", stats.BoardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("rookiesPerSecond", rookiesPerSecond))
}

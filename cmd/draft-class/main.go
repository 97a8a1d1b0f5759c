package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/prospect/internal/draftclass"
)

// Default configuration constants.
const (
	defaultClassSize    = 200
	defaultDevelopYears = 3
	defaultTopN         = 50
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		classSize  = flag.Int("size", defaultClassSize, "Number of rookies to generate")
		years      = flag.Int("years", defaultDevelopYears, "Seasons to develop each rookie after creation")
		season     = flag.Int("season", time.Now().Year(), "Seed season for the class")
		topN       = flag.Int("top", defaultTopN, "Number of top board rows to fetch")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Uint64("seed", 0, "Random seed for reproducible classes (0 picks one from the clock)")
		outputFile = flag.String("output", "", "Output file for the generated class (default: draft_class_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: draft_class_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		draftclass.ShowHelp()
		return
	}

	// Setup logging
	if err := draftclass.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &draftclass.Config{
		BaseURL:      *baseURL,
		ClassSize:    *classSize,
		DevelopYears: *years,
		Season:       *season,
		TopN:         *topN,
		Workers:      *workers,
		Timeout:      *timeout,
		Seed:         *seed,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	// Run the cycle
	if err := draftclass.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Run failed: " + err.Error() + "\n")
		return
	}
}

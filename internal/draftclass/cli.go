package draftclass

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/prospect/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "draft_class_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the draft class tool.
func ShowHelp() {
	os.Stdout.WriteString(`Prospect Draft Class Tool
=========================

Generates a rookie class, submits it to a running prospect service,
develops every rookie, and verifies the board against the roster.

Usage:
  go run cmd/draft-class/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -size int
        Number of rookies to generate (default 200)
  -years int
        Seasons to develop each rookie after creation (default 3)
  -season int
        Seed season for the class (default: current year)
  -top int
        Number of top board rows to fetch (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed uint
        Random seed for reproducible classes (default: from clock)
  -output string
        Output file for the generated class (default: draft_class_TIMESTAMP.json)
  -log string
        Log file for run output (default: draft_class_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/draft-class/main.go

  # Large reproducible class against a local service
  go run cmd/draft-class/main.go -size 2000 -seed 42 -workers 16

  # Develop every rookie five seasons and dump the class
  go run cmd/draft-class/main.go -years 5 -output class.json
`)
}

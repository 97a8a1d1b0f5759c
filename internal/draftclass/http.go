package draftclass

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTP status codes the run cares about.
const (
	statusOK       = 200
	statusCreated  = 201
	statusAccepted = 202
	statusConflict = 409
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitClass creates every rookie concurrently and fills in the ids the
// service assigned.
func submitClass(ctx context.Context, config *Config, rookies []Rookie, stats *Stats) error {
	log.Printf("submitting %d rookies with %d workers...", len(rookies), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/players"

	var (
		created int64
		failed  int64
	)

	indexChan := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				id, err := createRookie(ctx, client, url, rookies[index])
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("failed to create %s: %v", rookies[index].Name, err)
					}
					continue
				}
				rookies[index].ID = id
				atomic.AddInt64(&created, 1)
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range rookies {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.RookiesCreated = int(atomic.LoadInt64(&created))
	stats.RookiesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("rookie creation completed: created %d, failed %d",
		stats.RookiesCreated, stats.RookiesFailed)

	if stats.RookiesCreated == 0 {
		return fmt.Errorf("no rookies were created")
	}
	return nil
}

// createRookie posts one rookie and returns the id the service assigned.
func createRookie(ctx context.Context, client *HTTPClient, url string, rookie Rookie) (string, error) {
	resp, err := client.Post(ctx, url, rookie)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != statusCreated {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var player Player
	if err := json.Unmarshal(body, &player); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if player.ID == "" {
		return "", fmt.Errorf("creation response carried no id")
	}
	return player.ID, nil
}

// developClass queues a development pass for every created rookie.
func developClass(ctx context.Context, config *Config, rookies []Rookie, stats *Stats) error {
	log.Printf("queueing %d-season development passes with %d workers...",
		config.DevelopYears, config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		accepted int64
		rejected int64
	)

	indexChan := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				rookie := rookies[index]
				if rookie.ID == "" {
					continue
				}

				ok, err := requestDevelop(ctx, client, config.BaseURL, rookie.ID, config.DevelopYears)
				if err != nil {
					atomic.AddInt64(&rejected, 1)
					if config.Verbose {
						log.Printf("develop rejected for %s: %v", rookie.ID, err)
					}
					continue
				}
				if ok {
					atomic.AddInt64(&accepted, 1)
				} else {
					atomic.AddInt64(&rejected, 1)
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range rookies {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.PassesRequested = int(atomic.LoadInt64(&accepted))
	stats.PassesRejected = int(atomic.LoadInt64(&rejected))

	log.Printf("development passes queued: accepted %d, rejected %d",
		stats.PassesRequested, stats.PassesRejected)
	return nil
}

// requestDevelop posts one develop request. A conflict means a pass for
// the target season is already reserved; that counts as rejected but is
// not an error.
func requestDevelop(ctx context.Context, client *HTTPClient, baseURL, playerID string, years int) (bool, error) {
	url := fmt.Sprintf("%s/players/%s/develop", baseURL, playerID)

	resp, err := client.Post(ctx, url, map[string]interface{}{"years": years})
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case statusAccepted:
		return true, nil
	case statusConflict:
		return false, nil
	default:
		return false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
}

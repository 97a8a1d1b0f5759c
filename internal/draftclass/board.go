package draftclass

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// fetchPlayers retrieves the full record for every created rookie
// concurrently.
func fetchPlayers(ctx context.Context, config *Config, rookies []Rookie, stats *Stats) ([]Player, error) {
	log.Printf("fetching %d player records with %d workers...", len(rookies), config.Workers)

	client := newHTTPClient(config.Timeout)

	players := make([]Player, len(rookies))
	var (
		retrieved int64
		failed    int64
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

				id := rookies[index].ID
				if id == "" {
					continue
				}

				player, err := fetchSinglePlayer(ctx, client, config.BaseURL, id)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("failed to fetch %s: %v", id, err)
					}
					continue
				}
				players[index] = player
				atomic.AddInt64(&retrieved, 1)
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

	// Filter out empty entries (failed retrievals)
	valid := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID != "" {
			valid = append(valid, p)
		}
	}

	log.Printf("player retrieval completed: retrieved %d, failed %d",
		len(valid), int(atomic.LoadInt64(&failed)))
	return valid, nil
}

// fetchSinglePlayer retrieves one player record.
func fetchSinglePlayer(ctx context.Context, client *HTTPClient, baseURL, playerID string) (Player, error) {
	url := fmt.Sprintf("%s/players/%s", baseURL, playerID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return Player{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Player{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != statusOK {
		return Player{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var player Player
	if err := json.Unmarshal(body, &player); err != nil {
		return Player{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return player, nil
}

// getBoard retrieves the top N prospect board rows.
func getBoard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	log.Printf("getting top %d board rows...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/board?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != statusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var board []Entry
	if err := json.Unmarshal(body, &board); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.BoardEntries = len(board)
	log.Printf("retrieved %d board rows", len(board))
	return board, nil
}

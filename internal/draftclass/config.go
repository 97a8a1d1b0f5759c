package draftclass

import "time"

// Config holds configuration for a draft class run.
type Config struct {
	BaseURL      string        // Base URL of the service
	ClassSize    int           // Number of rookies to generate
	TopN         int           // Number of top board rows to fetch
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	DevelopYears int           // Seasons to develop each rookie after creation
	Season       int           // Seed season for the class
	Seed         uint64        // Random seed; zero picks one from the clock
	OutputFile   string        // Output file for the generated class
	LogFile      string        // Log file for run output
	Verbose      bool          // Enable verbose logging
}

// Born mirrors the service's birth record.
type Born struct {
	Origin string `json:"origin"`
	Year   int    `json:"year"`
}

// Rookie is the payload submitted to POST /players.
type Rookie struct {
	Name   string         `json:"name"`
	Born   Born           `json:"born"`
	Height int            `json:"height"`
	Weight int            `json:"weight"`
	Season int            `json:"season"`
	Attrs  map[string]int `json:"attrs"`

	// ID is filled from the creation response.
	ID string `json:"id,omitempty"`
}

// Snapshot is the slice of a player response the verifier needs.
type Snapshot struct {
	Season    int    `json:"season"`
	Overall   int    `json:"overall"`
	Potential int    `json:"potential"`
	Pos       string `json:"pos"`
}

// Player is the slice of a GET /players/{id} response the verifier needs.
type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Born      Born       `json:"born"`
	Snapshots []Snapshot `json:"snapshots"`
}

// Entry represents one prospect board row.
type Entry struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Pos       string `json:"pos"`
	Overall   int    `json:"overall"`
	Potential int    `json:"potential"`
}

// AckResponse represents the response from a develop request.
type AckResponse struct {
	Status   string `json:"status"`
	PlayerID string `json:"player_id"`
}

// Stats holds run statistics.
type Stats struct {
	RookiesGenerated  int
	RookiesCreated    int
	RookiesFailed     int
	PassesRequested   int
	PassesRejected    int
	PlayersVerified   int
	InvariantFailures int
	BoardEntries      int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

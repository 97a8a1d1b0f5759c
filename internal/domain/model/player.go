// Package model contains domain models passed between layers.
package model

// Position identifies a position code within a sport's canonical list.
type Position string

// Undrafted is the team sentinel for players without a team assignment.
// The draft record mirrors the current snapshot only while Team equals it.
const Undrafted = ""

// RatingsSnapshot is one season's rating vector for a player.
// Overall and Potential are integers in [0,100]; Potential is never
// below the Overall computed in the same development pass. For
// multi-position sports the per-position maps carry an entry for every
// valid position code, including those that lose the primary comparison.
type RatingsSnapshot struct {
	Season            int              `json:"season"`             // league year the snapshot belongs to
	Attrs             map[string]int   `json:"attrs"`              // named attributes, each bounded [0,100]
	Overall           int              `json:"overall"`            // aggregate rating at the chosen position
	Potential         int              `json:"potential"`          // projected long-run ceiling
	PositionOverall   map[Position]int `json:"position_overall"`   // multi-position sports only
	PositionPotential map[Position]int `json:"position_potential"` // multi-position sports only
	Pos               Position         `json:"pos"`                // chosen primary position
	Skills            []string         `json:"skills"`             // ordered skill tags
}

// Clone returns a deep copy with no shared references, suitable for
// speculative rollouts that must not observe each other's state.
func (s *RatingsSnapshot) Clone() *RatingsSnapshot {
	if s == nil {
		return nil
	}

	c := &RatingsSnapshot{
		Season:    s.Season,
		Overall:   s.Overall,
		Potential: s.Potential,
		Pos:       s.Pos,
	}
	if s.Attrs != nil {
		c.Attrs = make(map[string]int, len(s.Attrs))
		for k, v := range s.Attrs {
			c.Attrs[k] = v
		}
	}
	if s.PositionOverall != nil {
		c.PositionOverall = make(map[Position]int, len(s.PositionOverall))
		for k, v := range s.PositionOverall {
			c.PositionOverall[k] = v
		}
	}
	if s.PositionPotential != nil {
		c.PositionPotential = make(map[Position]int, len(s.PositionPotential))
		for k, v := range s.PositionPotential {
			c.PositionPotential[k] = v
		}
	}
	if s.Skills != nil {
		c.Skills = append(make([]string, 0, len(s.Skills)), s.Skills...)
	}
	return c
}

// Born records a player's origin and birth year.
type Born struct {
	Origin string `json:"origin"` // birthplace, free-form
	Year   int    `json:"year"`   // birth year driving age bookkeeping
}

// DraftRecord mirrors the latest snapshot's scouting numbers while the
// player is undrafted; it is frozen once a team is assigned.
type DraftRecord struct {
	Overall   int      `json:"overall"`
	Potential int      `json:"potential"`
	Skills    []string `json:"skills"`
}

// Player owns its snapshot history and draft record. The development
// engine mutates the player in place; only the last snapshot is ever
// mutated, prior snapshots are immutable history.
type Player struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Born        Born              `json:"born"`
	Height      int               `json:"height"` // inches
	Weight      int               `json:"weight"` // pounds
	Team        string            `json:"team"`   // Undrafted when empty
	PosOverride Position          `json:"pos_override,omitempty"`
	Draft       DraftRecord       `json:"draft"`
	Snapshots   []RatingsSnapshot `json:"snapshots"`
}

// Current returns the snapshot under development, or nil when the
// player carries no history yet.
func (p *Player) Current() *RatingsSnapshot {
	if p == nil || len(p.Snapshots) == 0 {
		return nil
	}
	return &p.Snapshots[len(p.Snapshots)-1]
}

// Age reports the player's age in the given season.
func (p *Player) Age(season int) int {
	return season - p.Born.Year
}

// AddSeason appends a new snapshot for the given season, carrying the
// previous season's attributes forward, and returns it for mutation.
// Appending freezes the prior snapshot as history.
func (p *Player) AddSeason(season int) *RatingsSnapshot {
	cur := p.Current()
	var next *RatingsSnapshot
	if cur != nil {
		next = cur.Clone()
	} else {
		next = &RatingsSnapshot{}
	}
	next.Season = season
	p.Snapshots = append(p.Snapshots, *next)
	return &p.Snapshots[len(p.Snapshots)-1]
}

// Undrafted reports whether the draft record still tracks the current
// snapshot.
func (p *Player) Undrafted() bool {
	return p.Team == Undrafted
}

// Clone returns a deep copy of the player with no shared references.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}

	c := *p
	if p.Draft.Skills != nil {
		c.Draft.Skills = append(make([]string, 0, len(p.Draft.Skills)), p.Draft.Skills...)
	}
	if p.Snapshots != nil {
		c.Snapshots = make([]RatingsSnapshot, len(p.Snapshots))
		for i := range p.Snapshots {
			c.Snapshots[i] = *p.Snapshots[i].Clone()
		}
	}
	return &c
}

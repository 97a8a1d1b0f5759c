package draftclass

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okian/prospect/pkg/logger"
)

// Age bounds for incoming rookies.
const (
	minRookieAge = 19
	maxRookieAge = 22
)

// baselineMin and baselineSpan bound the roll for attributes outside an
// archetype's focus.
const (
	baselineMin  = 25
	baselineSpan = 30
)

// archetype describes one position profile: which attributes get boosted
// rolls and the plausible frame for the position.
type archetype struct {
	label     string
	focus     map[string][2]int // attribute -> [min, max] roll
	heightMin int               // inches
	heightMax int
	weightMin int // pounds
	weightMax int
}

// One archetype per primary position group. Focus ranges sit above the
// baseline so the service's position selector lands where intended most
// of the time.
var archetypes = []archetype{
	{"passer", map[string][2]int{"throwing": {60, 92}, "awareness": {45, 80}, "stamina": {50, 75}}, 73, 78, 200, 240},
	{"runner", map[string][2]int{"carrying": {60, 90}, "speed": {60, 92}, "agility": {50, 85}, "strength": {45, 75}}, 68, 73, 195, 225},
	{"receiver", map[string][2]int{"catching": {60, 92}, "speed": {60, 90}, "agility": {50, 85}}, 70, 77, 180, 215},
	{"tight_end", map[string][2]int{"catching": {50, 82}, "strength": {55, 85}, "carrying": {40, 70}}, 75, 80, 240, 265},
	{"blocker", map[string][2]int{"strength": {65, 95}, "awareness": {45, 78}, "stamina": {50, 80}}, 75, 80, 290, 330},
	{"rusher", map[string][2]int{"strength": {60, 90}, "tackling": {55, 88}, "speed": {40, 70}}, 74, 79, 260, 300},
	{"backer", map[string][2]int{"tackling": {60, 90}, "awareness": {45, 80}, "coverage": {35, 65}, "speed": {50, 78}}, 72, 76, 230, 255},
	{"corner", map[string][2]int{"coverage": {60, 92}, "speed": {62, 92}, "agility": {55, 85}}, 69, 74, 175, 200},
	{"safety", map[string][2]int{"coverage": {50, 82}, "tackling": {50, 80}, "awareness": {50, 82}, "speed": {55, 82}}, 70, 75, 190, 215},
	{"kicker", map[string][2]int{"kicking": {62, 94}, "awareness": {45, 75}}, 69, 75, 170, 210},
}

var attributeNames = []string{
	"strength", "speed", "agility", "awareness", "throwing",
	"catching", "carrying", "tackling", "coverage", "kicking", "stamina",
}

var firstNames = []string{
	"Jalen", "Marcus", "Devon", "Tyrese", "Caleb", "Xavier", "Jordan",
	"Malik", "Bryce", "Darius", "Trey", "Kameron", "Elijah", "Isaiah",
	"Amari", "Zion", "Cooper", "Drake", "Nolan", "Grayson",
}

var lastNames = []string{
	"Brooks", "Carter", "Dawson", "Ellison", "Franklin", "Graves",
	"Hayes", "Irving", "Jennings", "Kirkland", "Lawson", "Mercer",
	"Norwood", "Osborne", "Pruitt", "Quinn", "Rollins", "Sutton",
	"Thorne", "Vance", "Whitfield", "Yates",
}

var origins = []string{
	"Austin, TX", "Tampa, FL", "Columbus, OH", "Mobile, AL", "Fresno, CA",
	"Lincoln, NE", "Baton Rouge, LA", "Knoxville, TN", "Tulsa, OK",
	"Spokane, WA", "Macon, GA", "Dayton, OH",
}

// GenerateClass rolls a rookie class. The same seed always produces the
// same class.
func GenerateClass(ctx context.Context, config *Config, stats *Stats) ([]Rookie, error) {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, 0))

	logger.Get().Info(ctx, "generating draft class",
		logger.Int("size", config.ClassSize),
		logger.Int("season", config.Season),
		logger.Any("seed", seed))

	if config.ClassSize <= 0 {
		return nil, fmt.Errorf("class size must be positive, got %d", config.ClassSize)
	}

	rookies := make([]Rookie, config.ClassSize)
	for i := range rookies {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during class generation: %w", ctx.Err())
		default:
		}
		rookies[i] = rollRookie(rng, config.Season)
	}

	stats.RookiesGenerated = len(rookies)
	logger.Get().Info(ctx, "generated draft class", logger.Int("count", len(rookies)))
	return rookies, nil
}

// rollRookie rolls one rookie from a random archetype.
func rollRookie(rng *rand.Rand, season int) Rookie {
	arch := archetypes[rng.IntN(len(archetypes))]
	age := minRookieAge + rng.IntN(maxRookieAge-minRookieAge+1)

	attrs := make(map[string]int, len(attributeNames))
	for _, name := range attributeNames {
		attrs[name] = baselineMin + rng.IntN(baselineSpan+1)
	}
	for name, bounds := range arch.focus {
		attrs[name] = bounds[0] + rng.IntN(bounds[1]-bounds[0]+1)
	}

	return Rookie{
		Name:   firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
		Born:   Born{Origin: origins[rng.IntN(len(origins))], Year: season - age},
		Height: arch.heightMin + rng.IntN(arch.heightMax-arch.heightMin+1),
		Weight: arch.weightMin + rng.IntN(arch.weightMax-arch.weightMin+1),
		Season: season,
		Attrs:  attrs,
	}
}

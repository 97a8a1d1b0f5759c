package sport

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is a uniform sampler. Strategies draw all randomness from
// it so that a seeded source makes season progression reproducible.
type RandomSource interface {
	// UniformInt returns a uniform integer in [min, max] inclusive.
	UniformInt(min, max int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// cryptoSource is the default, non-reproducible source.
type cryptoSource struct{}

// NewSource returns a crypto-backed source for live progression where
// reproducibility is not required.
func NewSource() RandomSource { return cryptoSource{} }

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoSource) UniformInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return min + int(c.Float64()*float64(span))
}

// seededSource is deterministic; distinct stream values yield
// independent sequences under the same seed.
type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a reproducible source. Simulation trials pass
// their trial index as the stream so trials never share a sequence.
func NewSeededSource(seed, stream uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, stream))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) UniformInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.r.IntN(max-min+1)
}

package risk

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the jitter and synthetic draws used across scoring.
// Implementations must be safe for use from the goroutine that owns the
// classifier; the default source is additionally safe for concurrent use.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a seeded Source. The same seed reproduces the same
// sequence of draws, which tests rely on.
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// DefaultSource returns a time-seeded Source for production use. The values
// drawn from it are illustrative telemetry, not security material.
func DefaultSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

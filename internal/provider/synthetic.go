package provider

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/plantdoc/backend/internal/domain"
)

const syntheticNote = "no classifier evidence available; report fields are synthetic placeholders"

// Synthetic is the last option of every fallback chain. It always succeeds
// without a disease signal and is the single source of randomized filler, so
// a fixed seed makes reports reproducible.
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthetic creates a synthetic provider; seed 0 seeds from the clock
func NewSynthetic(seed uint64) *Synthetic {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Synthetic{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Name returns the provider identifier
func (s *Synthetic) Name() domain.ProviderName {
	return domain.ProviderSynthetic
}

// Analyze returns the placeholder payload
func (s *Synthetic) Analyze(_ context.Context, _ domain.ImageInput, _ *domain.GeoCoordinates) domain.Outcome {
	return domain.Succeeded(s.Name(), domain.SyntheticPayload{Note: syntheticNote})
}

// Float64Range returns a value in [lo, hi)
func (s *Synthetic) Float64Range(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// IntRange returns a value in [lo, hi)
func (s *Synthetic) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo)
}

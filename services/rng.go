package services

import (
	"math/rand"
	"sync"
)

// RNG is the seeded random source all stochastic outcomes (battles, mission
// draws, action rolls) route through, so a fixed seed reproduces a full
// session. Guarded because fiber handlers run concurrently.
type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG returns a generator seeded with the given value.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0,1).
func (g *RNG) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Float64()
}

// Intn returns a uniform draw in [0,n).
func (g *RNG) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Intn(n)
}

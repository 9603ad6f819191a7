package core

import (
	"math/rand/v2"
	"sync"
)

// RNG is the engine's source of randomness. Real sources return values in
// [0, 1); test stubs may return 1.0 to reach the top of a range.
type RNG interface {
	Float64() float64
}

// lockedRNG serialises access to a math/rand/v2 generator, which is not
// safe for concurrent use on its own.
type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG returns a PCG-backed RNG. A zero seed picks a random one.
func NewRNG(seed uint64) RNG {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

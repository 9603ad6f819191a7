package core

import "sync"

// DefaultPoints is the number of samples in the visible window.
const DefaultPoints = 40

// DefaultSeedValue is the constant every slot holds before the first tick.
const DefaultSeedValue = 40

// SeriesBuffer is a fixed-size sliding window of samples. Its length never
// changes after construction: every Append overwrites the oldest slot.
type SeriesBuffer struct {
	mu   sync.RWMutex
	data []float64
	head int // slot holding the oldest sample, next to be overwritten
}

// NewSeriesBuffer creates a buffer of capacity samples, all equal to seed.
// A non-positive capacity falls back to DefaultPoints.
func NewSeriesBuffer(capacity int, seed float64) *SeriesBuffer {
	if capacity <= 0 {
		capacity = DefaultPoints
	}
	b := &SeriesBuffer{data: make([]float64, capacity)}
	b.fill(seed)
	return b
}

// Append inserts sample as the newest value and evicts the oldest.
func (b *SeriesBuffer) Append(sample float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[b.head] = sample
	b.head = (b.head + 1) % len(b.data)
}

// Snapshot returns an independent oldest-first copy of the window.
func (b *SeriesBuffer) Snapshot() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float64, len(b.data))
	n := copy(out, b.data[b.head:])
	copy(out[n:], b.data[:b.head])
	return out
}

// Latest returns the most recently appended sample.
func (b *SeriesBuffer) Latest() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[(b.head-1+len(b.data))%len(b.data)]
}

// CurrentLoad returns the latest sample rounded for display.
func (b *SeriesBuffer) CurrentLoad() int {
	return CurrentLoad(b.Latest())
}

// Len returns the fixed capacity of the window.
func (b *SeriesBuffer) Len() int {
	return len(b.data)
}

// Reset refills every slot with seed.
func (b *SeriesBuffer) Reset(seed float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fill(seed)
}

func (b *SeriesBuffer) fill(seed float64) {
	for i := range b.data {
		b.data[i] = seed
	}
	b.head = 0
}

package core

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// stubRNG replays a fixed sequence of draws, cycling when exhausted.
type stubRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func newStubRNG(values ...float64) *stubRNG {
	return &stubRNG{values: values}
}

func (s *stubRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// manualTicker fires only when the test sends on it.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// manualTickers hands out one manualTicker per requested period.
type manualTickers struct {
	mu      sync.Mutex
	tickers map[time.Duration]*manualTicker
}

func newManualTickers() *manualTickers {
	return &manualTickers{tickers: make(map[time.Duration]*manualTicker)}
}

func (f *manualTickers) factory(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	f.tickers[d] = t
	return t
}

func (f *manualTickers) get(t *testing.T, d time.Duration) *manualTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	tk, ok := f.tickers[d]
	if !ok {
		t.Fatalf("no ticker armed for period %s", d)
	}
	return tk
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

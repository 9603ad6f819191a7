package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Default schedule periods.
const (
	DefaultWalkPeriod   = 100 * time.Millisecond
	DefaultJitterPeriod = 2 * time.Second
	DefaultLogPeriod    = 3 * time.Second
)

var (
	// ErrClockRunning is returned by Start when the clock is already armed.
	ErrClockRunning = errors.New("simulation clock already running")
	// ErrNoSchedules is returned by Start when nothing has been scheduled.
	ErrNoSchedules = errors.New("simulation clock has no schedules")
)

// Ticker is the subset of time.Ticker the clock depends on.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Schedule is one periodic task owned by the clock.
type Schedule struct {
	Name   string
	Period time.Duration
	Fn     func(at time.Time)
}

type firing struct {
	idx int
	at  time.Time
}

// SimulationClock drives a fixed set of schedules. Each schedule has its
// own ticker, but every callback runs on a single dispatch goroutine, so
// two callbacks never overlap. Ordering across schedules is unspecified.
type SimulationClock struct {
	mu        sync.Mutex
	schedules []Schedule
	newTicker TickerFactory

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulationClock creates a stopped clock. A nil factory uses real tickers.
func NewSimulationClock(newTicker TickerFactory, schedules ...Schedule) *SimulationClock {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &SimulationClock{
		schedules: append([]Schedule(nil), schedules...),
		newTicker: newTicker,
	}
}

// Start arms every schedule. Cancelling ctx halts the clock as well; a
// clock halted that way may be started again.
func (c *SimulationClock) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		select {
		case <-c.done:
			// Halted by its parent context; release it and rearm.
			c.cancel()
			c.cancel = nil
		default:
			return ErrClockRunning
		}
	}
	if len(c.schedules) == 0 {
		return ErrNoSchedules
	}
	for _, s := range c.schedules {
		if s.Period <= 0 {
			return fmt.Errorf("schedule %q: period must be positive, got %s", s.Name, s.Period)
		}
		if s.Fn == nil {
			return fmt.Errorf("schedule %q: callback is nil", s.Name)
		}
	}

	// A previous run may still be draining after a concurrent Stop.
	if c.done != nil {
		<-c.done
	}

	runCtx, cancel := context.WithCancel(ctx)
	firings := make(chan firing)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i, s := range c.schedules {
		ticker := c.newTicker(s.Period)
		wg.Add(1)
		go func() {
			defer wg.Done()
			pump(runCtx, i, ticker, firings)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.dispatch(runCtx, firings)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	c.cancel = cancel
	c.done = done
	return nil
}

// Stop disarms every schedule and waits until no callback is running.
// It reports whether the clock had been started since the last Stop, even
// if its parent context has already halted it. It is safe to call before
// Start and more than once.
func (c *SimulationClock) Stop() bool {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return cancel != nil
}

// Running reports whether the clock is armed and its goroutines are live.
func (c *SimulationClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func pump(ctx context.Context, idx int, ticker Ticker, out chan<- firing) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.C():
			select {
			case out <- firing{idx: idx, at: at}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *SimulationClock) dispatch(ctx context.Context, in <-chan firing) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-in:
			if ctx.Err() != nil {
				return
			}
			c.schedules[f.idx].Fn(f.at)
		}
	}
}

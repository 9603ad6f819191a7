package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// EngineDeps are the optional collaborators of an Engine. Nil fields fall
// back to a random RNG, a no-op logger, real tickers and time.Now.
type EngineDeps struct {
	RNG       RNG
	Logger    observability.Logger
	Events    EventLogger
	Metrics   MetricsRecorder
	NewTicker TickerFactory
	Now       func() time.Time
}

// Engine composes the walk, the service jitter and the live stream behind
// one SimulationClock. Rendering code reads it through Snapshot only.
type Engine struct {
	cfg    models.Config
	params WalkParams

	rng     RNG
	logger  observability.Logger
	events  EventLogger
	metrics MetricsRecorder
	now     func() time.Time

	series   *SeriesBuffer
	stream   *EventLog
	services *ServiceRegistry
	gen      *LogGenerator
	clock    *SimulationClock

	// walkMu makes read-previous, advance and append one atomic step.
	walkMu      sync.Mutex
	currentLoad int
}

// NewEngine builds a stopped engine seeded from cfg.
func NewEngine(cfg models.Config, deps EngineDeps) *Engine {
	e := &Engine{
		cfg:     cfg,
		params:  WalkParamsFromConfig(cfg.Walk),
		rng:     deps.RNG,
		logger:  deps.Logger,
		events:  deps.Events,
		metrics: deps.Metrics,
		now:     deps.Now,
	}
	if e.rng == nil {
		e.rng = NewRNG(0)
	}
	if e.logger == nil {
		e.logger = observability.NoopLogger()
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.series = NewSeriesBuffer(cfg.Engine.Points, cfg.Engine.SeedValue)
	e.stream = NewEventLog(cfg.Events.Capacity)
	e.services = NewServiceRegistry(cfg.Services, cfg.Jitter.StepMs, cfg.Jitter.FloorMs, e.rng)
	e.gen = NewLogGenerator(DefaultLogCatalog, cfg.Events.WarningThreshold, e.rng)
	e.currentLoad = cfg.Engine.InitialLoad

	e.clock = NewSimulationClock(deps.NewTicker,
		Schedule{Name: "walk", Period: cfg.Schedule.Walk, Fn: func(time.Time) { e.StepWalk() }},
		Schedule{Name: "jitter", Period: cfg.Schedule.Jitter, Fn: func(time.Time) { e.StepJitter() }},
		Schedule{Name: "log", Period: cfg.Schedule.Log, Fn: func(at time.Time) { e.StepLog(at) }},
	)
	return e
}

// Start reseeds the engine state and arms the clock.
func (e *Engine) Start(ctx context.Context) error {
	if e.clock.Running() {
		return ErrClockRunning
	}
	e.reset()
	if err := e.clock.Start(ctx); err != nil {
		return fmt.Errorf("starting simulation clock: %w", err)
	}
	e.observeLatencies()

	e.logger.Info(ctx, "engine started",
		observability.Int("points", e.series.Len()),
		observability.String("walk_period", e.cfg.Schedule.Walk.String()),
	)
	e.emit(EventEngineStarted, map[string]any{
		"points": e.series.Len(),
		"seed":   e.cfg.Engine.SeedValue,
	})
	return nil
}

// Stop disarms the clock. Once it returns, no schedule mutates the engine.
func (e *Engine) Stop() {
	if !e.clock.Stop() {
		return
	}
	e.logger.Info(context.Background(), "engine stopped",
		observability.Int("current_load", e.CurrentLoad()))
	e.emit(EventEngineStopped, map[string]any{"current_load": e.CurrentLoad()})
}

// Running reports whether the clock is armed.
func (e *Engine) Running() bool {
	return e.clock.Running()
}

// Reset reseeds the series, empties the live stream and restores the
// configured services without touching the clock.
func (e *Engine) Reset() {
	e.reset()
	e.observeLatencies()
	e.logger.Debug(context.Background(), "engine reset")
	e.emit(EventEngineReset, nil)
}

func (e *Engine) reset() {
	e.walkMu.Lock()
	defer e.walkMu.Unlock()
	e.series.Reset(e.cfg.Engine.SeedValue)
	e.stream.Reset()
	e.services.Reset(e.cfg.Services)
	e.currentLoad = e.cfg.Engine.InitialLoad
}

// StepWalk advances the metric by one tick and returns the new sample.
func (e *Engine) StepWalk() float64 {
	e.walkMu.Lock()
	next := Advance(e.series.Latest(), e.params, e.rng)
	e.series.Append(next)
	e.currentLoad = CurrentLoad(next)
	e.walkMu.Unlock()

	if e.metrics != nil {
		e.metrics.ObserveLoad(next)
	}
	return next
}

// StepJitter applies one round of latency jitter to every service.
func (e *Engine) StepJitter() {
	e.services.Jitter()
	e.observeLatencies()
}

func (e *Engine) observeLatencies() {
	if e.metrics == nil {
		return
	}
	for _, s := range e.services.Snapshot() {
		e.metrics.ObserveLatency(s.Name, s.LatencyMs)
	}
}

// StepLog records one synthetic live stream entry stamped with at. A zero
// at uses the engine's clock.
func (e *Engine) StepLog(at time.Time) models.LogEntry {
	if at.IsZero() {
		at = e.now()
	}
	msg, sev := e.gen.Next()
	entry := e.stream.Record(msg, sev, at)

	if e.metrics != nil {
		e.metrics.CountLogEntry(sev)
	}
	if sev == models.SeverityWarning {
		e.logger.Warn(context.Background(), "warning entry recorded",
			observability.String("message", msg))
		e.emit(EventLogWarning, map[string]any{"id": entry.ID, "message": msg})
	}
	return entry
}

// CurrentLoad returns the rounded latest sample, or the configured initial
// load before the first walk tick.
func (e *Engine) CurrentLoad() int {
	e.walkMu.Lock()
	defer e.walkMu.Unlock()
	return e.currentLoad
}

// Snapshot copies the engine state for one render.
func (e *Engine) Snapshot() models.DashboardSnapshot {
	e.walkMu.Lock()
	samples := e.series.Snapshot()
	load := e.currentLoad
	e.walkMu.Unlock()

	return models.DashboardSnapshot{
		TakenAt:     e.now(),
		Running:     e.Running(),
		Samples:     samples,
		CurrentLoad: load,
		Services:    e.services.Snapshot(),
		Logs:        e.stream.Snapshot(),
	}
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() models.Config {
	return e.cfg
}

func (e *Engine) emit(eventType string, data map[string]any) {
	if e.events == nil {
		return
	}
	if err := e.events.LogEvent(eventType, data); err != nil {
		e.logger.Warn(context.Background(), "writing event trail",
			observability.String("event", eventType), observability.Err(err))
	}
}

package core

import "github.com/valter-silva-au/sentinel/pkg/models"

// EventLogger is the subset of the observability event trail that the
// engine needs. Defining it here avoids importing a concrete trail.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// MetricsRecorder receives engine measurements as they are produced.
type MetricsRecorder interface {
	ObserveLoad(sample float64)
	ObserveLatency(service string, latencyMs int)
	CountLogEntry(severity models.Severity)
}

// Event types written to the EventLogger.
const (
	EventEngineStarted = "engine.started"
	EventEngineStopped = "engine.stopped"
	EventEngineReset   = "engine.reset"
	EventLogWarning    = "log.warning"
)

package core

import (
	"sync"
	"time"

	"github.com/valter-silva-au/sentinel/pkg/models"
)

// DefaultEventCapacity keeps the previous five entries plus the newest.
const DefaultEventCapacity = 6

// DefaultWarningThreshold makes roughly one entry in ten a warning.
const DefaultWarningThreshold = 0.9

// DefaultLogCatalog is the fixed set of messages the live stream draws from.
var DefaultLogCatalog = []string{
	"Packet handshake acknowledged",
	"Cache invalidated",
	"Load balancer optimized",
	"Incoming webhook verified",
	"Database shard sync",
	"Health check passed",
}

// EventLog is a fixed-capacity sliding window of log entries. Once full,
// each Record drops the oldest entry.
type EventLog struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	head    int // next write position
	count   int
	nextID  uint64
}

// NewEventLog creates an empty window. A non-positive capacity falls back
// to DefaultEventCapacity.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	return &EventLog{entries: make([]models.LogEntry, capacity)}
}

// Record appends a new entry stamped with at and returns it. IDs increase
// monotonically for the lifetime of the log, across Reset.
func (l *EventLog) Record(message string, severity models.Severity, at time.Time) models.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	entry := models.LogEntry{
		ID:        l.nextID,
		Time:      at,
		Timestamp: at.Format(models.TimestampLayout),
		Message:   message,
		Severity:  severity,
	}

	l.entries[l.head] = entry
	l.head = (l.head + 1) % len(l.entries)
	if l.count < len(l.entries) {
		l.count++
	}
	return entry
}

// Snapshot returns the retained entries oldest-first.
func (l *EventLog) Snapshot() []models.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.LogEntry, l.count)
	start := (l.head - l.count + len(l.entries)) % len(l.entries)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(start+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of retained entries.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Capacity returns the maximum number of retained entries.
func (l *EventLog) Capacity() int {
	return len(l.entries)
}

// Reset empties the window.
func (l *EventLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
	l.head = 0
	l.count = 0
}

// LogGenerator picks the message and severity of the next synthetic entry.
type LogGenerator struct {
	catalog   []string
	threshold float64
	rng       RNG
}

// NewLogGenerator creates a generator over catalog. An empty catalog falls
// back to DefaultLogCatalog.
func NewLogGenerator(catalog []string, warningThreshold float64, rng RNG) *LogGenerator {
	if len(catalog) == 0 {
		catalog = DefaultLogCatalog
	}
	return &LogGenerator{
		catalog:   append([]string(nil), catalog...),
		threshold: warningThreshold,
		rng:       rng,
	}
}

// Next draws a message uniformly from the catalog, then a severity: a draw
// above the warning threshold yields a warning.
func (g *LogGenerator) Next() (string, models.Severity) {
	idx := int(g.rng.Float64() * float64(len(g.catalog)))
	if idx >= len(g.catalog) {
		idx = len(g.catalog) - 1
	}
	if idx < 0 {
		idx = 0
	}

	severity := models.SeveritySuccess
	if g.rng.Float64() > g.threshold {
		severity = models.SeverityWarning
	}
	return g.catalog[idx], severity
}

package observability

import (
	"fmt"
	"time"
)

// TrailSummary holds counts derived from the operations trail.
type TrailSummary struct {
	EventCount        int            `json:"event_count"`
	EngineStarts      int            `json:"engine_starts"`
	EngineStops       int            `json:"engine_stops"`
	EngineResets      int            `json:"engine_resets"`
	Warnings          int            `json:"warnings"`
	WarningsByMessage map[string]int `json:"warnings_by_message"`
	EventsByLevel     map[string]int `json:"events_by_level"`
	OldestEvent       *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time     `json:"newest_event,omitempty"`
}

// TrailSummarizer derives a TrailSummary from the event trail.
type TrailSummarizer interface {
	Summarize(since time.Time) (*TrailSummary, error)
}

type trailSummarizer struct {
	eventLog EventLog
}

// NewTrailSummarizer creates a TrailSummarizer that reads from eventLog.
func NewTrailSummarizer(eventLog EventLog) TrailSummarizer {
	return &trailSummarizer{eventLog: eventLog}
}

// Summarize reads all events since the given time and aggregates them.
func (ts *trailSummarizer) Summarize(since time.Time) (*TrailSummary, error) {
	events, err := ts.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for summary: %w", err)
	}

	s := &TrailSummary{
		EventCount:        len(events),
		WarningsByMessage: make(map[string]int),
		EventsByLevel:     make(map[string]int),
	}

	for i, event := range events {
		if i == 0 {
			t := event.Time
			s.OldestEvent = &t
		}
		t := event.Time
		s.NewestEvent = &t
		s.EventsByLevel[event.Level]++

		switch event.Type {
		case "engine.started":
			s.EngineStarts++
		case "engine.stopped":
			s.EngineStops++
		case "engine.reset":
			s.EngineResets++
		case "log.warning":
			s.Warnings++
			if msg, ok := event.Data["message"].(string); ok {
				s.WarningsByMessage[msg]++
			}
		}
	}

	return s, nil
}

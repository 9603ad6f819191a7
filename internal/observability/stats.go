package observability

import (
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// WindowStats summarises one dashboard snapshot.
type WindowStats struct {
	Samples       int     `json:"samples"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	CurrentLoad   int     `json:"current_load"`
	LogEntries    int     `json:"log_entries"`
	WarningCount  int     `json:"warning_count"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
}

// StatsCalculator derives WindowStats from a snapshot.
type StatsCalculator interface {
	Calculate(snap models.DashboardSnapshot) WindowStats
}

type statsCalculator struct{}

// NewStatsCalculator returns the default StatsCalculator.
func NewStatsCalculator() StatsCalculator {
	return statsCalculator{}
}

func (statsCalculator) Calculate(snap models.DashboardSnapshot) WindowStats {
	s := WindowStats{
		Samples:      len(snap.Samples),
		CurrentLoad:  snap.CurrentLoad,
		LogEntries:   len(snap.Logs),
		WarningCount: snap.WarningCount(),
	}

	if len(snap.Samples) > 0 {
		s.Min, s.Max = snap.Samples[0], snap.Samples[0]
		var sum float64
		for _, v := range snap.Samples {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
			sum += v
		}
		s.Mean = sum / float64(len(snap.Samples))
	}

	if len(snap.Services) > 0 {
		var total int
		for _, svc := range snap.Services {
			total += svc.LatencyMs
		}
		s.MeanLatencyMs = float64(total) / float64(len(snap.Services))
	}
	return s
}

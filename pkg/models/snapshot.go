package models

import "time"

// DashboardSnapshot is an immutable copy of everything the rendering
// surface needs for one frame.
type DashboardSnapshot struct {
	TakenAt     time.Time     `json:"taken_at"`
	Running     bool          `json:"running"`
	Samples     []float64     `json:"samples"`
	CurrentLoad int           `json:"current_load"`
	Services    []ServiceNode `json:"services"`
	Logs        []LogEntry    `json:"logs"`
}

// WarningCount returns how many entries in the snapshot's log window are warnings.
func (s DashboardSnapshot) WarningCount() int {
	n := 0
	for _, l := range s.Logs {
		if l.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

package models

import "time"

// Severity tags a log stream entry.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// TimestampLayout is the 24-hour wall-clock format used for log entries.
const TimestampLayout = "15:04:05"

// LogEntry is one line of the dashboard's live stream.
type LogEntry struct {
	ID        uint64    `yaml:"id" json:"id"`
	Time      time.Time `yaml:"time" json:"time"`
	Timestamp string    `yaml:"timestamp" json:"timestamp"`
	Message   string    `yaml:"message" json:"message"`
	Severity  Severity  `yaml:"severity" json:"severity"`
}

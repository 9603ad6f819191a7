package models

import "time"

// EngineConfig sizes the metric window and seeds its initial state.
type EngineConfig struct {
	Points      int     `yaml:"points" mapstructure:"points"`
	SeedValue   float64 `yaml:"seed_value" mapstructure:"seed_value"`
	InitialLoad int     `yaml:"initial_load" mapstructure:"initial_load"`
}

// WalkConfig holds the random walk bounds and mean-reversion settings.
type WalkConfig struct {
	StepMagnitude float64 `yaml:"step_magnitude" mapstructure:"step_magnitude"`
	Pull          float64 `yaml:"pull" mapstructure:"pull"`
	Low           float64 `yaml:"low" mapstructure:"low"`
	High          float64 `yaml:"high" mapstructure:"high"`
	CenterLow     float64 `yaml:"center_low" mapstructure:"center_low"`
	CenterHigh    float64 `yaml:"center_high" mapstructure:"center_high"`
}

// ScheduleConfig holds the period of each simulation schedule.
type ScheduleConfig struct {
	Walk   time.Duration `yaml:"walk" mapstructure:"walk"`
	Jitter time.Duration `yaml:"jitter" mapstructure:"jitter"`
	Log    time.Duration `yaml:"log" mapstructure:"log"`
}

// MarshalYAML renders durations in their human-readable form.
func (s ScheduleConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{
		"walk":   s.Walk.String(),
		"jitter": s.Jitter.String(),
		"log":    s.Log.String(),
	}, nil
}

// EventsConfig controls the live stream window.
type EventsConfig struct {
	Capacity         int     `yaml:"capacity" mapstructure:"capacity"`
	WarningThreshold float64 `yaml:"warning_threshold" mapstructure:"warning_threshold"`
}

// JitterConfig controls per-service latency jitter.
type JitterConfig struct {
	StepMs  int `yaml:"step_ms" mapstructure:"step_ms"`
	FloorMs int `yaml:"floor_ms" mapstructure:"floor_ms"`
}

// LoggingConfig selects the structured logger's level and format.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ObservabilityConfig enables the operational event trail and metrics.
type ObservabilityConfig struct {
	EventLog string `yaml:"event_log" mapstructure:"event_log"`
	Metrics  bool   `yaml:"metrics" mapstructure:"metrics"`
}

// ServerConfig holds settings for `sentinel serve`.
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	PushInterval time.Duration `yaml:"-" mapstructure:"push_interval"`
}

// MarshalYAML renders the push interval in its human-readable form.
func (s ServerConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{
		"addr":          s.Addr,
		"push_interval": s.PushInterval.String(),
	}, nil
}

// Config is the full sentinel configuration read from .sentinel.yaml.
type Config struct {
	Engine        EngineConfig        `yaml:"engine" mapstructure:"engine"`
	Walk          WalkConfig          `yaml:"walk" mapstructure:"walk"`
	Schedule      ScheduleConfig      `yaml:"schedule" mapstructure:"schedule"`
	Events        EventsConfig        `yaml:"events" mapstructure:"events"`
	Jitter        JitterConfig        `yaml:"jitter" mapstructure:"jitter"`
	Services      []ServiceNode       `yaml:"services" mapstructure:"services"`
	Logging       LoggingConfig       `yaml:"logging" mapstructure:"logging"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
}

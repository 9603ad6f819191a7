// Package core contains the simulation engine behind the sentinel
// dashboard: the bounded random walk, the sliding windows it feeds, the
// clock that drives them, and configuration loading.
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// ConfigFileName is the base name (without extension) of the config file.
const ConfigFileName = ".sentinel"

// ConfigurationManager loads and validates the sentinel configuration.
type ConfigurationManager interface {
	Load() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files and SENTINEL_* environment overrides.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .sentinel.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *models.Config {
	return &models.Config{
		Engine: models.EngineConfig{
			Points:      DefaultPoints,
			SeedValue:   DefaultSeedValue,
			InitialLoad: 42,
		},
		Walk: models.WalkConfig{
			StepMagnitude: 10,
			Pull:          5,
			Low:           10,
			High:          90,
			CenterLow:     20,
			CenterHigh:    80,
		},
		Schedule: models.ScheduleConfig{
			Walk:   DefaultWalkPeriod,
			Jitter: DefaultJitterPeriod,
			Log:    DefaultLogPeriod,
		},
		Events: models.EventsConfig{
			Capacity:         DefaultEventCapacity,
			WarningThreshold: DefaultWarningThreshold,
		},
		Jitter: models.JitterConfig{
			StepMs:  2,
			FloorMs: 5,
		},
		Services: models.DefaultServices(),
		Logging: models.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Observability: models.ObservabilityConfig{
			EventLog: "",
			Metrics:  true,
		},
		Server: models.ServerConfig{
			Addr:         ":8080",
			PushInterval: 250 * time.Millisecond,
		},
	}
}

// Load reads .sentinel.yaml from the base path. If the file does not exist,
// defaults are returned (environment overrides still apply).
func (cm *viperConfigManager) Load() (*models.Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("engine.points", def.Engine.Points)
	v.SetDefault("engine.seed_value", def.Engine.SeedValue)
	v.SetDefault("engine.initial_load", def.Engine.InitialLoad)
	v.SetDefault("walk.step_magnitude", def.Walk.StepMagnitude)
	v.SetDefault("walk.pull", def.Walk.Pull)
	v.SetDefault("walk.low", def.Walk.Low)
	v.SetDefault("walk.high", def.Walk.High)
	v.SetDefault("walk.center_low", def.Walk.CenterLow)
	v.SetDefault("walk.center_high", def.Walk.CenterHigh)
	v.SetDefault("schedule.walk", def.Schedule.Walk)
	v.SetDefault("schedule.jitter", def.Schedule.Jitter)
	v.SetDefault("schedule.log", def.Schedule.Log)
	v.SetDefault("events.capacity", def.Events.Capacity)
	v.SetDefault("events.warning_threshold", def.Events.WarningThreshold)
	v.SetDefault("jitter.step_ms", def.Jitter.StepMs)
	v.SetDefault("jitter.floor_ms", def.Jitter.FloorMs)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("observability.event_log", def.Observability.EventLog)
	v.SetDefault("observability.metrics", def.Observability.Metrics)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.push_interval", def.Server.PushInterval)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s.yaml: %w", ConfigFileName, err)
		}
	}

	cfg := &models.Config{
		Engine: models.EngineConfig{
			Points:      v.GetInt("engine.points"),
			SeedValue:   v.GetFloat64("engine.seed_value"),
			InitialLoad: v.GetInt("engine.initial_load"),
		},
		Walk: models.WalkConfig{
			StepMagnitude: v.GetFloat64("walk.step_magnitude"),
			Pull:          v.GetFloat64("walk.pull"),
			Low:           v.GetFloat64("walk.low"),
			High:          v.GetFloat64("walk.high"),
			CenterLow:     v.GetFloat64("walk.center_low"),
			CenterHigh:    v.GetFloat64("walk.center_high"),
		},
		Schedule: models.ScheduleConfig{
			Walk:   v.GetDuration("schedule.walk"),
			Jitter: v.GetDuration("schedule.jitter"),
			Log:    v.GetDuration("schedule.log"),
		},
		Events: models.EventsConfig{
			Capacity:         v.GetInt("events.capacity"),
			WarningThreshold: v.GetFloat64("events.warning_threshold"),
		},
		Jitter: models.JitterConfig{
			StepMs:  v.GetInt("jitter.step_ms"),
			FloorMs: v.GetInt("jitter.floor_ms"),
		},
		Logging: models.LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Observability: models.ObservabilityConfig{
			EventLog: v.GetString("observability.event_log"),
			Metrics:  v.GetBool("observability.metrics"),
		},
		Server: models.ServerConfig{
			Addr:         v.GetString("server.addr"),
			PushInterval: v.GetDuration("server.push_interval"),
		},
	}

	// A services list replaces the defaults wholesale; absent means defaults.
	if v.IsSet("services") {
		var services []models.ServiceNode
		if err := v.UnmarshalKey("services", &services); err != nil {
			return nil, fmt.Errorf("parsing services: %w", err)
		}
		for i := range services {
			if services[i].Status == "" {
				services[i].Status = models.ServiceOperational
			}
		}
		cfg.Services = services
	} else {
		cfg.Services = def.Services
	}

	return cfg, nil
}

var validServiceStatuses = map[models.ServiceStatus]bool{
	models.ServiceOperational: true,
	models.ServiceDegraded:    true,
}

var validLogFormats = map[string]bool{"text": true, "json": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// ValidateConfig checks cfg for invalid values and reports every problem
// in a single error.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	return validateConfig(cfg)
}

func validateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Engine.Points < 2 {
		errs = append(errs, fmt.Sprintf("engine.points must be at least 2, got %d", cfg.Engine.Points))
	}
	if cfg.Engine.InitialLoad < 0 || cfg.Engine.InitialLoad > 100 {
		errs = append(errs, fmt.Sprintf("engine.initial_load must be between 0 and 100, got %d", cfg.Engine.InitialLoad))
	}

	w := cfg.Walk
	if w.Low >= w.High {
		errs = append(errs, fmt.Sprintf("walk.low (%g) must be below walk.high (%g)", w.Low, w.High))
	}
	if w.CenterLow > w.CenterHigh {
		errs = append(errs, fmt.Sprintf("walk.center_low (%g) must not exceed walk.center_high (%g)", w.CenterLow, w.CenterHigh))
	}
	if w.StepMagnitude < 0 {
		errs = append(errs, fmt.Sprintf("walk.step_magnitude must be non-negative, got %g", w.StepMagnitude))
	}
	if w.Pull < 0 {
		errs = append(errs, fmt.Sprintf("walk.pull must be non-negative, got %g", w.Pull))
	}
	if cfg.Engine.SeedValue < w.Low || cfg.Engine.SeedValue > w.High {
		errs = append(errs, fmt.Sprintf("engine.seed_value %g must lie within [walk.low, walk.high]", cfg.Engine.SeedValue))
	}

	for _, sched := range []struct {
		name   string
		period time.Duration
	}{
		{"schedule.walk", cfg.Schedule.Walk},
		{"schedule.jitter", cfg.Schedule.Jitter},
		{"schedule.log", cfg.Schedule.Log},
	} {
		if sched.period <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got %s", sched.name, sched.period))
		}
	}

	if cfg.Events.Capacity < 1 {
		errs = append(errs, fmt.Sprintf("events.capacity must be at least 1, got %d", cfg.Events.Capacity))
	}
	if cfg.Events.WarningThreshold < 0 || cfg.Events.WarningThreshold > 1 {
		errs = append(errs, fmt.Sprintf("events.warning_threshold must be between 0 and 1, got %g", cfg.Events.WarningThreshold))
	}

	if cfg.Jitter.StepMs < 0 {
		errs = append(errs, fmt.Sprintf("jitter.step_ms must be non-negative, got %d", cfg.Jitter.StepMs))
	}
	if cfg.Jitter.FloorMs < 0 {
		errs = append(errs, fmt.Sprintf("jitter.floor_ms must be non-negative, got %d", cfg.Jitter.FloorMs))
	}

	seen := make(map[string]bool, len(cfg.Services))
	for i, s := range cfg.Services {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("services[%d].id must not be empty", i))
		} else if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("services[%d].id %q is duplicated", i, s.ID))
		}
		seen[s.ID] = true
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("services[%d].name must not be empty", i))
		}
		if s.LatencyMs < 0 {
			errs = append(errs, fmt.Sprintf("services[%d].latency_ms must be non-negative, got %d", i, s.LatencyMs))
		}
		if !validServiceStatuses[s.Status] {
			errs = append(errs, fmt.Sprintf("services[%d].status %q is invalid, must be operational or degraded", i, s.Status))
		}
	}

	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("logging.level %q is invalid, must be one of: debug, info, warn, error", cfg.Logging.Level))
	}
	if !validLogFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("logging.format %q is invalid, must be text or json", cfg.Logging.Format))
	}

	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if cfg.Server.PushInterval <= 0 {
		errs = append(errs, fmt.Sprintf("server.push_interval must be positive, got %s", cfg.Server.PushInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Package internal provides the App struct that wires all components of the
// sentinel system together and initializes the CLI layer.
package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/valter-silva-au/sentinel/internal/cli"
	"github.com/valter-silva-au/sentinel/internal/core"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// App holds all service dependencies for the sentinel system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Observability
	Logger   observability.Logger
	EventLog observability.EventLog
	Metrics  *observability.Collector
	Stats    observability.StatsCalculator
	Trail    observability.TrailSummarizer
}

// NewApp creates and wires all components of the sentinel system.
// basePath is the directory holding .sentinel.yaml (typically the current
// directory or SENTINEL_HOME).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Observability ---
	app.Logger = observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if path := cfg.Observability.EventLog; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(basePath, path)
		}
		app.EventLog, err = observability.NewJSONLEventLog(path)
		if err != nil {
			// Non-fatal: run without the trail if it can't be opened.
			app.Logger.Warn(context.Background(), "event trail disabled", observability.String("path", path), observability.Err(err))
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.Trail = observability.NewTrailSummarizer(app.EventLog)
	}

	if cfg.Observability.Metrics {
		app.Metrics, err = observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	app.Stats = observability.NewStatsCalculator()

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Logger = app.Logger
	cli.EventLog = app.EventLog
	cli.Metrics = app.Metrics
	cli.Stats = app.Stats
	cli.Trail = app.Trail
	cli.NewEngine = app.NewEngine

	return app, nil
}

// NewEngine builds an engine from the app's configuration. A zero seed draws
// a random one; a nil logger uses the app's logger.
func (a *App) NewEngine(seed uint64, logger observability.Logger) *core.Engine {
	if logger == nil {
		logger = a.Logger
	}
	deps := core.EngineDeps{
		RNG:    core.NewRNG(seed),
		Logger: logger.With(observability.String("component", "engine")),
	}
	if a.EventLog != nil {
		deps.Events = &eventLogAdapter{log: a.EventLog}
	}
	if a.Metrics != nil {
		deps.Metrics = a.Metrics
	}
	return core.NewEngine(*a.Config, deps)
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory sentinel reads its config from.
// It checks the SENTINEL_HOME env var, then walks up from the current
// directory looking for .sentinel.yaml, then falls back to the current
// directory.
func ResolveBasePath() string {
	if home := os.Getenv("SENTINEL_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	configFile := core.ConfigFileName + ".yaml"
	for {
		if _, err := os.Stat(filepath.Join(dir, configFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	level := observability.LevelInfo
	message := eventType
	if eventType == core.EventLogWarning {
		level = observability.LevelWarn
		if msg, ok := data["message"].(string); ok {
			message = msg
		}
	}
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}

package cli

import (
	"github.com/valter-silva-au/sentinel/internal/core"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.Config
	Logger   observability.Logger
	EventLog observability.EventLog
	Metrics  *observability.Collector
	Stats    observability.StatsCalculator
	Trail    observability.TrailSummarizer
)

// NewEngine builds an engine wired to the app's collaborators. A zero seed
// draws a random one; a nil logger uses Logger.
var NewEngine func(seed uint64, logger observability.Logger) *core.Engine

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/core"
	"github.com/valter-silva-au/sentinel/internal/observability"
)

// fixedCompletion completes from a static list, filtered by prefix.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

var (
	completeEventTypes = fixedCompletion(
		core.EventEngineStarted,
		core.EventEngineStopped,
		core.EventEngineReset,
		core.EventLogWarning,
	)
	completeEventLevels = fixedCompletion(
		strings.ToLower(observability.LevelInfo),
		strings.ToLower(observability.LevelWarn),
	)
	completeSince = fixedCompletion("30m", "1h", "24h", "7d", "30d")
)

func init() {
	_ = eventsCmd.RegisterFlagCompletionFunc("type", completeEventTypes)
	_ = eventsCmd.RegisterFlagCompletionFunc("level", completeEventLevels)
	_ = eventsCmd.RegisterFlagCompletionFunc("since", completeSince)
	_ = metricsCmd.RegisterFlagCompletionFunc("since", completeSince)
	_ = svgCmd.MarkFlagFilename("out", "svg")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Sentinel - live monitoring dashboard engine",
	Long: `Sentinel simulates a live monitoring dashboard: a bounded random-walk
load metric, per-service latency jitter and a rolling live stream of log
events, rendered as a smoothed curve.

It can drive an interactive terminal dashboard, serve the dashboard over
HTTP and websockets, export the chart as SVG, and expose the engine as
MCP tools.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sentinel %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireEngine() error {
	if NewEngine == nil || Config == nil {
		return fmt.Errorf("engine not initialized")
	}
	return nil
}

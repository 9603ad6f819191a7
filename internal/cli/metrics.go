package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display metrics derived from the event trail",
	Long: `Display aggregated metrics derived from the operations event trail.

Metrics include engine start, stop and reset counts, warning counts by
message, and event counts by level. Live gauges are exported separately on
the /metrics endpoint of "sentinel serve".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Trail == nil {
			return fmt.Errorf("trail summarizer not initialized (set observability.event_log in .sentinel.yaml)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		summary, err := Trail.Summarize(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if metricsJSON {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Metrics (since %s)\n\n", sinceTime.Format(time.DateTime))
		fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", summary.EventCount)
		fmt.Fprintf(out, "  %-24s %d\n", "Engine starts:", summary.EngineStarts)
		fmt.Fprintf(out, "  %-24s %d\n", "Engine stops:", summary.EngineStops)
		fmt.Fprintf(out, "  %-24s %d\n", "Engine resets:", summary.EngineResets)
		fmt.Fprintf(out, "  %-24s %d\n", "Warnings:", summary.Warnings)

		if len(summary.WarningsByMessage) > 0 {
			fmt.Fprintln(out, "\n  Warnings by message:")
			for _, msg := range sortedKeys(summary.WarningsByMessage) {
				fmt.Fprintf(out, "    %-24s %d\n", msg+":", summary.WarningsByMessage[msg])
			}
		}

		if len(summary.EventsByLevel) > 0 {
			fmt.Fprintln(out, "\n  Events by level:")
			for _, level := range sortedKeys(summary.EventsByLevel) {
				fmt.Fprintf(out, "    %-24s %d\n", level+":", summary.EventsByLevel[level])
			}
		}

		if summary.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", summary.OldestEvent.Format(time.RFC3339))
		}
		if summary.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", summary.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parseSinceDuration parses a human-friendly duration string like "7d",
// "24h" or "30m" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") || strings.HasSuffix(s, "m") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid duration %q", s)
		}
		return now.Add(-d), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 24h, 30m)", s)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 24h, 30m)")
	rootCmd.AddCommand(metricsCmd)
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/observability"
)

var (
	eventsType  string
	eventsLevel string
	eventsSince string
	eventsLimit int
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the operations event trail",
	Long: `Show engine lifecycle events and warning entries recorded in the event
trail. The trail is written only when observability.event_log is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event trail disabled (set observability.event_log in .sentinel.yaml)")
		}

		filter := observability.EventFilter{
			Type:  eventsType,
			Level: strings.ToUpper(eventsLevel),
			Limit: eventsLimit,
		}
		if eventsSince != "" {
			since, err := parseSinceDuration(eventsSince)
			if err != nil {
				return fmt.Errorf("parsing --since: %w", err)
			}
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event trail: %w", err)
		}

		out := cmd.OutOrStdout()
		if eventsJSON {
			data, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting events as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(events) == 0 {
			fmt.Fprintln(out, "No events recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%s  %-5s %-16s %s\n", e.Time.Local().Format(time.DateTime), e.Level, e.Type, e.Message)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "filter by event type (e.g. engine.started, log.warning)")
	eventsCmd.Flags().StringVar(&eventsLevel, "level", "", "filter by level (info, warn)")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "only events newer than this (e.g. 30m, 24h, 7d)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "show at most this many of the newest events (0 for all)")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(eventsCmd)
}

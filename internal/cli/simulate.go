package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/core"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

var (
	simulateTicks int
	simulateSeed  uint64
	simulateJSON  bool
)

// simulationStep is one walk tick of a simulated run.
type simulationStep struct {
	Tick        int     `json:"tick"`
	Offset      string  `json:"offset"`
	Sample      float64 `json:"sample"`
	CurrentLoad int     `json:"current_load"`
}

// simulationReport is the full trace of a simulated run.
type simulationReport struct {
	Seed  uint64                    `json:"seed"`
	Steps []simulationStep          `json:"steps"`
	Logs  []models.LogEntry         `json:"logs"`
	Final []models.ServiceNode      `json:"services"`
	Stats observability.WindowStats `json:"stats"`
}

// simulate steps engine on a virtual timeline starting at start. Jitter and
// log schedules fire whenever the elapsed walk time crosses their period.
func simulate(engine *core.Engine, cfg models.Config, ticks int, start time.Time) simulationReport {
	walk := cfg.Schedule.Walk
	steps := make([]simulationStep, 0, ticks)
	nextJitter, nextLog := cfg.Schedule.Jitter, cfg.Schedule.Log

	for i := 1; i <= ticks; i++ {
		elapsed := time.Duration(i) * walk
		sample := engine.StepWalk()
		for cfg.Schedule.Jitter > 0 && elapsed >= nextJitter {
			engine.StepJitter()
			nextJitter += cfg.Schedule.Jitter
		}
		for cfg.Schedule.Log > 0 && elapsed >= nextLog {
			engine.StepLog(start.Add(nextLog))
			nextLog += cfg.Schedule.Log
		}
		steps = append(steps, simulationStep{
			Tick:        i,
			Offset:      elapsed.String(),
			Sample:      sample,
			CurrentLoad: core.CurrentLoad(sample),
		})
	}

	snap := engine.Snapshot()
	stats := Stats
	if stats == nil {
		stats = observability.NewStatsCalculator()
	}
	return simulationReport{
		Steps: steps,
		Logs:  snap.Logs,
		Final: snap.Services,
		Stats: stats.Calculate(snap),
	}
}

func writeSimulationTable(w io.Writer, r simulationReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tOFFSET\tSAMPLE\tLOAD")
	for _, s := range r.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d%%\n", s.Tick, s.Offset, s.Sample, s.CurrentLoad)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Logs) > 0 {
		fmt.Fprintln(w, "\nLive stream:")
		for _, e := range r.Logs {
			fmt.Fprintf(w, "  %s [%s] %s\n", e.Timestamp, e.Severity, e.Message)
		}
	}

	fmt.Fprintln(w, "\nServices:")
	for _, s := range r.Final {
		fmt.Fprintf(w, "  %-16s %dms\n", s.Name, s.LatencyMs)
	}

	st := r.Stats
	fmt.Fprintln(w, "\nWindow:")
	fmt.Fprintf(w, "  %-16s %.2f\n", "Min:", st.Min)
	fmt.Fprintf(w, "  %-16s %.2f\n", "Max:", st.Max)
	fmt.Fprintf(w, "  %-16s %.2f\n", "Mean:", st.Mean)
	fmt.Fprintf(w, "  %-16s %d%%\n", "Current load:", st.CurrentLoad)
	fmt.Fprintf(w, "  %-16s %d\n", "Warnings:", st.WarningCount)
	return nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print a deterministic trace of the engine",
	Long: `Step the engine --ticks times on a virtual timeline and print each walk
sample with its display load, followed by the live stream, service
latencies and window statistics. Jitter and log events fire at their
configured periods relative to the walk period.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		if simulateTicks < 0 {
			return fmt.Errorf("--ticks must be non-negative, got %d", simulateTicks)
		}

		engine := NewEngine(simulateSeed, nil)
		start := time.Now().Truncate(time.Second)
		report := simulate(engine, engine.Config(), simulateTicks, start)
		report.Seed = simulateSeed

		if simulateJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting simulation as JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		return writeSimulationTable(cmd.OutOrStdout(), report)
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simulateTicks, "ticks", 50, "number of walk steps to simulate")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 1, "random seed (0 picks a random one)")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(simulateCmd)
}

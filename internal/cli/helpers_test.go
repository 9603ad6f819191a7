package cli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/core"
	"github.com/valter-silva-au/sentinel/internal/observability"
)

// installTestEngine points the package-level collaborators at a default
// configuration with seeded engines and restores them afterwards.
func installTestEngine(t *testing.T) {
	t.Helper()
	origConfig, origNewEngine, origBase := Config, NewEngine, BasePath
	t.Cleanup(func() {
		Config, NewEngine, BasePath = origConfig, origNewEngine, origBase
	})

	Config = core.DefaultConfig()
	BasePath = t.TempDir()
	NewEngine = func(seed uint64, logger observability.Logger) *core.Engine {
		return core.NewEngine(*Config, core.EngineDeps{RNG: core.NewRNG(seed), Logger: logger})
	}
}

// recordedEvents is a core.EventLogger that keeps the event types it sees.
type recordedEvents struct {
	mu    sync.Mutex
	types []string
}

func (r *recordedEvents) LogEvent(eventType string, _ map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, eventType)
	return nil
}

func (r *recordedEvents) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ty := range r.types {
		if ty == eventType {
			n++
		}
	}
	return n
}

// installRecordingEngine is installTestEngine with every engine reporting
// its trail events to the returned recorder.
func installRecordingEngine(t *testing.T) *recordedEvents {
	t.Helper()
	installTestEngine(t)
	events := &recordedEvents{}
	NewEngine = func(seed uint64, logger observability.Logger) *core.Engine {
		return core.NewEngine(*Config, core.EngineDeps{RNG: core.NewRNG(seed), Logger: logger, Events: events})
	}
	return events
}

// runCommand executes cmd through the root command with args and returns
// what it wrote to stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), err
}

// resetFlags restores every flag of cmd to its default after the test, as
// cobra keeps parsed values in package-level variables.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range []string{"ticks", "seed", "out", "color", "json", "type", "level", "since", "limit"} {
			if f := cmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		}
	})
}

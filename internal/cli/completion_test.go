package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionCommand_DisablesDefault(t *testing.T) {
	if !rootCmd.CompletionOptions.DisableDefaultCmd {
		t.Error("expected Cobra default completion command to be disabled")
	}
}

func TestCompletionCommand_NoArgsShowsHelp(t *testing.T) {
	out, err := runCommand(t, "completion")
	if err != nil {
		t.Fatalf("completion with no args should show help, not error: %v", err)
	}
	if !strings.Contains(out, "Supported shells") {
		t.Errorf("expected help output, got:\n%s", out)
	}
}

func TestCompletionCommand_Scripts(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__start_sentinel"},
		{"zsh", "#compdef sentinel"},
		{"fish", "complete -c sentinel"},
		{"powershell", "Register-ArgumentCompleter"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := runCommand(t, "completion", tt.shell)
			if err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s script should contain %q", tt.shell, tt.want)
			}
		})
	}
}

func TestCompletionCommand_UnsupportedShell(t *testing.T) {
	_, err := runCommand(t, "completion", "tcsh")
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Fatalf("expected unsupported shell error, got %v", err)
	}
}

func TestInstallCompletion(t *testing.T) {
	home := t.TempDir()
	for shell, want := range map[string]string{
		"bash": filepath.Join(home, ".local", "share", "bash-completion", "completions", "sentinel"),
		"zsh":  filepath.Join(home, ".local", "share", "zsh", "site-functions", "_sentinel"),
		"fish": filepath.Join(home, ".config", "fish", "completions", "sentinel.fish"),
	} {
		path, err := installCompletion(shell, home)
		if err != nil {
			t.Fatalf("installing %s: %v", shell, err)
		}
		if path != want {
			t.Errorf("%s installed to %s, want %s", shell, path, want)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s completion file missing or empty: %v", shell, err)
		}
	}
}

func TestInstallCompletion_PowerShell(t *testing.T) {
	if _, err := installCompletion("powershell", t.TempDir()); err == nil {
		t.Fatal("expected error for powershell install")
	}
}

func TestFlagCompletions(t *testing.T) {
	got, directive := completeEventTypes(eventsCmd, nil, "engine.")
	want := []string{"engine.started", "engine.stopped", "engine.reset"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("event types = %v, want %v", got, want)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("unexpected directive %v", directive)
	}

	if got, _ := completeEventLevels(eventsCmd, nil, "w"); !reflect.DeepEqual(got, []string{"warn"}) {
		t.Errorf("levels = %v, want [warn]", got)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for sentinel",
	Long: `Print or install shell tab-completions for sentinel commands and flags.

Supported shells: bash, zsh, fish, powershell

  eval "$(sentinel completion bash)"
  sentinel completion zsh --install`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into your shell's user completion directory")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

// completionTarget is where a shell looks for user-installed completions.
type completionTarget struct {
	dir  string
	file string
	gen  func(f *os.File) error
}

func completionTargets(home string) map[string]completionTarget {
	return map[string]completionTarget{
		"bash": {
			dir:  filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			file: "sentinel",
			gen:  func(f *os.File) error { return rootCmd.GenBashCompletionV2(f, true) },
		},
		"zsh": {
			dir:  filepath.Join(home, ".local", "share", "zsh", "site-functions"),
			file: "_sentinel",
			gen:  func(f *os.File) error { return rootCmd.GenZshCompletion(f) },
		},
		"fish": {
			dir:  filepath.Join(home, ".config", "fish", "completions"),
			file: "sentinel.fish",
			gen:  func(f *os.File) error { return rootCmd.GenFishCompletion(f, true) },
		},
	}
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	shell := args[0]

	if completionInstall {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("detecting home directory: %w", err)
		}
		path, err := installCompletion(shell, home)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s completions installed to %s\n", shell, path)
		return nil
	}

	out := cmd.OutOrStdout()
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(out, true)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", shell)
	}
}

// installCompletion writes the completion script for shell under home and
// returns the file it wrote.
func installCompletion(shell, home string) (string, error) {
	target, ok := completionTargets(home)[shell]
	if !ok {
		if shell == "powershell" {
			return "", fmt.Errorf("automatic install is not supported for PowerShell; run 'sentinel completion powershell' and add the output to your profile")
		}
		return "", fmt.Errorf("unsupported shell %q", shell)
	}

	if err := os.MkdirAll(target.dir, 0o750); err != nil {
		return "", fmt.Errorf("creating completion directory: %w", err)
	}
	path := filepath.Join(target.dir, target.file)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating completion file %s: %w", path, err)
	}

	writeErr := target.gen(f)
	closeErr := f.Close()
	if writeErr != nil {
		return "", writeErr
	}
	if closeErr != nil {
		return "", fmt.Errorf("closing completion file %s: %w", path, closeErr)
	}
	return path, nil
}

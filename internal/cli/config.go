package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/core"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect sentinel configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration sentinel is running with: defaults merged with
.sentinel.yaml and SENTINEL_* environment overrides.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not loaded")
		}
		data, err := yaml.Marshal(Config)
		if err != nil {
			return fmt.Errorf("formatting config as YAML: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", filepath.Join(BasePath, core.ConfigFileName+".yaml"), data)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

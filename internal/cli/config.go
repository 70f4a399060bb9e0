package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdread/internal/config"
)

func newConfigCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration mdread would run with, as YAML.

Defaults, the user config file, --config, MDREAD_* variables and flags are
all applied. The output can be saved as a starting config file:

  mdread config > ~/.config/mdread/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			data, err := config.ToYAML(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	return cmd
}

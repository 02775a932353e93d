package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file and environment
(DISTINCT_STRATEGY, DISTINCT_OUTPUT_DIR, DISTINCT_SAMPLES, DISTINCT_SEED).

The output is valid YAML and can be saved as .distinct.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/distinct/internal/generator"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List colour generation strategies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), strategiesTable().Render())
		},
	}
}

func strategiesTable() *Table {
	table := NewTable([]string{"Strategy", "Aliases", "Count", "Seeded", "Description"})
	table.SetColumnMaxWidth(4, 48)

	for _, d := range generator.Descriptors() {
		count := "any"
		if d.EvenOnly {
			count = "even"
		}
		seeded := "no"
		if d.Randomised {
			seeded = "yes"
		}
		name := string(d.Strategy)
		if d.Strategy == generator.DefaultStrategy {
			name += " *"
		}
		table.AddRow([]string{name, strings.Join(d.Aliases(), ", "), count, seeded, d.Description})
	}
	return table
}

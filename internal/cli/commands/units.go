package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/cli/output"
	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/units"
)

// NewUnitsCommand creates the units command.
func NewUnitsCommand() *cobra.Command {
	var dimension string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List known units",
		Long: `List the units available for conversion, grouped by dimension, with
their factor to the dimension's base unit and accepted aliases. Aliases
configured under units.aliases are included.`,
		Example: `  leapsolve units
  leapsolve units --dimension mass
  leapsolve units -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return renderUnits(cmdCtx, dimension)
		},
	}

	cmd.Flags().StringVarP(&dimension, "dimension", "d", "", "Only list units of this dimension (length|mass|time)")
	_ = cmd.RegisterFlagCompletionFunc("dimension", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(units.Length), string(units.Mass), string(units.Time)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func renderUnits(cmdCtx *CommandContext, dimension string) error {
	table := cmdCtx.Solver.Units()
	list := table.Units()

	if dimension != "" {
		dim := units.Dimension(strings.ToLower(dimension))
		if _, ok := table.Base(dim); !ok {
			return fmt.Errorf("unknown dimension %q (expected length, mass or time)", dimension)
		}
		filtered := list[:0]
		for _, u := range list {
			if u.Dimension == dim {
				filtered = append(filtered, u)
			}
		}
		list = filtered
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(list)
	}

	title := "Units"
	if dimension != "" {
		dim := strings.ToLower(dimension)
		title = strings.ToUpper(dim[:1]) + dim[1:] + " units"
	}
	r.Header(2, title)

	rows := make([][]string, 0, len(list))
	for _, u := range list {
		rows = append(rows, []string{
			u.Symbol,
			u.Name,
			string(u.Dimension),
			core.FormatNumber(u.Factor),
			strings.Join(u.Aliases, ", "),
		})
	}
	r.Table([]string{"Symbol", "Name", "Dimension", "Factor", "Aliases"}, rows)
	return nil
}

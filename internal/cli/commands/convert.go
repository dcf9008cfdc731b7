package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <value> <from> [to|in] <to>",
		Short: "Convert a value between units",
		Long: `Convert a value between two units of the same dimension (length, mass
or time). Units may be given by symbol, name or alias, singular or
plural. Run 'leapsolve units' to see them all.`,
		Example: `  leapsolve convert 5 km m
  leapsolve convert 3.5 pounds to kg
  leapsolve convert 90 min in h -o json`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, from, to, err := parseConvertArgs(args)
			if err != nil {
				return err
			}

			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			res, err := cmdCtx.Solver.Convert(value, from, to)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Solve(res)
		},
	}

	return cmd
}

func parseConvertArgs(args []string) (value float64, from, to string, err error) {
	if len(args) == 4 {
		if sep := strings.ToLower(args[2]); sep != "to" && sep != "in" {
			return 0, "", "", fmt.Errorf("expected 'to' or 'in' between units, got %q", args[2])
		}
		args = []string{args[0], args[1], args[3]}
	}

	value, err = strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid value %q", args[0])
	}
	return value, args[1], args[2], nil
}

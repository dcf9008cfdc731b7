package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/cli/output"
	"github.com/leapstack-labs/leapsolve/internal/history"
)

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded solves",
		Long: `Inspect the solve history database.

Solves are recorded when history is enabled (--history, history.enabled
in leapsolve.yaml or LEAPSOLVE_HISTORY__ENABLED=true). The history
commands read the database regardless of that setting.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent solves, newest first",
		Example: `  leapsolve history list
  leapsolve history list --limit 50 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			store, err := history.Open(cmdCtx.Cfg.History.Path, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return renderHistory(cmd.Context(), cmdCtx, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded solves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			store, err := history.Open(cmdCtx.Cfg.History.Path, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Cleared %d entries", n))
			return nil
		},
	}
}

func renderHistory(ctx context.Context, cmdCtx *CommandContext, store *history.Store, limit int) error {
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(entries)
	}
	if len(entries) == 0 {
		r.Muted("No solves recorded")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		answer := e.ResultText
		if e.Unit != "" && answer != "" {
			answer += " " + e.Unit
		}
		if !e.Success {
			answer = string(e.Kind)
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format(time.DateTime),
			e.Input,
			string(e.Strategy),
			answer,
		})
	}
	r.Table([]string{"When", "Input", "Strategy", "Answer"}, rows)
	return nil
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/cli/config"
	"github.com/leapstack-labs/leapsolve/internal/cli/output"
	"github.com/leapstack-labs/leapsolve/internal/history"
	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/solver"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Solver   *solver.Solver
}

// NewCommandContext creates a CommandContext with a solver built from the
// configured unit aliases.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	table, err := cfg.UnitTable()
	if err != nil {
		return nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Solver:   solver.New(solver.WithUnits(table), solver.WithLogger(logger)),
	}, nil
}

// OpenHistory opens the history store when history is enabled. The returned
// cleanup is always safe to call.
func (c *CommandContext) OpenHistory() (*history.Store, func(), error) {
	if !c.Cfg.History.Enabled {
		return nil, func() {}, nil
	}
	store, err := history.Open(c.Cfg.History.Path, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// Helper functions shared across commands

// getConfig returns the loaded configuration, or the defaults when the
// command runs without the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// readInput returns the problem text from args, an input file or piped
// stdin, in that order. ok is false when none applies and stdin is a
// terminal.
func readInput(cmd *cobra.Command, args []string, inputFile string, maxBytes int) (text string, ok bool, err error) {
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case inputFile != "":
		f, err := os.Open(inputFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if text, err = readLimited(f, maxBytes); err != nil {
			return "", false, fmt.Errorf("%s: %w", inputFile, err)
		}
	case !output.IsTerminal(cmd.InOrStdin()):
		if text, err = readLimited(cmd.InOrStdin(), maxBytes); err != nil {
			return "", false, fmt.Errorf("stdin: %w", err)
		}
	default:
		return "", false, nil
	}

	if maxBytes > 0 && len(text) > maxBytes {
		return "", false, fmt.Errorf("input is %d bytes, limit is %d", len(text), maxBytes)
	}
	return text, true, nil
}

func readLimited(r io.Reader, maxBytes int) (string, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, int64(maxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxBytes)
	}
	return string(data), nil
}

// renderOutcome renders res and turns a failure into the command's error.
func renderOutcome(r *output.Renderer, res core.SolveResult) error {
	if err := r.Solve(res); err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("could not solve: %w", err)
	}
	return nil
}

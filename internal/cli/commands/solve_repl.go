package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/history"
)

func runSolveREPL(cmd *cobra.Command, cmdCtx *CommandContext, store *history.Store) error {
	historyFile := cmdCtx.Cfg.REPL.HistoryFile
	if historyFile != "" {
		if dir := filepath.Dir(historyFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create REPL history directory: %w", err)
			}
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cmdCtx.Cfg.REPL.Prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "leapsolve interactive solver")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type a problem to solve it, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := handleREPLLine(cmd.Context(), cmd, cmdCtx, store, line); quit {
			break
		}
	}

	return nil
}

// handleREPLLine solves or dispatches one line of REPL input and reports
// whether the REPL should exit.
func handleREPLLine(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, store *history.Store, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if isDotCommand(line) {
		return handleDotCommand(ctx, cmd, cmdCtx, store, line)
	}

	if maxBytes := cmdCtx.Cfg.MaxInputBytes; maxBytes > 0 && len(line) > maxBytes {
		cmdCtx.Renderer.Error(fmt.Sprintf("input is %d bytes, limit is %d", len(line), maxBytes))
		return false
	}

	res := cmdCtx.Solver.SolveFromText(line)
	recordSolve(ctx, cmdCtx.Logger, store, line, res)
	if err := cmdCtx.Renderer.Solve(res); err != nil {
		cmdCtx.Renderer.Error(err.Error())
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return false
}

// isDotCommand reports whether line is a REPL command such as .help. A dot
// followed by a digit starts a number like .5.
func isDotCommand(line string) bool {
	return len(line) > 1 && line[0] == '.' && unicode.IsLetter(rune(line[1]))
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, store *history.Store, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".units":
		dimension := ""
		if len(parts) > 1 {
			dimension = parts[1]
		}
		if err := renderUnits(cmdCtx, dimension); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}

	case ".history":
		if store == nil {
			cmdCtx.Renderer.Warning("history is disabled (enable with --history)")
			return false
		}
		limit := 10
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .history [n]")
				return false
			}
			limit = n
		}
		if err := renderHistory(ctx, cmdCtx, store, limit); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}

	case ".clear":
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                Show this help message
  .units [dimension]   List known units (length, mass, time)
  .history [n]         Show the last n solves (default 10)
  .clear               Clear the screen
  .quit / .exit        Exit the REPL

Examples:
  12 times 3 plus 4
  2x + 3 = 11
  5 km to m
`
	_, _ = fmt.Fprintln(w, help)
}

func newDotCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".units",
			readline.PcItem("length"),
			readline.PcItem("mass"),
			readline.PcItem("time"),
		),
		readline.PcItem(".history"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

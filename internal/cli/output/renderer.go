// Package output renders command results as styled text, markdown or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/leapstack-labs/leapsolve/pkg/core"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // text on a terminal, markdown otherwise
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for out. Messages and errors go to errOut.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode}
	if r.EffectiveMode() == ModeText {
		r.styles = DefaultStyles(lipgloss.NewRenderer(out))
	} else {
		r.styles = PlainStyles()
	}
	return r
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto against the output writer.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if IsTerminal(r.out) {
		return ModeText
	}
	return ModeMarkdown
}

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Header.Render(text))
		return
	}
	r.Println(FormatHeader(level, text))
}

// Success writes a success message to the output.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Muted writes secondary information to the output.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Warning writes a warning to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
}

// Error writes an error to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows under header: a box table in text mode, a markdown
// table otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, c := range header {
		h[i] = c
	}
	t.AppendHeader(h)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// Solve renders one solve result. Failures are rendered too; the caller
// decides whether they are errors.
func (r *Renderer) Solve(res core.SolveResult) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(res)
	case ModeText:
		r.solveText(res)
	default:
		r.solveMarkdown(res)
	}
	return nil
}

func (r *Renderer) solveText(res core.SolveResult) {
	if !res.Success {
		r.Println(r.styles.Error.Render(fmt.Sprintf("✗ %s", res.Kind)))
		if res.Reason != "" {
			r.Println(r.styles.Muted.Render("  " + res.Reason))
		}
		return
	}
	for _, step := range res.Steps {
		r.Println(r.styles.Step.Render(step))
	}
	answer := "= " + res.Answer()
	if !res.Usable() {
		answer += r.styles.Warning.Render("  (not a finite number)")
	}
	r.Println(r.styles.Answer.Render(answer))
}

func (r *Renderer) solveMarkdown(res core.SolveResult) {
	if !res.Success {
		r.Println(FormatKeyValue("Error", string(res.Kind)))
		if res.Reason != "" {
			r.Println(FormatKeyValue("Reason", res.Reason))
		}
		if res.Candidate != "" {
			r.Println(FormatKeyValue("Candidate", "`"+res.Candidate+"`"))
		}
		return
	}
	r.Println(FormatKeyValue("Answer", res.Answer()))
	r.Println(FormatKeyValue("Strategy", string(res.Strategy)))
	if res.Expression != "" {
		r.Println(FormatKeyValue("Expression", "`"+res.Expression+"`"))
	}
	if len(res.Steps) > 0 {
		r.Println("")
		for i, step := range res.Steps {
			r.Printf("%d. %s\n", i+1, step)
		}
	}
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a bold markdown key followed by its value.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}

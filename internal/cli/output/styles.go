package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Answer  lipgloss.Style
	Step    lipgloss.Style
}

// DefaultStyles returns the colored style set bound to re. The renderer
// drops colors when its writer is not a terminal.
func DefaultStyles(re *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    re.NewStyle().Bold(true),
		Success: re.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   re.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: re.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    re.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   re.NewStyle().Foreground(lipgloss.Color("8")),
		Answer:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Step:    re.NewStyle().PaddingLeft(2),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:  plain,
		Bold:    plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Info:    plain,
		Muted:   plain,
		Answer:  plain,
		Step:    plain.PaddingLeft(2),
	}
}

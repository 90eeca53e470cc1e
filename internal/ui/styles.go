// Package ui bundles the Lip Gloss styles and message helpers shared by
// the CLI and the TUI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the palette plus the checkbox symbols for one theme.
type Styles struct {
	Title    lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
}

// NewStyles returns the style set for a theme name. Unknown names fall back
// to classic.
func NewStyles(theme string) Styles {
	switch strings.ToLower(theme) {
	case "mono":
		plain := lipgloss.NewStyle()
		return Styles{
			Title:    plain,
			Success:  plain,
			Pending:  plain,
			Accent:   plain,
			Muted:    plain,
			Error:    plain,
			Selected: lipgloss.NewStyle().Reverse(true),
			Done:     lipgloss.NewStyle().Strikethrough(true),
			Help:     plain,

			BoxChecked:   "[x]",
			BoxUnchecked: "[ ]",
		}
	default: // classic
		return Styles{
			Title:    lipgloss.NewStyle().Bold(true),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Muted:    lipgloss.NewStyle().Faint(true),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),

			BoxChecked:   "☑",
			BoxUnchecked: "☐",
		}
	}
}

// OK prints a success line to stdout.
func (s Styles) OK(msg string) {
	fmt.Println(s.Success.Render("✔ " + msg))
}

// Fail prints an error line to stderr.
func (s Styles) Fail(msg string) {
	fmt.Fprintln(os.Stderr, s.Error.Render("✖ "+msg))
}

// Panel renders a framed box around the given content.
func (s Styles) Panel(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// ProgressBar renders a Unicode progress bar with counts.
func ProgressBar(done, total, width int) string {
	if total == 0 {
		total = 1
	}
	if width <= 0 {
		width = 28
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Package pretty renders diagnostics, summaries and diffs for terminals
// using lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled and the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds one renderer per output element.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostic line and source context. Underline marks the offending
	// indentation, Caret the first character of the token.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Underline  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indices.
const (
	red    = "9"
	green  = "10"
	yellow = "11"
	blue   = "12"
	cyan   = "14"
	grey   = "7"
	dark   = "8"
)

// NewStyles returns colored styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) }
	if !colorEnabled {
		fg = func(string) lipgloss.Style { return lipgloss.NewStyle() }
		bold = func(s lipgloss.Style) lipgloss.Style { return s }
	}
	plain := lipgloss.NewStyle()

	return &Styles{
		Error:   bold(fg(red)),
		Warning: bold(fg(yellow)),
		Info:    bold(fg(blue)),

		FilePath:   bold(plain),
		Location:   fg(dark),
		RuleID:     fg(dark),
		Message:    plain,
		SourceLine: fg(grey),
		Caret:      bold(fg(red)),
		Underline:  fg(yellow),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(cyan),
		DiffAdd:     fg(green),
		DiffRemove:  fg(red),
		DiffContext: fg(dark),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(green)),
		Failure:      bold(fg(red)),

		Dim:  fg(dark),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a color mode for writer. In auto mode (and for
// any unknown mode) color is used only when writer is a terminal and
// NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/lint"
)

// TabWidth is the display width of a tab stop in source context.
const TabWidth = 4

// contextIndent aligns source lines under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output. When
// sourceLine is non-empty it is printed below, with the leading whitespace
// underlined and a caret at the first character of the token.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)
	rule := s.RuleID.Render("(" + config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName) + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		rule,
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with a marker under the 1-based byte
// column. Whitespace before the column is underlined with "~".
func (s *Styles) FormatSourceContext(line string, column int) string {
	line = strings.TrimRight(line, "\r\n")

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(ExpandTabs(line)) + "\n")

	if column < 1 {
		return builder.String()
	}

	offset := min(column-1, len(line))
	lead := len(line[:offset]) - len(strings.TrimLeft(line[:offset], " \t"))
	leadWidth := DisplayWidth(line[:lead])
	gap := DisplayWidth(line[:offset]) - leadWidth

	builder.WriteString(contextIndent)
	builder.WriteString(s.Underline.Render(strings.Repeat("~", leadWidth)))
	builder.WriteString(strings.Repeat(" ", gap))
	builder.WriteString(s.Caret.Render("^") + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// DisplayWidth is the number of terminal cells s occupies when printed
// from column 0 with tabs expanded to TabWidth stops.
func DisplayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r == '\t' {
			width += TabWidth - width%TabWidth
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

// ExpandTabs replaces tabs with spaces up to the next TabWidth stop.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var builder strings.Builder
	width := 0
	for _, r := range s {
		if r == '\t' {
			pad := TabWidth - width%TabWidth
			builder.WriteString(strings.Repeat(" ", pad))
			width += pad
			continue
		}
		builder.WriteRune(r)
		width += runewidth.RuneWidth(r)
	}
	return builder.String()
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/runner"
)

const summaryDividerWidth = 40

// count renders "1 file" or "3 files".
func count(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", count(stats.FilesProcessed, "file"))))
	} else {
		issues := count(stats.DiagnosticsTotal, "issue")
		if severities := s.severityBreakdown(stats); len(severities) > 0 {
			issues += " (" + strings.Join(severities, ", ") + ")"
		}
		parts = append(parts, issues+" in "+count(stats.FilesWithIssues, "file"))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.DiagnosticsFixed, count(stats.FilesModified, "file"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(count(stats.FilesSkipped, "file")+" skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(count(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(stats runner.Stats) []string {
	var out []string
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		out = append(out, s.Error.Render(count(n, "error")))
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		out = append(out, s.Warning.Render(count(n, "warning")))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		out = append(out, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return out
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(fmt.Sprint(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(fmt.Sprint(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(fmt.Sprint(stats.FilesModified)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(fmt.Sprint(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(fmt.Sprint(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Total issues", s.SummaryValue.Render(fmt.Sprint(stats.DiagnosticsTotal)))
	for _, sev := range []struct {
		key, label string
		style      func(...string) string
	}{
		{"error", "  Errors", s.Error.Render},
		{"warning", "  Warnings", s.Warning.Render},
		{"info", "  Info", s.Info.Render},
	} {
		if n := stats.DiagnosticsBySeverity[sev.key]; n > 0 {
			row(sev.label, sev.style(fmt.Sprint(n)))
		}
	}
	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity["error"] > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

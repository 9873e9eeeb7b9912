package runner

import (
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// FileOutcome is what a single discovered file produced.
// Exactly one of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Host reports how the file carried markup, or HostUnknown when the file
// never got as far as being parsed.
func (o FileOutcome) Host() markup.Host {
	if o.Result == nil || o.Result.FileResult == nil || o.Result.Document == nil {
		return markup.HostUnknown
	}
	return o.Result.Document.Host
}

// Stats aggregates a run.
//
// File counters:
//   - FilesDiscovered: paths returned by discovery.
//   - FilesProcessed: files the pipeline finished, including skipped ones.
//   - FilesSkipped: files left alone because they changed on disk mid-run.
//   - FilesErrored: files that could not be read, parsed or written.
//   - FilesWithIssues: files whose final pass still reported something.
//   - FilesModified: files written back by --fix.
//
// FilesByHost is keyed by markup.Host.String().
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int
	FilesByHost     map[string]int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity is keyed by config.Severity; an unset severity
	// counts as a warning.
	DiagnosticsBySeverity map[string]int
}

// Result is everything a Run produced. Files are in discovery order.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic remains.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity["error"] > 0
}

// HasIssues reports whether any diagnostic remains.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		FilesByHost:           make(map[string]int),
		DiagnosticsBySeverity: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	st := &r.Stats
	if outcome.Error != nil {
		st.FilesErrored++
		return
	}

	pr := outcome.Result
	if pr == nil {
		return
	}

	st.FilesProcessed++
	if pr.Skipped {
		st.FilesSkipped++
	}
	if pr.Written {
		st.FilesModified++
	}
	st.DiagnosticsFixed += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}

	st.FilesByHost[outcome.Host().String()]++

	if n := len(pr.Diagnostics); n > 0 {
		st.FilesWithIssues++
		st.DiagnosticsTotal += n
	}
	st.DiagnosticsFixable += pr.FixableCount()

	for _, d := range pr.Diagnostics {
		sev := string(d.Severity)
		if sev == "" {
			sev = "warning"
		}
		st.DiagnosticsBySeverity[sev]++
	}
}

package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/htmlindent/pkg/runner"
)

// JSONVersion is the version of the JSON output schema.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Host        string           `json:"host,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Modified    bool             `json:"modified,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. MessageID and Data let
// consumers render their own message text.
type JSONDiagnostic struct {
	RuleID      string            `json:"ruleId"`
	RuleName    string            `json:"ruleName"`
	Severity    string            `json:"severity"`
	MessageID   string            `json:"messageId,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
	Message     string            `json:"message"`
	StartLine   int               `json:"startLine"`
	StartColumn int               `json:"startColumn"`
	EndLine     int               `json:"endLine"`
	EndColumn   int               `json:"endColumn"`
	Fixable     bool              `json:"fixable"`
	Fixes       []JSONFix         `json:"fixes,omitempty"`
}

// JSONFix represents a proposed text edit.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByHost          map[string]int `json:"byHost"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}, ByHost: map[string]int{}},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: []JSONDiagnostic{},
		}
		output.Summary.FilesChecked++

		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if pr := file.Result; pr != nil {
			entry.Modified = pr.Written
			if pr.Skipped {
				entry.Skipped = pr.SkipReason
			}

			if pr.FileResult != nil {
				if pr.Document != nil {
					entry.Host = file.Host().String()
					output.Summary.ByHost[entry.Host]++
				}
				for _, diag := range pr.Diagnostics {
					jd := JSONDiagnostic{
						RuleID:      diag.RuleID,
						RuleName:    diag.RuleName,
						Severity:    severityOf(diag.Severity),
						MessageID:   diag.MessageID,
						Data:        diag.Data,
						Message:     diag.Message,
						StartLine:   diag.StartLine,
						StartColumn: diag.StartColumn,
						EndLine:     diag.EndLine,
						EndColumn:   diag.EndColumn,
						Fixable:     diag.HasFix(),
					}
					for _, edit := range diag.FixEdits {
						jd.Fixes = append(jd.Fixes, JSONFix{
							StartOffset: edit.StartOffset,
							EndOffset:   edit.EndOffset,
							NewText:     edit.NewText,
						})
					}

					entry.Diagnostics = append(entry.Diagnostics, jd)
					output.Summary.TotalIssues++
					output.Summary.BySeverity[jd.Severity]++
					if jd.Fixable {
						output.Summary.Fixable++
					}
				}
			}
		}

		if len(entry.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		if entry.Modified {
			output.Summary.FilesModified++
		}
		output.Files = append(output.Files, entry)
	}

	return output
}

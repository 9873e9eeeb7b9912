package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
	"github.com/yaklabco/htmlindent/pkg/reporter"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

const brokenSource = "<div>\n<p>bad</p>\n</div>\n"

func wrongIndent() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      "HI001",
		RuleName:    "indent",
		MessageID:   "wrongIndent",
		Data:        map[string]string{"expected": "4 spaces", "actual": "no indent"},
		Message:     "Expected indentation of 4 spaces but found no indent.",
		Severity:    config.SeverityError,
		StartLine:   2,
		StartColumn: 1,
		EndLine:     2,
		EndColumn:   1,
		FixEdits:    []fix.TextEdit{{StartOffset: 6, EndOffset: 6, NewText: "    "}},
	}
}

func sampleResult() *runner.Result {
	doc := markup.NewDocument("/work/site/index.html", []byte(brokenSource))
	doc.Host = markup.HostMarkup

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/site/index.html",
				Result: &lint.PipelineResult{
					Path: "/work/site/index.html",
					FileResult: &lint.FileResult{
						Document:    doc,
						Diagnostics: []lint.Diagnostic{wrongIndent()},
					},
					Diff: fix.GenerateDiff("/work/site/index.html",
						[]byte(brokenSource), []byte("<div>\n    <p>bad</p>\n</div>\n")),
				},
			},
			{
				Path:  "/work/site/missing.html",
				Error: errors.New("file not found"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       2,
			FilesProcessed:        1,
			FilesErrored:          1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      1,
			DiagnosticsFixable:    1,
			DiagnosticsBySeverity: map[string]int{"error": 1},
		},
	}
}

func newReporter(t *testing.T, format config.OutputFormat, mutate func(*reporter.Options)) (reporter.Reporter, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = "/work"
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &buf
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{input: "", want: config.FormatText},
		{input: "text", want: config.FormatText},
		{input: "json", want: config.FormatJSON},
		{input: "checkstyle", want: config.FormatCheckstyle},
		{input: "diff", want: config.FormatDiff},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatText, nil)
	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "site/index.html:2:1")
	assert.Contains(t, out, "Expected indentation of 4 spaces but found no indent.")
	assert.Contains(t, out, "(indent)")
	assert.Contains(t, out, "<p>bad</p>")
	assert.Contains(t, out, "site/missing.html")
	assert.Contains(t, out, "error: file not found")
}

func TestTextReporterRuleFormatAndNoContext(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatText, func(o *reporter.Options) {
		o.RuleFormat = config.RuleFormatCombined
		o.ShowContext = false
		o.ShowSummary = false
	})
	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "(HI001/indent)")
	assert.NotContains(t, out, "<p>bad</p>")
}

func TestTextReporterEmpty(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatText, nil)
	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatJSON, nil)
	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, reporter.JSONVersion, out.Version)
	require.Len(t, out.Files, 2)

	first := out.Files[0]
	assert.Equal(t, "site/index.html", first.Path)
	assert.Equal(t, "markup", first.Host)
	require.Len(t, first.Diagnostics, 1)

	diag := first.Diagnostics[0]
	assert.Equal(t, "HI001", diag.RuleID)
	assert.Equal(t, "wrongIndent", diag.MessageID)
	assert.Equal(t, "4 spaces", diag.Data["expected"])
	assert.Equal(t, "no indent", diag.Data["actual"])
	assert.Equal(t, "error", diag.Severity)
	assert.True(t, diag.Fixable)
	require.Len(t, diag.Fixes, 1)
	assert.Equal(t, "    ", diag.Fixes[0].NewText)

	assert.Equal(t, "file not found", out.Files[1].Error)

	assert.Equal(t, 2, out.Summary.FilesChecked)
	assert.Equal(t, 1, out.Summary.FilesWithIssues)
	assert.Equal(t, 1, out.Summary.FilesErrored)
	assert.Equal(t, 1, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.Fixable)
	assert.Equal(t, map[string]int{"error": 1}, out.Summary.BySeverity)
	assert.Equal(t, map[string]int{"markup": 1}, out.Summary.ByHost)
}

func TestJSONReporterCompact(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatJSON, func(o *reporter.Options) { o.Compact = true })
	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"files":[]`)
}

func TestCheckstyleReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatCheckstyle, func(o *reporter.Options) {
		o.RuleFormat = config.RuleFormatID
	})
	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("checkstyle")
	require.NotNil(t, root)
	assert.Equal(t, reporter.CheckstyleVersion, root.SelectAttrValue("version", ""))

	files := root.SelectElements("file")
	require.Len(t, files, 2)
	assert.Equal(t, "site/index.html", files[0].SelectAttrValue("name", ""))

	entry := files[0].SelectElement("error")
	require.NotNil(t, entry)
	assert.Equal(t, "2", entry.SelectAttrValue("line", ""))
	assert.Equal(t, "1", entry.SelectAttrValue("column", ""))
	assert.Equal(t, "error", entry.SelectAttrValue("severity", ""))
	assert.Equal(t, "htmlindent.HI001", entry.SelectAttrValue("source", ""))
	assert.Equal(t, "Expected indentation of 4 spaces but found no indent.", entry.SelectAttrValue("message", ""))

	failure := files[1].SelectElement("error")
	require.NotNil(t, failure)
	assert.Equal(t, "file not found", failure.SelectAttrValue("message", ""))
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatDiff, nil)
	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/site/index.html b/site/index.html")
	assert.Contains(t, out, "--- a/site/index.html")
	assert.Contains(t, out, "+++ b/site/index.html")
	assert.Contains(t, out, "@@ -1,3 +1,3 @@")
	assert.Contains(t, out, "-<p>bad</p>\n")
	assert.Contains(t, out, "+    <p>bad</p>\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporterNoChanges(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatDiff, nil)
	count, err := rep.Report(context.Background(), &runner.Result{
		Files: []runner.FileOutcome{{Path: "/work/a.html", Result: &lint.PipelineResult{}}},
	})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestDisplayPathOutsideWorkingDir(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, config.FormatJSON, func(o *reporter.Options) { o.WorkingDir = "/elsewhere" })
	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "/work/site/index.html", out.Files[0].Path)
}

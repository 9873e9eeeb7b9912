package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

// CheckstyleVersion is the checkstyle schema version written to the root element.
const CheckstyleVersion = "4.3"

// checkstyleSource prefixes the source attribute of each error element.
const checkstyleSource = "htmlindent."

// CheckstyleReporter formats results as checkstyle XML, the format most CI
// annotators accept.
type CheckstyleReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewCheckstyleReporter creates a new checkstyle reporter.
func NewCheckstyleReporter(opts Options) *CheckstyleReporter {
	return &CheckstyleReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *CheckstyleReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc, total := r.buildDocument(result)
	if !r.opts.Compact {
		doc.Indent(2)
	}

	if _, err := doc.WriteTo(r.bw); err != nil {
		return 0, fmt.Errorf("write checkstyle: %w", err)
	}

	return total, nil
}

func (r *CheckstyleReporter) buildDocument(result *runner.Result) (*etree.Document, int) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", CheckstyleVersion)

	if result == nil {
		return doc, 0
	}

	ruleFormat := r.opts.RuleFormat
	if ruleFormat == "" {
		ruleFormat = config.RuleFormatName
	}

	total := 0
	for _, file := range result.Files {
		elem := root.CreateElement("file")
		elem.CreateAttr("name", displayPath(file.Path, r.opts.WorkingDir))

		if file.Error != nil {
			failure := elem.CreateElement("error")
			failure.CreateAttr("severity", string(config.SeverityError))
			failure.CreateAttr("message", file.Error.Error())
			failure.CreateAttr("source", checkstyleSource+"io")
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for _, diag := range file.Result.Diagnostics {
			entry := elem.CreateElement("error")
			entry.CreateAttr("line", strconv.Itoa(diag.StartLine))
			entry.CreateAttr("column", strconv.Itoa(diag.StartColumn))
			entry.CreateAttr("severity", severityOf(diag.Severity))
			entry.CreateAttr("message", diag.Message)
			entry.CreateAttr("source", checkstyleSource+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName))
			total++
		}
	}

	return doc, total
}

package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/htmlindent/internal/ui/pretty"
	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

// DiffReporter formats pending fixes as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The returned count is the number of files
// with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		if err := r.writeDiff(diff); err != nil {
			return files, err
		}
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) error {
	if err := diff.WriteUnified(r.bw, displayPath(diff.Path, r.opts.WorkingDir), r.paint); err != nil {
		return err
	}
	return r.bw.WriteByte('\n')
}

func (r *DiffReporter) paint(part fix.DiffPart, line string) string {
	switch part {
	case fix.DiffPartGitHeader:
		return r.styles.DiffHeader.Render(line)
	case fix.DiffPartFromFile, fix.DiffPartRemove:
		return r.styles.DiffRemove.Render(line)
	case fix.DiffPartToFile, fix.DiffPartAdd:
		return r.styles.DiffAdd.Render(line)
	case fix.DiffPartHunkHeader:
		return r.styles.DiffHunk.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{plural(files, "file", "files") + " changed"}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(additions, "insertion", "insertions")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(deletions, "deletion", "deletions")+"(-)"))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

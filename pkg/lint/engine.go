package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/embedded"
	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// FileResult is the outcome of one lint pass over one file.
type FileResult struct {
	Document *markup.Document

	// Diagnostics are ordered by start position.
	Diagnostics []Diagnostic

	// Edits are the validated, sorted edits of rules with auto-fix on.
	// SkippedEdits overlapped an earlier edit and were dropped.
	Edits         []fix.TextEdit
	SkippedEdits  []fix.TextEdit
	EditConflicts bool

	// Fragments is the number of embedded markup fragments parsed.
	Fragments int

	// RuleErrors is keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostic was produced.
func (fr *FileResult) HasIssues() bool { return len(fr.Diagnostics) > 0 }

// HasFixes reports whether any edit is ready to apply.
func (fr *FileResult) HasFixes() bool { return len(fr.Edits) > 0 }

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int { return len(fr.Diagnostics) }

// FixableCount returns the number of diagnostics that carry a fix.
func (fr *FileResult) FixableCount() int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			n++
		}
	}
	return n
}

// Engine parses a file and runs the resolved rules over it.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and applies every enabled rule.
//
// A rule that fails is recorded in RuleErrors and the others still run.
// Edits that fail validation are dropped as a whole and EditConflicts is
// set; the diagnostics are kept.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Document:   doc,
		RuleErrors: make(map[string]error),
	}

	// Rules of one file share parsed fragments.
	cache := embedded.NewCache()

	var edits []fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		rc := NewRuleContext(ctx, doc, cfg, rr.Config)
		rc.Registry = e.Registry
		rc.Embedded = cache

		diags, err := rr.Rule.Apply(rc)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			stamp(&diags[i], rr, path)
			if rr.AutoFix {
				edits = append(edits, diags[i].FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, byPosition)
	result.Fragments = cache.Len()

	if len(edits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, len(content))
		if err != nil {
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

// stamp fills in what the engine knows and rules may leave out.
func stamp(d *Diagnostic, rr ResolvedRule, path string) {
	d.Severity = rr.Severity
	if d.FilePath == "" {
		d.FilePath = path
	}
	if d.RuleName == "" {
		d.RuleName = rr.Rule.Name()
	}
}

func byPosition(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.StartColumn, b.StartColumn),
	)
}

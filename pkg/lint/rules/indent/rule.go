// Package indent implements HI001, the markup indentation rule.
//
// The rule walks the markup tree once, keeping a depth counter that goes
// up on entering a structural node and down on leaving it. Every token
// that starts its own line (tag boundaries, attribute parts, lines of
// text and comments) must be preceded by exactly the rendered depth.
// Markup embedded in JavaScript template literals and Markdown fences is
// checked the same way, offset by the indentation of the host.
package indent

import (
	"fmt"
	"sync"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/embedded"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

const (
	// RuleID is the rule identifier.
	RuleID = "HI001"

	// RuleName is the rule name used in configuration and output.
	RuleName = "indent"

	// MessageWrongIndent is the message ID of every diagnostic.
	MessageWrongIndent = "wrongIndent"
)

// Rule checks markup indentation.
type Rule struct {
	lint.BaseRule

	mu       sync.Mutex
	matchers map[string]*embedded.Matcher
}

// NewRule creates the indentation rule.
func NewRule() *Rule {
	return &Rule{
		BaseRule: lint.NewBaseRule(lint.RuleMeta{
			ID:          RuleID,
			Name:        RuleName,
			Description: "Markup tokens should be indented to their nesting depth",
			Tags:        []string{"style", "whitespace", "indentation"},
			Fixable:     true,
			Severity:    config.SeverityError,
		}),
		matchers: make(map[string]*embedded.Matcher),
	}
}

// ValidateOptions rejects option values before any file is linted.
func (r *Rule) ValidateOptions(raw map[string]any) error {
	opts, err := parseOptions(raw)
	if err != nil {
		return err
	}
	_, err = r.matcher(opts)
	return err
}

// DefaultOptions returns the options applied when none are configured.
func (r *Rule) DefaultOptions() map[string]any {
	return map[string]any{
		optIndent:              defaultSize,
		optAttribute:           1,
		optTagChildrenIndent:   map[string]any{},
		optVerbatimElements:    defaultVerbatim,
		optVerbatimScriptStyle: false,
		optTemplateTags:        embedded.DefaultTags,
		optTemplateComments:    embedded.DefaultComments,
		optTemplateFilter:      "",
		optMarkdownLanguages:   embedded.DefaultMarkdownLanguages,
		optMarkdownDetect:      false,
	}
}

// matcher returns the compiled literal predicate for opts.
func (r *Rule) matcher(opts options) (*embedded.Matcher, error) {
	key := opts.matcherKey()

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.matchers[key]; ok {
		return m, nil
	}
	m, err := embedded.NewMatcher(opts.templateTags, opts.templateComments, opts.templateFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	r.matchers[key] = m
	return m, nil
}

// Apply checks the document, or each markup literal of a host document.
func (r *Rule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	if rc.File == nil {
		return nil, nil
	}

	opts, err := parseOptions(rc.Options())
	if err != nil {
		return nil, err
	}

	var found []mismatch
	doc := rc.File

	switch doc.Host {
	case markup.HostMarkup:
		found = newChecker(doc, opts, 0, doc.Holes).run(rc.Root)

	case markup.HostScript:
		m, err := r.matcher(opts)
		if err != nil {
			return nil, err
		}
		lits, err := embedded.LocateScript(doc.Path, doc.Content, m)
		if err != nil {
			return nil, err
		}
		found, err = checkLiterals(rc, opts, lits, func(lit embedded.Literal) []markup.Range {
			return lit.Holes
		})
		if err != nil {
			return nil, err
		}

	case markup.HostMarkdown:
		lits := embedded.LocateMarkdown(doc.Content, embedded.MarkdownOptions{
			Languages: opts.markdownLanguages,
			Detect:    opts.markdownDetect,
		})
		found, err = checkLiterals(rc, opts, lits, func(lit embedded.Literal) []markup.Range {
			return literalHoles(doc, lit.Range)
		})
		if err != nil {
			return nil, err
		}

	case markup.HostUnknown:
		return nil, nil
	}

	diags := make([]lint.Diagnostic, 0, len(found))
	for _, m := range found {
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), doc.Path, m.Loc, message(m)).
			WithRuleName(rc.Registry).
			WithMessageID(MessageWrongIndent).
			WithData(map[string]string{"expected": m.Expected, "actual": m.Actual}).
			WithEdit(m.Edit).
			Build())
	}
	return diags, nil
}

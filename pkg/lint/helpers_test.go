package lint_test

import (
	"context"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

const (
	testRuleID1 = "HI901"
	testRuleID2 = "HI902"
)

// stubParser returns a document with an empty root.
type stubParser struct {
	err error
}

func (p *stubParser) Parse(_ context.Context, path string, content []byte) (*markup.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	doc := markup.NewDocument(path, content)
	doc.Host = markup.HostMarkup
	doc.Root = &markup.Node{Kind: markup.KindDocument, Range: markup.Range{End: len(content)}}
	return doc, nil
}

// testRule returns fixed diagnostics.
type testRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
	apply func(rc *lint.RuleContext) ([]lint.Diagnostic, error)
}

func newTestRule(id string, canFix bool) *testRule {
	return &testRule{BaseRule: lint.NewBaseRule(lint.RuleMeta{
		ID: id, Name: id + "-name", Description: "test rule", Fixable: canFix,
	})}
}

func (r *testRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	if r.apply != nil {
		return r.apply(rc)
	}
	return r.diags, r.err
}

// leadingSpaceRule flags and strips leading spaces at the start of the file.
type leadingSpaceRule struct {
	lint.BaseRule
}

func newLeadingSpaceRule() *leadingSpaceRule {
	return &leadingSpaceRule{BaseRule: lint.NewBaseRule(lint.RuleMeta{
		ID: testRuleID1, Name: "leading-space", Fixable: true,
	})}
}

func (r *leadingSpaceRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	n := 0
	for n < len(rc.File.Content) && rc.File.Content[n] == ' ' {
		n++
	}
	if n == 0 {
		return nil, nil
	}
	diag := lint.NewDiagnosticAt(r.ID(), rc.File.Path, rc.File.LocationOf(markup.Range{End: n}), "leading space").
		WithEdit(fix.TextEdit{StartOffset: 0, EndOffset: n}).
		Build()
	return []lint.Diagnostic{diag}, nil
}

func fixConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}

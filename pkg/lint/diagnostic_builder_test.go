package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	loc := markup.Location{
		Start: markup.Position{Line: 2, Column: 0},
		End:   markup.Position{Line: 2, Column: 4},
	}

	diag := lint.NewDiagnosticAt("HI001", "a.html", loc, "Expected indentation of 4 spaces but found no indent").
		WithMessageID("wrongIndent").
		WithData(map[string]string{"expected": "4 spaces"}).
		WithData(map[string]string{"actual": "no indent"}).
		WithEdit(fix.TextEdit{StartOffset: 6, EndOffset: 6, NewText: "    "}).
		Build()

	assert.Equal(t, "a.html", diag.FilePath)
	assert.Equal(t, 2, diag.StartLine)
	assert.Equal(t, 1, diag.StartColumn)
	assert.Equal(t, 5, diag.EndColumn)
	assert.Equal(t, "wrongIndent", diag.MessageID)
	assert.Equal(t, map[string]string{"expected": "4 spaces", "actual": "no indent"}, diag.Data)
	assert.Empty(t, diag.Severity)
	assert.True(t, diag.HasFix())
	assert.Equal(t, loc, diag.Location())
}

func TestDiagnosticBuilder_WithRuleName(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	reg.Register(newTestRule(testRuleID1, false))

	diag := lint.NewDiagnosticAt(testRuleID1, "", markup.Location{}, "m").WithRuleName(reg).Build()
	assert.Equal(t, testRuleID1+"-name", diag.RuleName)

	diag = lint.NewDiagnosticAt("HI999", "", markup.Location{}, "m").WithRuleName(reg).WithRuleName(nil).Build()
	assert.Empty(t, diag.RuleName)
}

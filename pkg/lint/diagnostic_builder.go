package lint

import (
	"maps"

	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a specific location.
// Columns in loc are 0-based and are reported 1-based.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	loc markup.Location,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   loc.Start.Line,
			StartColumn: loc.Start.Column + 1,
			EndLine:     loc.End.Line,
			EndColumn:   loc.End.Column + 1,
		},
	}
}

// WithRuleName looks up the rule name in reg.
func (b *DiagnosticBuilder) WithRuleName(reg *Registry) *DiagnosticBuilder {
	if reg != nil {
		if rule, ok := reg.GetByID(b.diag.RuleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithMessageID sets the message template identifier.
func (b *DiagnosticBuilder) WithMessageID(id string) *DiagnosticBuilder {
	b.diag.MessageID = id
	return b
}

// WithData merges template data into the diagnostic.
func (b *DiagnosticBuilder) WithData(data map[string]string) *DiagnosticBuilder {
	if b.diag.Data == nil {
		b.diag.Data = make(map[string]string, len(data))
	}
	maps.Copy(b.diag.Data, data)
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}

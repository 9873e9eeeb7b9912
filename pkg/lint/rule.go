// Package lint provides the rule engine, diagnostics, and registry for htmlindent.
package lint

import (
	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "indent").
	RuleName string

	// MessageID identifies the message template (e.g., "wrongIndent").
	MessageID string

	// Data holds the values substituted into the message template.
	Data map[string]string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Location converts the diagnostic position back to a markup.Location
// with 0-based columns.
func (d *Diagnostic) Location() markup.Location {
	return markup.Location{
		Start: markup.Position{Line: d.StartLine, Column: d.StartColumn - 1},
		End:   markup.Position{Line: d.EndLine, Column: d.EndColumn - 1},
	}
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "HI001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["style", "whitespace"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must:
	//   - Return diagnostics for each violation found.
	//   - Use Builder to propose fix edits (if CanFix() is true).
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// OptionValidator is implemented by rules whose options can be checked
// when configuration is loaded, before any file is linted.
type OptionValidator interface {
	ValidateOptions(opts map[string]any) error
}

// OptionDefaulter is implemented by rules that publish their default
// options, used for generated configuration templates.
type OptionDefaulter interface {
	DefaultOptions() map[string]any
}

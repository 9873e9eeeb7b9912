package lint

import (
	"slices"

	"github.com/yaklabco/htmlindent/pkg/config"
)

// RuleMeta is the static description of a rule.
type RuleMeta struct {
	ID          string // e.g. "HI001"
	Name        string // e.g. "indent"
	Description string
	Tags        []string
	Fixable     bool

	// Severity applies when configuration sets none. Empty means warning.
	Severity config.Severity

	// Disabled rules only run when enabled in configuration.
	Disabled bool
}

// BaseRule implements every Rule method except Apply from a RuleMeta.
// Embed it and provide Apply.
type BaseRule struct {
	meta RuleMeta
}

// NewBaseRule creates a BaseRule. Tags are copied.
func NewBaseRule(meta RuleMeta) BaseRule {
	meta.Tags = slices.Clone(meta.Tags)
	return BaseRule{meta: meta}
}

// Meta returns a copy of the rule description.
func (r *BaseRule) Meta() RuleMeta {
	m := r.meta
	m.Tags = slices.Clone(m.Tags)
	return m
}

func (r *BaseRule) ID() string          { return r.meta.ID }
func (r *BaseRule) Name() string        { return r.meta.Name }
func (r *BaseRule) Description() string { return r.meta.Description }
func (r *BaseRule) Tags() []string      { return r.meta.Tags }
func (r *BaseRule) CanFix() bool        { return r.meta.Fixable }

// DefaultEnabled reports whether the rule runs without configuration.
func (r *BaseRule) DefaultEnabled() bool {
	return !r.meta.Disabled
}

// DefaultSeverity is the meta severity, or warning when unset.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.meta.Severity == "" {
		return config.SeverityWarning
	}
	return r.meta.Severity
}

// Apply reports nothing. Concrete rules replace it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}

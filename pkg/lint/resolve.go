package lint

import (
	"slices"

	"github.com/yaklabco/htmlindent/pkg/config"
)

// ResolvedRule is a rule together with the settings it runs with.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// AutoFix is true when the rule's edits should be applied.
	AutoFix bool

	// Config is the rules.<ID> entry, nil when there is none.
	Config *config.RuleConfig
}

// Options returns the configured options of the rule, or nil.
func (rr ResolvedRule) Options() map[string]any {
	if rr.Config == nil {
		return nil
	}
	return rr.Config.Options
}

// ResolveRules returns the enabled rules of registry in registration order.
//
// Enablement, from lowest to highest precedence:
//  1. Rule.DefaultEnabled.
//  2. --enable, then --disable.
//  3. rules.<ID>.enabled.
//
// A nil cfg runs every default-enabled rule with its defaults.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var out []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolve(rule, cfg); rr.Enabled {
			out = append(out, rr)
		}
	}
	return out
}

func resolve(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	id := rule.ID()
	switch {
	case slices.Contains(cfg.DisableRules, id):
		rr.Enabled = false
	case slices.Contains(cfg.EnableRules, id):
		rr.Enabled = true
	}

	if rc, ok := cfg.Rules[id]; ok {
		rr.Config = &rc
		if rc.Enabled != nil {
			rr.Enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			rr.Severity = config.Severity(*rc.Severity)
		}
		if rc.AutoFix != nil {
			rr.AutoFix = rr.AutoFix && *rc.AutoFix
		}
	}

	rr.AutoFix = rr.AutoFix && cfg.Fix && fixSelected(cfg.FixRules, id)
	return rr
}

// fixSelected reports whether id survives the --fix-rules filter.
// An empty filter selects every rule.
func fixSelected(filter []string, id string) bool {
	return len(filter) == 0 || slices.Contains(filter, id)
}

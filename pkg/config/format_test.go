package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "HI001", "indent", "indent"},
		{"id format", config.RuleFormatID, "HI001", "indent", "HI001"},
		{"combined format", config.RuleFormatCombined, "HI001", "indent", "HI001/indent"},
		{"name format empty name", config.RuleFormatName, "HI001", "", "HI001"},
		{"default to name", config.RuleFormat(""), "HI001", "indent", "indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.True(t, cfg.Backups.Enabled)
	assert.NotNil(t, cfg.Rules)
}

func TestValidity(t *testing.T) {
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
	assert.True(t, config.FormatCheckstyle.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

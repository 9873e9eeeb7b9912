package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"HI001": {
					Enabled:  &enabled,
					Severity: &severity,
					Options:  map[string]any{"indent": 2},
				},
			},
		}

		clone := original.Clone()
		require.Contains(t, clone.Rules, "HI001")
		assert.True(t, *clone.Rules["HI001"].Enabled)
		assert.Equal(t, "error", *clone.Rules["HI001"].Severity)

		newSeverity := "warning"
		clone.Rules["HI001"] = config.RuleConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Rules["HI001"].Severity)
	})

	t.Run("deep copies slices and CLI fields", func(t *testing.T) {
		original := &config.Config{
			Ignore:        []string{"vendor/**"},
			Interpolation: []config.Delimiter{{Open: "{%", Close: "%}"}},
			Fix:           true,
			Jobs:          3,
			EnableRules:   []string{"HI001"},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Interpolation[0].Open = "<%"
		clone.EnableRules[0] = "X"

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, "{%", original.Interpolation[0].Open)
		assert.Equal(t, "HI001", original.EnableRules[0])
		assert.True(t, clone.Fix)
		assert.Equal(t, 3, clone.Jobs)
	})
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
severity_default: error
ignore:
  - "dist/**"
interpolation:
  - open: "{%"
    close: "%}"
rules:
  HI001:
    options:
      indent: tab
      attribute: 2
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	assert.Equal(t, []config.Delimiter{{Open: "{%", Close: "%}"}}, cfg.Interpolation)
	assert.Equal(t, "tab", cfg.Rules["HI001"].Options["indent"])
	assert.Equal(t, 2, cfg.Rules["HI001"].Options["attribute"])
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)
}

func TestFromTOML(t *testing.T) {
	data := []byte(`
severity_default = "error"
ignore = ["dist/**"]

[[interpolation]]
open = "{%"
close = "%}"

[rules.HI001]
enabled = true

[rules.HI001.options]
indent = 2
template_tags = ["html", "svg"]
`)

	cfg, err := config.FromTOML(data)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []config.Delimiter{{Open: "{%", Close: "%}"}}, cfg.Interpolation)
	require.NotNil(t, cfg.Rules["HI001"].Enabled)
	assert.True(t, *cfg.Rules["HI001"].Enabled)
	assert.Equal(t, int64(2), cfg.Rules["HI001"].Options["indent"])
}

func TestFromTOMLUnknownKey(t *testing.T) {
	_, err := config.FromTOML([]byte(`severty_default = "error"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severty_default")
}

func TestRoundTrip(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}

	yamlBytes, err := cfg.ToYAML()
	require.NoError(t, err)
	fromYAML, err := config.FromYAML(yamlBytes)
	require.NoError(t, err)
	assert.Equal(t, cfg.Ignore, fromYAML.Ignore)
	assert.Equal(t, cfg.Backups, fromYAML.Backups)

	tomlBytes, err := cfg.ToTOML()
	require.NoError(t, err)
	fromTOML, err := config.FromTOML(tomlBytes)
	require.NoError(t, err)
	assert.Equal(t, cfg.SeverityDefault, fromTOML.SeverityDefault)
	assert.Equal(t, cfg.Backups, fromTOML.Backups)
}

package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation and default options.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
	Options     map[string]any
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return yamlTemplate(opts), nil
	case TemplateTOML:
		return tomlTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func yamlTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Default severity for all rules: error, warning, or info
severity_default: warning

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - "dist/**"

# Template delimiters whose content is not checked.
# interpolation:
#   - open: "{{"
#     close: "}}"

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   HI001:
#     options:
#       indent: 2
#       attribute: 1
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific configuration\nrules:\n")
	for _, rule := range sortedRuleInfos() {
		writeRuleHeader(&buf, rule, "  ")
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
		if len(rule.Options) > 0 {
			buf.WriteString("    options:\n")
			for _, key := range sortedKeys(rule.Options) {
				fmt.Fprintf(&buf, "      %s: %s\n", key, yamlValue(rule.Options[key]))
			}
		}
	}

	return buf.Bytes()
}

func tomlTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Default severity for all rules: error, warning, or info
severity_default = "warning"

# File patterns to ignore (glob patterns)
ignore = ["node_modules/**", "dist/**"]

# Template delimiters whose content is not checked.
# [[interpolation]]
# open = "{{"
# close = "}}"

# Backup configuration for auto-fix
[backups]
enabled = true
mode = "sidecar"
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# [rules.HI001.options]
# indent = 2
# attribute = 1
`)
		return buf.Bytes()
	}

	for _, rule := range sortedRuleInfos() {
		buf.WriteString("\n")
		writeRuleHeader(&buf, rule, "")
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "severity = %q\n", rule.Severity)
		if len(rule.Options) > 0 {
			fmt.Fprintf(&buf, "\n[rules.%s.options]\n", rule.ID)
			for _, key := range sortedKeys(rule.Options) {
				fmt.Fprintf(&buf, "%s = %s\n", key, tomlValue(rule.Options[key]))
			}
		}
	}

	return buf.Bytes()
}

func writeRuleHeader(buf *bytes.Buffer, rule RuleInfo, indent string) {
	fmt.Fprintf(buf, "\n%s# %s: %s\n", indent, rule.ID, rule.Name)
	fmt.Fprintf(buf, "%s# %s\n", indent, wrapComment(rule.Description, commentWrapWidth, indent))
	if len(rule.Tags) > 0 {
		fmt.Fprintf(buf, "%s# Tags: %s\n", indent, strings.Join(rule.Tags, ", "))
	}
	if rule.CanFix {
		fmt.Fprintf(buf, "%s# Auto-fix: yes\n", indent)
	}
}

func sortedRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}

	rules := DefaultRuleInfoProvider()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func yamlValue(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case map[string]int:
		if len(val) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(val))
		for k, n := range val {
			parts = append(parts, fmt.Sprintf("%s: %d", k, n))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]any:
		return inlineTable(val, ": ", yamlValue)
	default:
		return fmt.Sprint(val)
	}
}

func tomlValue(v any) string {
	switch val := v.(type) {
	case map[string]int:
		parts := make([]string, 0, len(val))
		for k, n := range val {
			parts = append(parts, fmt.Sprintf("%s = %d", k, n))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]any:
		return inlineTable(val, " = ", tomlValue)
	default:
		return yamlValue(v)
	}
}

func inlineTable(m map[string]any, sep string, value func(any) string) string {
	if len(m) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+sep+value(m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent+"# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# htmlindent configuration
# See: https://github.com/yaklabco/htmlindent`
}

// Package config defines core configuration types for htmlindent.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `toml:"enabled" yaml:"enabled"`
	Severity *string        `toml:"severity" yaml:"severity"`
	AutoFix  *bool          `toml:"auto_fix" yaml:"auto_fix"`
	Options  map[string]any `toml:"options" yaml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Mode    string `toml:"mode" yaml:"mode"` // "sidecar"
}

// Delimiter is an interpolation marker pair of the template dialect in use.
type Delimiter struct {
	Open  string `toml:"open" yaml:"open"`
	Close string `toml:"close" yaml:"close"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText       OutputFormat = "text"
	FormatJSON       OutputFormat = "json"
	FormatCheckstyle OutputFormat = "checkstyle"
	FormatDiff       OutputFormat = "diff"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatCheckstyle, FormatDiff:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "indent"
	RuleFormatID       RuleFormat = "id"       // "HI001"
	RuleFormatCombined RuleFormat = "combined" // "HI001/indent"
)

// Config is the root configuration structure for htmlindent.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `toml:"severity_default" yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `toml:"rules" yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `toml:"ignore" yaml:"ignore"`

	// Extensions overrides the file extensions picked up during discovery.
	Extensions []string `toml:"extensions" yaml:"extensions,omitempty"`

	// Interpolation lists the template delimiters whose content is not
	// statically known. Nil selects "{{" / "}}".
	Interpolation []Delimiter `toml:"interpolation" yaml:"interpolation,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `toml:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `toml:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `toml:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `toml:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `toml:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `toml:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `toml:"-" yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `toml:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to the ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatName:
		return ruleName
	default:
		return ruleName
	}
}

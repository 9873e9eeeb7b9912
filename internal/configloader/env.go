package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/config"
)

// EnvPrefix is the prefix of every htmlindent environment variable.
const EnvPrefix = "HTMLINDENT_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "Default severity: error, warning, or info", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
	{"FIX", "Enable auto-fix: true or false", boolVar(func(cfg *config.Config, b bool) { cfg.Fix = b })},
	{"DRY_RUN", "Dry-run mode: true or false", boolVar(func(cfg *config.Config, b bool) { cfg.DryRun = b })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"FORMAT", "Output format: text, json, checkstyle, or diff", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"RULE_FORMAT", "Rule identifiers in output: name, id, or combined", func(cfg *config.Config, v string) error {
		cfg.RuleFormat = config.RuleFormat(v)
		return nil
	}},
	{"BACKUPS_ENABLED", "Enable backups when fixing: true or false",
		boolVar(func(cfg *config.Config, b bool) { cfg.Backups.Enabled = b })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolVar(func(cfg *config.Config, b bool) { cfg.NoBackups = b })},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	{"EXTENSIONS", "Comma-separated list of file extensions to check", func(cfg *config.Config, v string) error {
		cfg.Extensions = splitList(v)
		return nil
	}},
}

func boolVar(set func(cfg *config.Config, b bool)) func(cfg *config.Config, value string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies HTMLINDENT_* overrides to cfg. Unset and empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		value := getenv(EnvPrefix + ev.suffix)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, ev.suffix, err)
		}
	}

	return nil
}

// splitList parses a comma-separated list, dropping blank elements.
func splitList(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	result := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		result[EnvPrefix+ev.suffix] = ev.description
	}
	return result
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, EnvPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}

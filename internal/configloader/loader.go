// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant discovery, hierarchical merging,
// HTMLINDENT_* environment overrides and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry validates rule keys and options. Nil uses lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags and takes highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded, in order.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (HTMLINDENT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.htmlindent.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/htmlindent/config.yaml)
//  6. System config (/etc/htmlindent/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}

		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		normalizeRuleKeys(fileCfg, registry, result)

		validation := ValidateWithFile(fileCfg, registry, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	cfg.EnableRules = resolveRuleList(cfg.EnableRules, registry, result)
	cfg.DisableRules = resolveRuleList(cfg.DisableRules, registry, result)
	cfg.FixRules = resolveRuleList(cfg.FixRules, registry, result)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads a single YAML or TOML configuration file, chosen by extension.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		return config.FromTOML(content)
	}
	return config.FromYAML(content)
}

// WriteFile writes cfg to path in the format implied by its extension.
func WriteFile(cfg *config.Config, path string) error {
	var (
		content []byte
		err     error
	)
	if IsTOMLConfig(path) {
		content, err = cfg.ToTOML()
	} else {
		content, err = cfg.ToYAML()
	}
	if err != nil {
		return err
	}

	header := config.DefaultTemplateHeader() + "\n\n"
	if err := os.WriteFile(filepath.Clean(path), append([]byte(header), content...), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// normalizeRuleKeys rewrites rule names in cfg.Rules to canonical IDs, so
// "indent" and "HI001" configure the same rule. When both appear, the
// entries are merged and a warning is recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string, len(cfg.Rules))

	for key, ruleCfg := range cfg.Rules {
		id, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}

		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s", original, key, id))
			normalized[id] = mergeRuleConfig(normalized[id], ruleCfg)
			continue
		}

		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}

// resolveRuleList maps rule names to IDs, warning on unknown keys.
func resolveRuleList(keys []string, registry *lint.Registry, result *LoadResult) []string {
	if keys == nil {
		return nil
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, ok := registry.Resolve(key)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown rule %q; it will be ignored", key))
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlindent/internal/configloader"
	"github.com/yaklabco/htmlindent/internal/logging"
	"github.com/yaklabco/htmlindent/internal/ui/pretty"
	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/parser/html"
	"github.com/yaklabco/htmlindent/pkg/reporter"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

type lintFlags struct {
	format     string
	ruleFormat string
	ignore     []string
	include    []string
	extensions []string
	enable     []string
	disable    []string
	fixRules   []string
	strict     bool
	noContext  bool
	noSummary  bool
	compact    bool
	follow     bool
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check markup indentation",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check that markup is indented to its nesting depth.

By default, checks every HTML, template, script and Markdown file below the
current directory. Specify paths to check specific files or directories.

Examples:
  htmlindent lint                    # Check current directory
  htmlindent lint src/               # Check src directory
  htmlindent lint index.html         # Check a single file
  htmlindent lint --fix              # Check and rewrite indentation
  htmlindent lint --fix --dry-run    # Show fixes as a diff without writing
  htmlindent lint --format json      # Output as JSON for CI
  htmlindent lint --strict           # Fail on warnings too`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return &ExitError{Code: ExitInvalidUsage, Err: err}
		}
		cfg.Format = format
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	if cfg.DryRun {
		cfg.Fix = true
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return &ExitError{
			Code: ExitConfigError,
			Err:  errors.Join(errors.New("failed to load configuration"), err),
		}
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration",
			logging.FieldConfig, configPath,
			logging.FieldFiles, loadResult.LoadedFrom,
		)
	}
	logger.Debug("configuration resolved",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFormat, finalCfg.Format,
		logging.FieldExtensions, finalCfg.Extensions,
	)

	parser := html.New(html.Options{Delimiters: html.DelimitersFromConfig(finalCfg.Interpolation)})
	engine := lint.NewEngine(parser, lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, runner.ErrBadPattern) {
			return &ExitError{Code: ExitInvalidUsage, Err: err}
		}
		return errors.Join(errors.New("lint run failed"), err)
	}

	logOutcomes(logger, result)
	logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}

	format := finalCfg.Format
	if finalCfg.DryRun && !cmd.Flags().Changed("format") && format == config.FormatText {
		format = config.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("create reporter: %w", err)}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrLintIssuesFound}
	}

	return nil
}

// logOutcomes writes one debug entry per file.
func logOutcomes(logger *log.Logger, result *runner.Result) {
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Debug("file failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error,
			)
			continue
		}

		pr := outcome.Result
		if pr == nil {
			continue
		}
		fragments := 0
		if pr.FileResult != nil {
			fragments = pr.Fragments
			for id, err := range pr.RuleErrors {
				logger.Warn("rule failed",
					logging.FieldPath, outcome.Path,
					logging.FieldRule, id,
					logging.FieldError, err,
				)
			}
		}
		logger.Debug("file checked",
			logging.FieldPath, outcome.Path,
			logging.FieldHost, outcome.Host(),
			logging.FieldFragments, fragments,
			logging.FieldPasses, pr.FixPasses,
			logging.FieldEdits, pr.TotalEditsApplied,
		)
	}
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "rewrite indentation in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without writing them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, checkstyle, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only check files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default: all supported)")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "follow symbolic links during discovery")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where the format supports it")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}

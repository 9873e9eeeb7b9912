// Package cli provides the Cobra command structure for htmlindent.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlindent/internal/logging"
	"github.com/yaklabco/htmlindent/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root htmlindent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "htmlindent",
		Short: "Check and fix the indentation of HTML markup",
		Long: `htmlindent checks that every line of HTML markup starts at the indentation
its nesting depth calls for, and can rewrite the leading whitespace in place.

Markup is checked in HTML-like documents (.html, .vue, .svelte, ...), in
tagged template literals inside JavaScript and TypeScript, and in fenced
code blocks inside Markdown. Fixes are applied with conflict detection,
dry-run diffs and optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("color", pretty.ColorAuto, "colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/internal/cli"
	_ "github.com/yaklabco/htmlindent/pkg/lint/rules"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the CLI with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)
	assert.Equal(t, "htmlindent", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"lint", "rules", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	for _, name := range []string{
		"fix", "dry-run", "format", "jobs", "ignore", "include", "ext",
		"follow-symlinks", "enable", "disable", "fix-rules", "no-backups",
		"strict", "no-context", "no-summary", "compact", "rule-format",
	} {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), "missing lint flag %q", name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "htmlindent")
	assert.Contains(t, stdout, "version=1.2.3")
	assert.Contains(t, stdout, "commit=abc123")
}

func TestRulesCommandText(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "HI001/indent")
	assert.Contains(t, stdout, "fixable=yes")
}

func TestRulesCommandJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "HI001", rules[0]["id"])
	assert.Equal(t, "indent", rules[0]["name"])
	assert.Equal(t, true, rules[0]["fixable"])
	assert.Contains(t, rules[0]["options"], "verbatim_elements")
}

func TestRulesCommandBadFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "rules", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

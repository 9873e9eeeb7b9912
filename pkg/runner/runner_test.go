package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/lint/rules"
	"github.com/yaklabco/htmlindent/pkg/parser/html"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

const (
	clean   = "<div>\n    <p>ok</p>\n</div>\n"
	broken  = "<div>\n<p>bad</p>\n</div>\n"
	skipped = "package main\n"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return runner.New(lint.NewPipeline(lint.NewEngine(html.New(html.Options{}), registry)))
}

func write(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRunCollectsStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{
		"a.html":   clean,
		"b.html":   broken,
		"c/d.html": broken,
		"main.js":  skipped,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = f.Path
		require.NoError(t, f.Error)
	}
	assert.True(t, slices.IsSorted(paths), "outcomes follow discovery order")

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 4, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, 2, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 2, result.Stats.DiagnosticsFixable)
	assert.Equal(t, 2, result.Stats.DiagnosticsBySeverity["error"])
	assert.Equal(t, 3, result.Stats.FilesByHost["markup"])
	assert.Equal(t, 1, result.Stats.FilesByHost["script"])
	assert.True(t, result.HasFailures())
}

func TestRunSerialMatchesParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 24 {
		name := filepath.Join("pages", string(rune('a'+i))+".html")
		if i%3 == 0 {
			files[name] = broken
		} else {
			files[name] = clean
		}
	}
	write(t, dir, files)

	run := func(jobs int) []runner.FileOutcome {
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)
		return result.Files
	}

	serial, parallel := run(1), run(8)
	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Path, parallel[i].Path)
		assert.Equal(t, serial[i].Result.Diagnostics, parallel[i].Result.Diagnostics)
	}
}

func TestRunFix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{"page.html": broken})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 1, result.Stats.DiagnosticsFixed)

	got, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<div>\n    <p>bad</p>\n</div>\n", string(got))
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{"page.html": broken})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	pr := result.Files[0].Result
	require.NotNil(t, pr.Diff)
	assert.True(t, pr.Diff.HasChanges())
	assert.False(t, pr.Written)

	got, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, broken, string(got), "dry run leaves the file alone")
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, map[string]string{"a.html": clean})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResultHelpers(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.False(t, nilResult.HasIssues())

	r := &runner.Result{Stats: runner.Stats{
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	}}
	assert.True(t, r.HasIssues())
	assert.False(t, r.HasFailures())
}

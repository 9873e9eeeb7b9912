package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/fsutil"
	"github.com/yaklabco/htmlindent/pkg/lint"
)

func newFixPipeline() *lint.Pipeline {
	reg := lint.NewRegistry()
	reg.Register(newLeadingSpaceRule())
	return lint.NewPipeline(lint.NewEngine(&stubParser{}, reg))
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPipeline_ProcessFile_LintOnly(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "  <p>")
	result, err := newFixPipeline().ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.True(t, result.HasIssues())
	assert.False(t, result.Modified)
	assert.Nil(t, result.ModifiedContent)
	assert.False(t, result.Written)
	assert.NotNil(t, result.OriginalInfo)
	assert.Equal(t, "issues found", result.Summary())
}

func TestPipeline_ProcessFile_Fix(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "  <p>")
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := newFixPipeline().ProcessFile(context.Background(), path, fixConfig(), opts)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.Equal(t, 1, result.FixPasses)
	assert.Equal(t, 1, result.TotalEditsApplied)
	assert.Equal(t, "fixed", result.Summary())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>", string(content))
}

func TestPipeline_ProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "  <p>\n")
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.DryRun = true

	result, err := newFixPipeline().ProcessFile(context.Background(), path, fixConfig(), opts)
	require.NoError(t, err)

	require.NotNil(t, result.Diff)
	assert.True(t, result.Diff.HasChanges())
	assert.False(t, result.Written)
	assert.Equal(t, "changes pending", result.Summary())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "  <p>\n", string(content), "dry run leaves the file alone")
}

func TestPipeline_ProcessFile_Backup(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "  <p>")
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := newFixPipeline().ProcessFile(context.Background(), path, fixConfig(), opts)
	require.NoError(t, err)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "fixed (backup created)", result.Summary())

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "  <p>", string(backup))
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := newFixPipeline().ProcessFile(context.Background(),
		filepath.Join(t.TempDir(), "missing.html"), config.NewConfig(), lint.DefaultPipelineOptions())
	require.ErrorIs(t, err, lint.ErrFileNotFound)
	assert.True(t, lint.IsPipelineError(err))
}

func TestPipeline_ProcessContent_MultiPass(t *testing.T) {
	t.Parallel()

	// Each pass removes first-line leading spaces; the second pass sees none.
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := newFixPipeline().ProcessContent(context.Background(), "a.html", []byte("    x"), fixConfig(), opts)
	require.NoError(t, err)
	assert.Equal(t, "x", string(result.ModifiedContent))
	assert.Equal(t, 1, result.FixPasses)
	assert.False(t, result.HasIssues())
}

func TestPipeline_ProcessContent_ParseFailure(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(&stubParser{err: os.ErrInvalid}, lint.NewRegistry()))
	_, err := pipeline.ProcessContent(context.Background(), "a.html", nil, config.NewConfig(), lint.DefaultPipelineOptions())
	require.ErrorIs(t, err, lint.ErrParseFailure)
}

func TestPipeline_ProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixPipeline().ProcessContent(ctx, "a.html", nil, config.NewConfig(), lint.DefaultPipelineOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result lint.PipelineResult
		want   string
	}{
		{name: "skipped", result: lint.PipelineResult{Skipped: true, SkipReason: "x"}, want: "skipped: x"},
		{name: "ok", result: lint.PipelineResult{FileResult: &lint.FileResult{}}, want: "ok"},
		{name: "no result", result: lint.PipelineResult{}, want: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lint.DefaultPipelineOptions(), lint.PipelineOptionsFromConfig(nil))

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true
	opts := lint.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Fix)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.Backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, opts.Backup.Mode)

	cfg.NoBackups = true
	assert.False(t, lint.BackupConfigFromConfig(cfg).Enabled)
}

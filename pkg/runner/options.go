// Package runner discovers files and lints them concurrently.
package runner

import (
	"slices"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/config"
)

// Options controls a Run.
type Options struct {
	// Paths are files or directories. Empty means WorkingDir.
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions select which files discovery returns. Entries are
	// matched case-insensitively; the leading dot is optional.
	// Empty means DefaultExtensions.
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching files.
	// ExcludeGlobs skip files and whole directories. Both are matched
	// against the slash-separated path relative to WorkingDir and
	// against the base name.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds the worker pool. Zero or less means runtime.NumCPU.
	Jobs int

	Config *config.Config
}

// DefaultExtensions are the extensions of markup documents, script
// sources that may hold template literals, and Markdown files.
func DefaultExtensions() []string {
	return []string{
		".html", ".htm", ".xhtml", ".vue", ".svelte", ".hbs",
		".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx",
		".md", ".markdown",
	}
}

// NormalizeExtensions lower-cases exts, adds missing leading dots and
// drops blanks and duplicates. Order is kept.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

func (o Options) effectiveExtensions() []string {
	if exts := NormalizeExtensions(o.Extensions); len(exts) > 0 {
		return exts
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ErrBadPattern is returned when an include or exclude glob does not compile.
var ErrBadPattern = errors.New("invalid glob pattern")

// Discover finds files matching opts under the given working directory.
// It returns a sorted, de-duplicated list of absolute file paths.
//
// Files named explicitly in opts.Paths are kept even when their extension
// is not in opts.Extensions; the parser decides whether they carry markup.
// Exclude globs still apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	f, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !f.excluded(abs) {
				add(abs)
			}
			continue
		}

		w := &walker{ctx: ctx, filter: f, follow: opts.FollowSymlinks, visited: make(map[string]bool)}
		found, err := w.walk(abs)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// filter holds the compiled selection criteria of one run.
type filter struct {
	workDir    string
	extensions map[string]bool
	include    []glob.Glob
	exclude    []glob.Glob
}

func newFilter(workDir string, opts Options) (*filter, error) {
	f := &filter{workDir: workDir, extensions: make(map[string]bool)}
	for _, ext := range opts.effectiveExtensions() {
		f.extensions[ext] = true
	}

	var err error
	if f.include, err = compileGlobs(opts.IncludeGlobs); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(opts.ExcludeGlobs); err != nil {
		return nil, err
	}
	return f, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// rel returns path relative to the working directory with forward slashes.
func (f *filter) rel(path string) string {
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// excluded reports whether path or its base name matches an exclude glob.
// A directory pattern such as "vendor/**" also excludes "vendor" itself.
func (f *filter) excluded(path string) bool {
	return anyMatch(f.exclude, f.rel(path))
}

// accepts reports whether a discovered file should be linted.
func (f *filter) accepts(path string) bool {
	if !f.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	if f.excluded(path) {
		return false
	}
	return len(f.include) == 0 || anyMatch(f.include, f.rel(path))
}

func anyMatch(globs []glob.Glob, rel string) bool {
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) || g.Match(rel+"/") {
			return true
		}
	}
	return false
}

// walker collects matching files below a root directory.
type walker struct {
	ctx     context.Context
	filter  *filter
	follow  bool
	visited map[string]bool
	files   []string
}

func (w *walker) walk(root string) ([]string, error) {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		w.visited[real] = true
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || w.filter.excluded(path) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			if !hidden {
				return w.symlink(path)
			}
		case !hidden && w.filter.accepts(path):
			w.files = append(w.files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return w.files, nil
}

// symlink handles a link found during the walk. Broken links are skipped;
// directory links are followed only when enabled and never twice.
func (w *walker) symlink(path string) error {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken links are skipped
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if !info.IsDir() {
		if w.filter.accepts(path) {
			w.files = append(w.files, path)
		}
		return nil
	}

	if !w.follow || w.visited[real] || w.filter.excluded(path) {
		return nil
	}

	sub := &walker{ctx: w.ctx, filter: w.filter, follow: w.follow, visited: w.visited}
	found, err := sub.walk(real)
	if err != nil {
		return err
	}
	w.files = append(w.files, found...)
	return nil
}

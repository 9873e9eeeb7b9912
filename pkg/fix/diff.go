package fix

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// Prefix returns the unified diff marker for the line kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	diff := &Diff{Path: path, Original: original, Modified: modified}

	matcher := difflib.NewMatcher(origLines, modLines)
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		first, last := group[0], group[len(group)-1]
		hunk := DiffHunk{
			OriginalStart: hunkStart(first.I1, last.I2-first.I1),
			OriginalCount: last.I2 - first.I1,
			ModifiedStart: hunkStart(first.J1, last.J2-first.J1),
			ModifiedCount: last.J2 - first.J1,
		}

		for _, op := range group {
			if op.Tag == 'e' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineContext, origLines[op.I1:op.I2])
				continue
			}
			if op.Tag == 'r' || op.Tag == 'd' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineRemove, origLines[op.I1:op.I2])
				diff.Deletions += op.I2 - op.I1
			}
			if op.Tag == 'r' || op.Tag == 'i' {
				hunk.Lines = appendLines(hunk.Lines, DiffLineAdd, modLines[op.J1:op.J2])
				diff.Additions += op.J2 - op.J1
			}
		}

		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}

	return diff
}

// hunkStart converts a 0-based line index to the 1-based unified header
// value. Empty ranges point at the line before the change.
func hunkStart(index, count int) int {
	if count == 0 {
		return index
	}
	return index + 1
}

func appendLines(dst []DiffLine, kind DiffLineKind, lines []string) []DiffLine {
	for _, line := range lines {
		dst = append(dst, DiffLine{Kind: kind, Content: line})
	}
	return dst
}

// DiffPart identifies a rendered line of a unified diff.
type DiffPart int

const (
	DiffPartGitHeader DiffPart = iota
	DiffPartFromFile
	DiffPartToFile
	DiffPartHunkHeader
	DiffPartContext
	DiffPartAdd
	DiffPartRemove
)

func (k DiffLineKind) part() DiffPart {
	switch k {
	case DiffLineAdd:
		return DiffPartAdd
	case DiffLineRemove:
		return DiffPartRemove
	default:
		return DiffPartContext
	}
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	return gitHeader(strings.TrimPrefix(d.Path, "/"))
}

func gitHeader(path string) string {
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// WriteUnified writes the hunks as a git-style unified diff labelled with
// path. Each line goes through paint without its newline; a nil paint
// writes lines unchanged.
func (d *Diff) WriteUnified(w io.Writer, path string, paint func(DiffPart, string) string) error {
	if !d.HasChanges() {
		return nil
	}
	if paint == nil {
		paint = func(_ DiffPart, line string) string { return line }
	}

	path = strings.TrimPrefix(path, "/")
	bw := bufio.NewWriter(w)
	emit := func(part DiffPart, line string) {
		bw.WriteString(paint(part, line))
		bw.WriteByte('\n')
	}

	emit(DiffPartGitHeader, gitHeader(path))
	emit(DiffPartFromFile, "--- a/"+path)
	emit(DiffPartToFile, "+++ b/"+path)
	for _, hunk := range d.Hunks {
		emit(DiffPartHunkHeader, hunk.Header())
		for _, line := range hunk.Lines {
			emit(line.Kind.part(), line.Kind.Prefix()+line.Content)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}

// String returns the diff in unified diff format without the git header.
func (d *Diff) String() string {
	full := d.FullString()
	if full == "" {
		return ""
	}
	_, rest, _ := strings.Cut(full, "\n")
	return rest
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	var sb strings.Builder
	if d != nil {
		_ = d.WriteUnified(&sb, d.Path, nil)
	}
	return sb.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

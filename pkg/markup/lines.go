package markup

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// PositionAt converts a byte offset to a 1-based line and 0-based byte column.
// Offsets past the end of the content resolve to the end of the last line.
// Returns the zero Position if the offset is negative or the document is empty.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 || len(d.Lines) == 0 {
		return Position{}
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return Position{Line: len(d.Lines), Column: offset - last.StartOffset}
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	info := d.Lines[lineIdx]
	if offset < info.StartOffset {
		return Position{}
	}

	return Position{Line: lineIdx + 1, Column: offset - info.StartOffset}
}

// LocationOf returns the start/end location of a byte range.
func (d *Document) LocationOf(r Range) Location {
	return Location{Start: d.PositionAt(r.Start), End: d.PositionAt(r.End)}
}

// LineStart returns the byte offset where a 1-based line begins.
// Returns (0, false) if the line is out of range.
func (d *Document) LineStart(line int) (int, bool) {
	if line < 1 || line > len(d.Lines) {
		return 0, false
	}
	return d.Lines[line-1].StartOffset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// Package markup provides the HTML tree representation checked by htmlindent.
// It defines a lossless view of a source file including:
// - Document: the raw content, line index and tree root
// - Node: a typed tree element with absolute byte ranges and line/column locations
// - TemplatePart: sub-ranges of text whose content is not statically known
package markup

// Document is a lossless view of a file at a specific time.
// For host files (scripts, Markdown) Root is nil and markup is found in
// embedded fragments that are parsed against the same Document.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the tree root (KindDocument), or nil for host files.
	Root *Node

	// Holes are the interpolation ranges found in the whole document.
	Holes []Range

	// Host describes how the file carries markup.
	Host Host
}

// Host identifies how a file carries markup.
type Host uint8

// Host values.
const (
	// HostUnknown files are not checked.
	HostUnknown Host = iota
	// HostMarkup files are HTML-like documents parsed as a whole.
	HostMarkup
	// HostScript files carry markup inside template literals.
	HostScript
	// HostMarkdown files carry markup inside fenced code blocks.
	HostMarkdown
)

func (h Host) String() string {
	switch h {
	case HostMarkup:
		return "markup"
	case HostScript:
		return "script"
	case HostMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewDocument creates a Document from content.
// It builds the line index but does not parse (that requires a Parser).
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Slice returns the source bytes covered by r, clamped to the content.
func (d *Document) Slice(r Range) []byte {
	start := max(r.Start, 0)
	end := min(r.End, len(d.Content))
	if start >= end {
		return nil
	}
	return d.Content[start:end]
}

package markup

// Range represents a half-open byte range [Start, End) in the source content.
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps reports whether two half-open ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Position is a line/column pair. Line is 1-based, Column is a 0-based byte column.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if the position refers to a real line.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column >= 0
}

// Location is the start/end position of a node.
type Location struct {
	Start Position
	End   Position
}

// IsSingleLine returns true if start and end are on the same line.
func (l Location) IsSingleLine() bool {
	return l.Start.Line == l.End.Line
}

package indent

import (
	"strings"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// lineRecord is one physical line of a multi-line text or comment value.
type lineRecord struct {
	Range markup.Range
	Loc   markup.Position
	Value string

	// Skip marks lines that touch an interpolation hole.
	Skip bool
}

// blank reports whether the line holds only whitespace.
func (r lineRecord) blank() bool {
	return strings.TrimSpace(r.Value) == ""
}

// splitLines cuts the value of n into one record per "\n"-separated
// segment. The first record keeps the node's column; later records start
// at column 0.
func splitLines(n *markup.Node, holes []markup.Range) []lineRecord {
	segments := strings.Split(n.Value, "\n")
	records := make([]lineRecord, 0, len(segments))

	running := n.Range.Start
	for i, seg := range segments {
		rec := lineRecord{
			Range: markup.Range{Start: running, End: running + len(seg)},
			Loc:   markup.Position{Line: n.Loc.Start.Line + i},
			Value: seg,
		}
		if i == 0 {
			rec.Loc.Column = n.Loc.Start.Column
		}
		rec.Skip = touchesHole(rec.Range, holes)

		records = append(records, rec)
		running += len(seg) + 1
	}

	return records
}

// touchesHole reports whether r overlaps a hole or ends where one begins.
func touchesHole(r markup.Range, holes []markup.Range) bool {
	for _, hole := range holes {
		if r.Start < hole.End && hole.Start < r.End {
			return true
		}
		if r.End == hole.Start {
			return true
		}
	}
	return false
}

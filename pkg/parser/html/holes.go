package html

import (
	"bytes"
	"sort"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// Delimiter is an interpolation open/close pair such as {{ and }}.
type Delimiter struct {
	Open  string
	Close string
}

// DefaultDelimiters are the interpolation markers recognised when none are configured.
var DefaultDelimiters = []Delimiter{{Open: "{{", Close: "}}"}}

// DelimitersFromConfig converts configured delimiter pairs. A nil slice
// stays nil so the parser falls back to DefaultDelimiters.
func DelimitersFromConfig(pairs []config.Delimiter) []Delimiter {
	if pairs == nil {
		return nil
	}
	delims := make([]Delimiter, len(pairs))
	for i, p := range pairs {
		delims[i] = Delimiter{Open: p.Open, Close: p.Close}
	}
	return delims
}

// FindHoles returns the interpolation ranges in content, in source order.
// An opener without a matching closer does not produce a hole.
func FindHoles(content []byte, delims []Delimiter) []markup.Range {
	var holes []markup.Range

	for pos := 0; pos < len(content); {
		matched := false

		for _, d := range delims {
			if d.Open == "" || d.Close == "" || !bytes.HasPrefix(content[pos:], []byte(d.Open)) {
				continue
			}
			rel := bytes.Index(content[pos+len(d.Open):], []byte(d.Close))
			if rel < 0 {
				continue
			}
			end := pos + len(d.Open) + rel + len(d.Close)
			holes = append(holes, markup.Range{Start: pos, End: end})
			pos = end
			matched = true
			break
		}

		if !matched {
			pos++
		}
	}

	return holes
}

// maskHoles returns a copy of content[r.Start:r.End] with every hole byte
// replaced by '_'. Line breaks are kept so offsets and line numbers agree
// with the original source.
func maskHoles(content []byte, r markup.Range, holes []markup.Range) []byte {
	out := make([]byte, r.Len())
	copy(out, content[r.Start:r.End])

	for _, hole := range holes {
		if !hole.Overlaps(r) {
			continue
		}
		start := max(hole.Start, r.Start) - r.Start
		end := min(hole.End, r.End) - r.Start
		for i := start; i < end; i++ {
			if out[i] != '\n' && out[i] != '\r' {
				out[i] = '_'
			}
		}
	}

	return out
}

// partsOf splits r into plain and template parts. It returns nil when no
// hole touches r.
func partsOf(r markup.Range, holes []markup.Range) []markup.TemplatePart {
	var overlapping []markup.Range
	for _, hole := range holes {
		if hole.Overlaps(r) {
			overlapping = append(overlapping, markup.Range{
				Start: max(hole.Start, r.Start),
				End:   min(hole.End, r.End),
			})
		}
	}
	if len(overlapping) == 0 {
		return nil
	}

	sort.Slice(overlapping, func(i, j int) bool {
		return overlapping[i].Start < overlapping[j].Start
	})

	var parts []markup.TemplatePart
	cursor := r.Start
	for _, hole := range overlapping {
		if hole.Start > cursor {
			parts = append(parts, markup.TemplatePart{Range: markup.Range{Start: cursor, End: hole.Start}})
		}
		parts = append(parts, markup.TemplatePart{Range: hole, IsTemplate: true})
		cursor = max(cursor, hole.End)
	}
	if cursor < r.End {
		parts = append(parts, markup.TemplatePart{Range: markup.Range{Start: cursor, End: r.End}})
	}

	return parts
}

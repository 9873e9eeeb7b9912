package indent

import (
	"fmt"

	"github.com/yaklabco/htmlindent/pkg/embedded"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
	"github.com/yaklabco/htmlindent/pkg/parser/html"
)

// checkLiterals checks every embedded literal with its own checker.
func checkLiterals(rc *lint.RuleContext, opts options, lits []embedded.Literal, holesOf func(embedded.Literal) []markup.Range) ([]mismatch, error) {
	doc := rc.File
	cache := rc.Embedded
	if cache == nil {
		cache = embedded.NewCache()
	}

	var found []mismatch
	for _, lit := range lits {
		if rc.Cancelled() {
			return found, fmt.Errorf("indent: %w", rc.Ctx.Err())
		}

		base, ok := baseLevel(doc, lit, opts)
		if !ok {
			continue
		}

		holes := holesOf(lit)
		root, err := cache.Fragment(lit.Range.Start, func() (*markup.Node, error) {
			return html.ParseFragment(doc, lit.Range, holes)
		})
		if err != nil {
			return found, fmt.Errorf("embedded markup at line %d: %w", doc.PositionAt(lit.Open).Line, err)
		}

		found = append(found, newChecker(doc, opts, base, holes).run(root)...)
	}
	return found, nil
}

// baseLevel is the level added to every node of an embedded fragment.
// A template literal sits one level deeper than the line it opens on. A
// fence body sits at the fence's own level, and fences whose indent is not
// a whole number of units are skipped.
func baseLevel(doc *markup.Document, lit embedded.Literal, opts options) (int, bool) {
	pos := doc.PositionAt(lit.Open)
	prefix := doc.LineContent(pos.Line)

	unit := byte(' ')
	if opts.tabs {
		unit = '\t'
	}
	lead := 0
	for lead < len(prefix) && prefix[lead] == unit {
		lead++
	}

	switch lit.Source {
	case embedded.SourceFence:
		if lead != pos.Column {
			return 0, false
		}
		switch {
		case opts.tabs:
			return lead, true
		case lead == 0:
			return 0, true
		case opts.size == 0 || lead%opts.size != 0:
			return 0, false
		default:
			return lead / opts.size, true
		}
	default:
		if opts.tabs {
			return lead + 1, true
		}
		if opts.size == 0 {
			return 1, true
		}
		return lead/opts.size + 1, true
	}
}

// literalHoles returns doc holes that fall inside r.
func literalHoles(doc *markup.Document, r markup.Range) []markup.Range {
	var out []markup.Range
	for _, hole := range doc.Holes {
		if hole.Overlaps(r) || hole.Start == r.End {
			out = append(out, hole)
		}
	}
	return out
}

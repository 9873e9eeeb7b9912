package indent

import (
	"fmt"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/fix"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// mismatch is one token whose leading whitespace is wrong.
type mismatch struct {
	Loc      markup.Location
	Edit     fix.TextEdit
	Expected string
	Actual   string
}

// checker walks one markup tree. A checker is used for a single tree:
// the whole document, or one embedded fragment.
type checker struct {
	doc   *markup.Document
	opts  options
	unit  string
	holes []markup.Range

	level    *level
	verbatim *verbatim
	parents  map[*markup.Node]*markup.Node

	found []mismatch
}

func newChecker(doc *markup.Document, opts options, base int, holes []markup.Range) *checker {
	c := &checker{
		doc:      doc,
		opts:     opts,
		unit:     opts.unit(),
		holes:    holes,
		verbatim: newVerbatim(opts.verbatimSet()),
	}
	c.level = newLevel(c.incrementOf)
	c.level.setBase(base)
	return c
}

// run checks the tree rooted at root and returns the mismatches in
// document order.
func (c *checker) run(root *markup.Node) []mismatch {
	if root != nil {
		c.parents = markup.Parents(root)
		c.walk(root)
	}
	return c.found
}

// incrementOf is the depth added when entering n.
func (c *checker) incrementOf(n *markup.Node) int {
	if n.Kind == markup.KindAttribute {
		return c.opts.attribute
	}
	if p := c.parents[n]; p != nil && p.IsElement() {
		if inc, ok := c.opts.children[p.Name]; ok {
			return inc
		}
	}
	return 1
}

func (c *checker) walk(n *markup.Node) {
	switch n.Kind {
	case markup.KindDocument:
		for _, child := range n.Children {
			c.walk(child)
		}

	case markup.KindDoctype:
		c.level.indent(n)
		c.checkToken(n)
		c.level.dedent(n)

	case markup.KindElement, markup.KindScript, markup.KindStyle:
		c.verbatim.enter(n)
		c.level.indent(n)

		c.checkToken(n.OpenStart)
		for _, attr := range n.Attributes {
			c.walk(attr)
		}
		c.checkToken(n.OpenEnd)
		for _, child := range n.Children {
			c.walk(child)
		}
		c.checkToken(n.Close)

		c.level.dedent(n)
		c.verbatim.exit(n)

	case markup.KindAttribute:
		c.level.indent(n)
		c.checkToken(n.Key)
		c.checkToken(n.Val)
		c.level.dedent(n)

	case markup.KindText:
		c.level.indent(n)
		c.checkLines(n)
		c.level.dedent(n)

	case markup.KindComment:
		c.level.indent(n)
		c.checkToken(n.Open)
		if n.Content != nil {
			c.level.indent(n.Content)
			c.checkLines(n.Content)
			c.level.dedent(n.Content)
		}
		c.checkToken(n.Close)
		c.level.dedent(n)

	case markup.KindOpenTagStart, markup.KindOpenTagEnd, markup.KindCloseTag,
		markup.KindAttributeKey, markup.KindAttributeValue,
		markup.KindCommentOpen, markup.KindCommentContent, markup.KindCommentClose:
		c.checkToken(n)
	}
}

// checkToken compares the whitespace before a single-line token.
func (c *checker) checkToken(tok *markup.Node) {
	if tok == nil || c.verbatim.suppressed() {
		return
	}

	line, ok := c.doc.LineStart(tok.Loc.Start.Line)
	if !ok || line > tok.Range.Start {
		return
	}

	end := markup.Position{Line: tok.Loc.Start.Line, Column: tok.Loc.Start.Column + firstLineLen(tok.Value)}
	c.compare(line, tok.Range.Start, markup.Location{Start: tok.Loc.Start, End: end})
}

// checkLines compares the whitespace of every non-blank line of a text or
// comment value.
func (c *checker) checkLines(n *markup.Node) {
	if c.verbatim.suppressed() {
		return
	}

	holes := append(n.Holes(), c.holes...)
	for _, rec := range splitLines(n, holes) {
		if rec.Skip || rec.blank() {
			continue
		}

		lead := len(rec.Value) - len(strings.TrimLeft(rec.Value, " \t"))
		line := rec.Range.Start - rec.Loc.Column
		token := rec.Range.Start + lead

		loc := markup.Location{
			Start: markup.Position{Line: rec.Loc.Line, Column: rec.Loc.Column + lead},
			End:   markup.Position{Line: rec.Loc.Line, Column: rec.Loc.Column + len(strings.TrimRight(rec.Value, " \t\r"))},
		}
		c.compare(line, token, loc)
	}
}

// compare checks content[line:token] against the current level.
func (c *checker) compare(line, token int, loc markup.Location) {
	actual := string(c.doc.Content[line:token])
	if strings.TrimLeft(actual, " \t") != "" {
		return
	}

	expected := c.level.render(c.unit)
	if actual == expected {
		return
	}

	c.found = append(c.found, mismatch{
		Loc:      loc,
		Edit:     fix.TextEdit{StartOffset: token - len(actual), EndOffset: token, NewText: expected},
		Expected: c.describeExpected(),
		Actual:   describeActual(actual),
	})
}

func (c *checker) describeExpected() string {
	n := max(c.level.value(), 0)
	if c.opts.tabs {
		return plural(n, "tab")
	}
	return plural(n*c.opts.size, "space")
}

func describeActual(ws string) string {
	tabs := strings.Count(ws, "\t")
	spaces := strings.Count(ws, " ")

	switch {
	case tabs == 0 && spaces == 0:
		return "no indent"
	case tabs == 0:
		return plural(spaces, "space")
	case spaces == 0:
		return plural(tabs, "tab")
	default:
		return plural(tabs, "tab") + " and " + plural(spaces, "space")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func firstLineLen(s string) int {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return i
	}
	return len(s)
}

// message renders the wrongIndent template.
func message(m mismatch) string {
	return fmt.Sprintf("Expected indentation of %s but found %s", m.Expected, m.Actual)
}

package indent

import (
	"strings"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// level is the nesting depth of the node being checked. depth starts at
// -1 so the first indent brings a top-level node to 0. base is only added
// when rendering.
type level struct {
	depth int
	base  int
	inc   func(*markup.Node) int
}

func newLevel(inc func(*markup.Node) int) *level {
	return &level{depth: -1, inc: inc}
}

func (l *level) setBase(base int) {
	l.base = base
}

func (l *level) value() int {
	return l.depth + l.base
}

func (l *level) indent(n *markup.Node) {
	l.depth += l.inc(n)
}

func (l *level) dedent(n *markup.Node) {
	l.depth -= l.inc(n)
}

func (l *level) render(unit string) string {
	return strings.Repeat(unit, max(l.value(), 0))
}

package indent

import "github.com/yaklabco/htmlindent/pkg/markup"

// verbatim counts the open opaque elements on the current path.
type verbatim struct {
	names map[string]bool
	count int
}

func newVerbatim(names map[string]bool) *verbatim {
	return &verbatim{names: names}
}

func (v *verbatim) matches(n *markup.Node) bool {
	return n.IsElement() && v.names[n.Name]
}

func (v *verbatim) enter(n *markup.Node) {
	if v.matches(n) {
		v.count++
	}
}

func (v *verbatim) exit(n *markup.Node) {
	if v.matches(n) {
		v.count--
	}
}

func (v *verbatim) suppressed() bool {
	return v.count > 0
}

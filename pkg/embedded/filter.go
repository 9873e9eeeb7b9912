package embedded

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Defaults for the literal predicates.
var (
	DefaultTags     = []string{"html"}
	DefaultComments = []string{"html"}
)

// Candidate describes a template literal being considered.
type Candidate struct {
	Tag    string
	Marker string
	Path   string
	Line   int
}

func (c Candidate) env() map[string]any {
	return map[string]any{
		"tag":    c.Tag,
		"marker": c.Marker,
		"path":   c.Path,
		"line":   c.Line,
	}
}

// Matcher decides which template literals hold markup.
//
// A literal qualifies when its tag matches one of the tag names, or when
// the comment before it matches one of the comment patterns. A tag matches
// on the full member chain or its last segment, so "html" accepts both
// html`...` and lit.html`...`. When a filter expression is set, it must also
// evaluate to true.
type Matcher struct {
	tags     []string
	comments []*regexp.Regexp
	filter   *vm.Program
}

// NewMatcher compiles tag names, comment patterns and an optional
// expr-lang filter over tag, marker, path and line.
func NewMatcher(tags, comments []string, filter string) (*Matcher, error) {
	m := &Matcher{tags: slices.Clone(tags)}

	for _, pattern := range comments {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("template comment %q: %w", pattern, err)
		}
		m.comments = append(m.comments, re)
	}

	if strings.TrimSpace(filter) != "" {
		program, err := expr.Compile(filter, expr.Env(Candidate{}.env()), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("template filter: %w", err)
		}
		m.filter = program
	}

	return m, nil
}

// DefaultMatcher matches html`...` and /* html */ `...`.
func DefaultMatcher() *Matcher {
	m, err := NewMatcher(DefaultTags, DefaultComments, "")
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the candidate qualifies.
func (m *Matcher) Match(c Candidate) (bool, error) {
	if !m.matchTag(c.Tag) && !m.matchMarker(c.Marker) {
		return false, nil
	}
	if m.filter == nil {
		return true, nil
	}

	out, err := expr.Run(m.filter, c.env())
	if err != nil {
		return false, fmt.Errorf("template filter: %w", err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

func (m *Matcher) matchTag(tag string) bool {
	if tag == "" {
		return false
	}
	last := tag
	if i := strings.LastIndexByte(tag, '.'); i >= 0 {
		last = tag[i+1:]
	}
	return slices.Contains(m.tags, tag) || slices.Contains(m.tags, last)
}

func (m *Matcher) matchMarker(marker string) bool {
	if marker == "" {
		return false
	}
	for _, re := range m.comments {
		if re.MatchString(marker) {
			return true
		}
	}
	return false
}

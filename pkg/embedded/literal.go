// Package embedded finds markup inside other host languages: tagged
// template literals in JavaScript and TypeScript, and fenced code blocks
// in Markdown. Located literals carry absolute offsets into the host file
// so the markup can be parsed and checked in place.
package embedded

import (
	"sync"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// Source tells which kind of host construct a literal came from.
type Source uint8

const (
	// SourceTemplate is a JavaScript template literal.
	SourceTemplate Source = iota
	// SourceFence is a Markdown fenced code block.
	SourceFence
)

func (s Source) String() string {
	if s == SourceFence {
		return "fence"
	}
	return "template"
}

// Literal is one piece of embedded markup.
type Literal struct {
	Source Source

	// Range covers the markup itself: the bytes between the backticks,
	// or the fence body from the start of its first line.
	Range markup.Range

	// Open is the offset of the opening delimiter (the backtick or the
	// first fence character).
	Open int

	// Holes are the ${...} substitutions of a template literal.
	Holes []markup.Range

	// Tag is the tag expression before the backtick ("html", "lit.html"),
	// or the fence info language.
	Tag string

	// Marker is the text of the comment right before the literal, trimmed.
	Marker string
}

// Cache memoizes fragment parses for one document, keyed by the start
// offset of the literal. It is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	nodes map[int]*markup.Node
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{nodes: make(map[int]*markup.Node)}
}

// Load returns the fragment cached for start.
func (c *Cache) Load(start int) (*markup.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[start]
	return n, ok
}

// Store caches the fragment parsed for start.
func (c *Cache) Store(start int, n *markup.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[start] = n
}

// Fragment returns the cached fragment for start, calling parse on a miss.
// Failed parses are not cached.
func (c *Cache) Fragment(start int, parse func() (*markup.Node, error)) (*markup.Node, error) {
	if n, ok := c.Load(start); ok {
		return n, nil
	}
	n, err := parse()
	if err != nil {
		return nil, err
	}
	c.Store(start, n)
	return n, nil
}

// Len returns the number of cached fragments.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

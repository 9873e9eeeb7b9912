// Package html provides a markup Parser built on the golang.org/x/net/html tokenizer.
//
// The parser does not apply the HTML5 tree construction algorithm. It keeps
// the tree as close to the source as possible: every element the author
// wrote becomes a node and void elements never take children. An end tag
// closes the nearest open element with the same name, and stray end tags are
// dropped. Elements with optional end tags (li, p, option, tr, td and so
// on) are closed by a start tag that implies their end.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/htmlindent/pkg/langdetect"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// ErrTokenize is returned when the tokenizer fails before reaching EOF.
var ErrTokenize = errors.New("tokenize failed")

// Options configures a Parser.
type Options struct {
	// Delimiters lists the interpolation markers of the template dialect.
	// Nil selects DefaultDelimiters; an empty non-nil slice disables holes.
	Delimiters []Delimiter
}

// Parser implements lint.Parser for HTML-like documents.
// It is safe for concurrent use.
type Parser struct {
	delims []Delimiter
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	delims := opts.Delimiters
	if delims == nil {
		delims = DefaultDelimiters
	}
	return &Parser{delims: delims}
}

// Parse converts raw bytes into a Document.
//
// Markup files get a full tree. Script and Markdown files are returned with
// a nil Root; their markup is parsed per fragment with ParseFragment.
// Interpolation holes are located for markup and Markdown hosts.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*markup.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := markup.NewDocument(path, bytes.Clone(content))
	doc.Host = langdetect.Classify(path, doc.Content)
	switch doc.Host {
	case markup.HostMarkup:
	case markup.HostMarkdown:
		doc.Holes = FindHoles(doc.Content, p.delims)
		return doc, nil
	default:
		return doc, nil
	}

	doc.Holes = FindHoles(doc.Content, p.delims)

	root, err := ParseFragment(doc, markup.Range{Start: 0, End: len(doc.Content)}, doc.Holes)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Root = root

	return doc, nil
}

// ParseFragment parses doc.Content[r.Start:r.End] as markup. Node ranges and
// locations are absolute within doc. Bytes inside holes are treated as opaque
// text and reported through TemplatePart entries on text and comment nodes.
func ParseFragment(doc *markup.Document, r markup.Range, holes []markup.Range) (*markup.Node, error) {
	r.Start = max(r.Start, 0)
	r.End = min(r.End, len(doc.Content))
	if r.End < r.Start {
		r.End = r.Start
	}

	b := &builder{
		doc:    doc,
		masked: maskHoles(doc.Content, r, holes),
		base:   r.Start,
		holes:  holes,
		root:   &markup.Node{Kind: markup.KindDocument, Range: r, Loc: doc.LocationOf(r)},
	}

	z := html.NewTokenizer(bytes.NewReader(b.masked))
	offset := r.Start

	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())
		end := offset

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %w", ErrTokenize, err)
			}
			b.finish(end)
			return b.root, nil
		case html.TextToken:
			b.text(start, end)
		case html.StartTagToken:
			b.startTag(start, end, false)
		case html.SelfClosingTagToken:
			b.startTag(start, end, true)
		case html.EndTagToken:
			b.endTag(start, end)
		case html.CommentToken:
			b.comment(start, end)
		case html.DoctypeToken:
			b.leaf(markup.KindDoctype, start, end)
		}
	}
}

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

type builder struct {
	doc    *markup.Document
	masked []byte
	base   int
	holes  []markup.Range
	root   *markup.Node
	stack  []*markup.Node
	texts  []*markup.Node
}

func (b *builder) top() *markup.Node {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1]
	}
	return b.root
}

func (b *builder) raw(start, end int) []byte {
	return b.masked[start-b.base : end-b.base]
}

func (b *builder) node(kind markup.NodeKind, start, end int) *markup.Node {
	r := markup.Range{Start: start, End: end}
	return &markup.Node{Kind: kind, Range: r, Loc: b.doc.LocationOf(r)}
}

func (b *builder) leaf(kind markup.NodeKind, start, end int) {
	n := b.node(kind, start, end)
	n.Value = string(b.doc.Content[start:end])
	b.appendChild(n)
}

func (b *builder) appendChild(n *markup.Node) {
	parent := b.top()
	parent.Children = append(parent.Children, n)
}

func (b *builder) text(start, end int) {
	parent := b.top()

	if parent.Kind == markup.KindScript || parent.Kind == markup.KindStyle {
		if parent.Body == nil {
			parent.Body = b.node(markup.KindText, start, end)
			b.texts = append(b.texts, parent.Body)
		} else {
			parent.Body.Range.End = end
			parent.Body.Loc.End = b.doc.PositionAt(end)
		}
		return
	}

	if n := len(parent.Children); n > 0 {
		last := parent.Children[n-1]
		if last.Kind == markup.KindText && last.Range.End == start {
			last.Range.End = end
			last.Loc.End = b.doc.PositionAt(end)
			return
		}
	}

	n := b.node(markup.KindText, start, end)
	b.texts = append(b.texts, n)
	b.appendChild(n)
}

func (b *builder) startTag(start, end int, selfClosing bool) {
	raw := b.raw(start, end)
	span := scanStartTag(raw)
	name := strings.ToLower(string(raw[1:span.nameEnd]))

	kind := markup.KindElement
	switch name {
	case "script":
		kind = markup.KindScript
	case "style":
		kind = markup.KindStyle
	}

	el := b.node(kind, start, end)
	el.Name = name
	el.SelfClosing = selfClosing
	el.Void = voidElements[name]

	el.OpenStart = b.node(markup.KindOpenTagStart, start, start+span.nameEnd)
	el.OpenStart.Value = string(b.doc.Content[start : start+span.nameEnd])

	for _, a := range span.attrs {
		el.Attributes = append(el.Attributes, b.attribute(start, a))
	}

	if span.endStart < len(raw) {
		el.OpenEnd = b.node(markup.KindOpenTagEnd, start+span.endStart, end)
		el.OpenEnd.Value = string(b.doc.Content[start+span.endStart : end])
	}

	b.closeImplied(name, start)
	b.appendChild(el)
	if !selfClosing && !el.Void {
		b.stack = append(b.stack, el)
	}
}

func (b *builder) attribute(tagStart int, span attrSpan) *markup.Node {
	keyStart, keyEnd := tagStart+span.keyStart, tagStart+span.keyEnd

	attr := b.node(markup.KindAttribute, keyStart, keyEnd)
	attr.Name = strings.ToLower(string(b.doc.Content[keyStart:keyEnd]))
	attr.Key = b.node(markup.KindAttributeKey, keyStart, keyEnd)
	attr.Key.Value = string(b.doc.Content[keyStart:keyEnd])

	if span.hasValue {
		valStart, valEnd := tagStart+span.valStart, tagStart+span.valEnd
		attr.Val = b.node(markup.KindAttributeValue, valStart, valEnd)
		attr.Val.Value = string(b.doc.Content[valStart:valEnd])
		attr.Range.End = valEnd
		attr.Loc.End = b.doc.PositionAt(valEnd)
	}

	return attr
}

func (b *builder) endTag(start, end int) {
	raw := b.raw(start, end)
	name := strings.ToLower(strings.TrimRight(string(bytes.TrimPrefix(raw, []byte("</"))), "> \t\r\n\f"))
	if i := strings.IndexAny(name, " \t\r\n\f"); i >= 0 {
		name = name[:i]
	}

	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if el.Name != name {
			continue
		}

		// Elements opened after the match are left unclosed.
		for _, open := range b.stack[i+1:] {
			b.extend(open, start)
		}

		el.Close = b.node(markup.KindCloseTag, start, end)
		el.Close.Value = string(b.doc.Content[start:end])
		b.extend(el, end)
		b.stack = b.stack[:i]
		return
	}
}

func (b *builder) comment(start, end int) {
	raw := b.raw(start, end)

	openLen := 2
	if bytes.HasPrefix(raw, []byte("<!--")) {
		openLen = 4
	}

	closeLen := 0
	switch {
	case bytes.HasSuffix(raw, []byte("--!>")):
		closeLen = 4
	case bytes.HasSuffix(raw, []byte("-->")):
		closeLen = 3
	case bytes.HasSuffix(raw, []byte(">")):
		closeLen = 1
	}
	if len(raw)-closeLen < openLen {
		closeLen = max(len(raw)-openLen, 0)
	}

	c := b.node(markup.KindComment, start, end)
	c.Open = b.node(markup.KindCommentOpen, start, start+openLen)
	c.Open.Value = string(b.doc.Content[start : start+openLen])

	contentEnd := end - closeLen
	c.Content = b.node(markup.KindCommentContent, start+openLen, contentEnd)
	b.texts = append(b.texts, c.Content)

	if closeLen > 0 {
		c.Close = b.node(markup.KindCommentClose, contentEnd, end)
		c.Close.Value = string(b.doc.Content[contentEnd:end])
	}

	b.appendChild(c)
}

func (b *builder) extend(n *markup.Node, end int) {
	n.Range.End = end
	n.Loc.End = b.doc.PositionAt(end)
}

// finish closes the document at EOF and fills text values and parts.
func (b *builder) finish(end int) {
	for _, open := range b.stack {
		b.extend(open, end)
	}
	b.stack = nil

	for _, n := range b.texts {
		n.Value = string(b.doc.Content[n.Range.Start:n.Range.End])
		n.Parts = partsOf(n.Range, b.holes)
	}
}

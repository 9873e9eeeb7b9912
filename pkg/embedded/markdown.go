package embedded

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/htmlindent/pkg/langdetect"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

// DefaultMarkdownLanguages are the fence info languages checked by default.
var DefaultMarkdownLanguages = []string{"html"}

// MarkdownOptions selects which fenced code blocks hold markup.
type MarkdownOptions struct {
	// Languages are matched case-insensitively against the first word of
	// the fence info string.
	Languages []string

	// Detect also accepts fences without an info string whose body looks
	// like HTML.
	Detect bool
}

// LocateMarkdown returns the fenced code blocks of a Markdown document
// that hold markup, in source order. Empty fences are skipped.
func LocateMarkdown(content []byte, opts MarkdownOptions) []Literal {
	root := goldmark.New().Parser().Parse(text.NewReader(content))

	var out []Literal
	//nolint:errcheck // the walker never returns an error
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if lit, ok := fenceLiteral(content, fence, opts); ok {
			out = append(out, lit)
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func fenceLiteral(content []byte, fence *ast.FencedCodeBlock, opts MarkdownOptions) (Literal, bool) {
	lines := fence.Lines()
	if lines.Len() == 0 {
		return Literal{}, false
	}

	bodyStart := lineStartOf(content, lines.At(0).Start)
	bodyEnd := lines.At(lines.Len() - 1).Stop
	if bodyStart == 0 {
		return Literal{}, false
	}

	lang := ""
	if fence.Info != nil {
		if fields := strings.Fields(string(fence.Info.Segment.Value(content))); len(fields) > 0 {
			lang = fields[0]
		}
	}

	switch {
	case lang != "":
		if !slices.ContainsFunc(opts.Languages, func(l string) bool { return strings.EqualFold(l, lang) }) {
			return Literal{}, false
		}
	case !opts.Detect || !langdetect.LooksLikeMarkup(content[bodyStart:bodyEnd]):
		return Literal{}, false
	}

	// The fence line is the line before the body.
	fenceLine := lineStartOf(content, bodyStart-1)
	open := fenceLine
	for open < bodyStart && (content[open] == ' ' || content[open] == '\t') {
		open++
	}

	return Literal{
		Source: SourceFence,
		Range:  markup.Range{Start: bodyStart, End: bodyEnd},
		Open:   open,
		Tag:    lang,
	}, true
}

func lineStartOf(content []byte, offset int) int {
	return bytes.LastIndexByte(content[:offset], '\n') + 1
}

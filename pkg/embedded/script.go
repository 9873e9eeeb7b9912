package embedded

import (
	"bytes"
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// LocateScript returns the template literals in a JavaScript or TypeScript
// source that m accepts, in source order. Literals nested inside ${...}
// substitutions are found as well.
//
// The scanner is lexical only. It skips strings, comments and regular
// expression literals; a slash starts a regular expression when the
// previous significant token cannot end an expression.
func LocateScript(path string, content []byte, m *Matcher) ([]Literal, error) {
	s := &scriptScanner{src: content}
	s.code(false)

	slices.SortFunc(s.found, func(a, b Literal) int {
		return cmp.Compare(a.Open, b.Open)
	})

	var out []Literal
	for _, lit := range s.found {
		ok, err := m.Match(Candidate{
			Tag:    lit.Tag,
			Marker: lit.Marker,
			Path:   path,
			Line:   bytes.Count(content[:lit.Open], []byte{'\n'}) + 1,
		})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, lit)
		}
	}
	return out, nil
}

// Keywords after which a slash begins a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true,
	"in": true, "instanceof": true, "new": true, "delete": true, "void": true,
	"throw": true, "yield": true, "await": true,
}

type scriptComment struct {
	text string
	end  int
}

type scriptScanner struct {
	src   []byte
	pos   int
	found []Literal

	// prev is the last significant byte, 0 at the start of input. An
	// identifier is recorded as 'a'.
	prev     byte
	prevWord string

	// chain is the member expression ending at wordEnd ("lit.html").
	chain   string
	wordEnd int

	comment scriptComment
}

func (s *scriptScanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// code scans until EOF or, with stopAtBrace, an unbalanced closing brace
// which is left for the caller to consume.
func (s *scriptScanner) code(stopAtBrace bool) {
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case c == '/' && s.peek(1) == '/':
			s.lineComment()
			continue
		case c == '/' && s.peek(1) == '*':
			s.blockComment()
			continue
		case isScriptSpace(c):
			s.pos++
			continue
		case isIdentByte(c):
			s.word()
			continue
		}

		switch c {
		case '\'', '"':
			s.quoted(c)
		case '`':
			s.template()
		case '/':
			if s.regexAllowed() {
				s.regex()
			} else {
				s.pos++
			}
		case '{':
			depth++
			s.pos++
		case '}':
			if stopAtBrace && depth == 0 {
				return
			}
			depth--
			s.pos++
		default:
			s.pos++
		}
		s.prev = c
		s.prevWord = ""
		if c != '.' {
			s.chain = ""
		}
	}
}

func (s *scriptScanner) word() {
	start := s.pos
	for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
		s.pos++
	}
	w := string(s.src[start:s.pos])
	if s.prev == '.' && s.chain != "" {
		s.chain += "." + w
	} else {
		s.chain = w
	}
	s.wordEnd = s.pos
	s.prev = 'a'
	s.prevWord = w
}

func (s *scriptScanner) lineComment() {
	start := s.pos + 2
	end := bytes.IndexByte(s.src[start:], '\n')
	if end < 0 {
		s.pos = len(s.src)
	} else {
		s.pos = start + end
	}
	s.comment = scriptComment{text: strings.TrimSpace(string(s.src[start:s.pos])), end: s.pos}
}

func (s *scriptScanner) blockComment() {
	start := s.pos + 2
	end := bytes.Index(s.src[start:], []byte("*/"))
	if end < 0 {
		s.pos = len(s.src)
		s.comment = scriptComment{text: strings.TrimSpace(string(s.src[start:])), end: s.pos}
		return
	}
	s.pos = start + end + 2
	s.comment = scriptComment{text: strings.TrimSpace(string(s.src[start : start+end])), end: s.pos}
}

func (s *scriptScanner) quoted(q byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case q:
			s.pos++
			return
		case '\n':
			return
		}
		s.pos++
	}
}

func (s *scriptScanner) regexAllowed() bool {
	if s.prev == 'a' {
		return regexKeywords[s.prevWord]
	}
	switch s.prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	default:
		return false
	}
}

func (s *scriptScanner) regex() {
	s.pos++
	inClass := false
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return
		case '/':
			if !inClass {
				s.pos++
				for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
					s.pos++
				}
				return
			}
		}
		s.pos++
	}
}

// template scans a template literal starting at the backtick.
func (s *scriptScanner) template() {
	lit := Literal{
		Source: SourceTemplate,
		Open:   s.pos,
	}
	if s.prev == 'a' && isBlank(s.src[s.wordEnd:s.pos]) {
		lit.Tag = s.chain
	}
	if s.comment.text != "" && isBlank(s.src[s.comment.end:s.pos]) {
		lit.Marker = s.comment.text
	}

	s.pos++
	lit.Range.Start = s.pos

	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; {
		case c == '\\':
			s.pos += 2
		case c == '`':
			lit.Range.End = s.pos
			s.pos++
			s.found = append(s.found, lit)
			return
		case c == '$' && s.peek(1) == '{':
			holeStart := s.pos
			s.pos += 2
			s.prev = '{'
			s.prevWord = ""
			s.chain = ""
			s.code(true)
			if s.pos < len(s.src) {
				s.pos++
			}
			lit.Holes = append(lit.Holes, markup.Range{Start: holeStart, End: s.pos})
		default:
			s.pos++
		}
	}

	// Unterminated literal: keep it up to EOF.
	s.pos = min(s.pos, len(s.src))
	lit.Range.End = s.pos
	s.found = append(s.found, lit)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isScriptSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}

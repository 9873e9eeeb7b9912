package html

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

func TestScanStartTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		nameEnd  int
		attrs    []attrSpan
		endStart int
	}{
		{
			name:     "bare",
			raw:      "<div>",
			nameEnd:  4,
			endStart: 4,
		},
		{
			name:    "quoted and boolean",
			raw:     `<input type="text" disabled>`,
			nameEnd: 6,
			attrs: []attrSpan{
				{keyStart: 7, keyEnd: 11, valStart: 12, valEnd: 18, hasValue: true},
				{keyStart: 19, keyEnd: 27},
			},
			endStart: 27,
		},
		{
			name:    "spaces around equals",
			raw:     "<a href = /x >",
			nameEnd: 2,
			attrs: []attrSpan{
				{keyStart: 3, keyEnd: 7, valStart: 10, valEnd: 12, hasValue: true},
			},
			endStart: 13,
		},
		{
			name:     "self closing",
			raw:      "<br/>",
			nameEnd:  3,
			endStart: 3,
		},
		{
			name:    "multiline",
			raw:     "<div\n  id='a'\n>",
			nameEnd: 4,
			attrs: []attrSpan{
				{keyStart: 7, keyEnd: 9, valStart: 10, valEnd: 13, hasValue: true},
			},
			endStart: 14,
		},
		{
			name:     "unterminated",
			raw:      "<div id",
			nameEnd:  4,
			attrs:    []attrSpan{{keyStart: 5, keyEnd: 7}},
			endStart: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scanStartTag([]byte(tt.raw))
			assert.Equal(t, tt.nameEnd, got.nameEnd)
			assert.Equal(t, tt.attrs, got.attrs)
			assert.Equal(t, tt.endStart, got.endStart)
		})
	}
}

func TestMaskHoles(t *testing.T) {
	t.Parallel()

	src := []byte("a{{b\nc}}d")
	holes := FindHoles(src, DefaultDelimiters)

	got := maskHoles(src, markup.Range{Start: 0, End: len(src)}, holes)
	assert.Equal(t, "a___\n___d", string(got))
}

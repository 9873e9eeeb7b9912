package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/markup"
	"github.com/yaklabco/htmlindent/pkg/parser/html"
)

func TestFindHoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		delims  []html.Delimiter
		want    []markup.Range
	}{
		{name: "none", content: "<div></div>", delims: html.DefaultDelimiters},
		{name: "single", content: "a {{ b }} c", delims: html.DefaultDelimiters, want: []markup.Range{{Start: 2, End: 9}}},
		{name: "unterminated", content: "a {{ b", delims: html.DefaultDelimiters},
		{
			name:    "several dialects",
			content: "<%= x %>{{y}}",
			delims:  []html.Delimiter{{Open: "<%", Close: "%>"}, {Open: "{{", Close: "}}"}},
			want:    []markup.Range{{Start: 0, End: 8}, {Start: 8, End: 13}},
		},
		{name: "empty delimiter ignored", content: "{{x}}", delims: []html.Delimiter{{Open: "{{"}}},
		{
			name:    "mixed with trailing unterminated",
			content: "{{a}} {% b %} {{ unterminated",
			delims:  []html.Delimiter{{Open: "{{", Close: "}}"}, {Open: "{%", Close: "%}"}},
			want:    []markup.Range{{Start: 0, End: 5}, {Start: 6, End: 13}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, html.FindHoles([]byte(tt.content), tt.delims))
		})
	}
}

func TestDelimitersFromConfig(t *testing.T) {
	t.Parallel()

	assert.Nil(t, html.DelimitersFromConfig(nil))
	assert.Equal(t, []html.Delimiter{}, html.DelimitersFromConfig([]config.Delimiter{}))
	assert.Equal(t,
		[]html.Delimiter{{Open: "[[", Close: "]]"}},
		html.DelimitersFromConfig([]config.Delimiter{{Open: "[[", Close: "]]"}}),
	)
}

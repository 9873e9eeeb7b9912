package embedded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlindent/pkg/embedded"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	m, err := embedded.NewMatcher([]string{"html", "svg"}, []string{`(?i)^html$`}, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		c    embedded.Candidate
		want bool
	}{
		{name: "tag", c: embedded.Candidate{Tag: "html"}, want: true},
		{name: "member", c: embedded.Candidate{Tag: "this.svg"}, want: true},
		{name: "other tag", c: embedded.Candidate{Tag: "css"}, want: false},
		{name: "marker", c: embedded.Candidate{Marker: "HTML"}, want: true},
		{name: "partial marker", c: embedded.Candidate{Marker: "html template"}, want: false},
		{name: "nothing", c: embedded.Candidate{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Match(tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_Filter(t *testing.T) {
	t.Parallel()

	m, err := embedded.NewMatcher([]string{"html"}, nil, `not (path endsWith ".test.js") && line > 1`)
	require.NoError(t, err)

	ok, err := m.Match(embedded.Candidate{Tag: "html", Path: "a.js", Line: 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Match(embedded.Candidate{Tag: "html", Path: "a.test.js", Line: 3})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Match(embedded.Candidate{Tag: "html", Path: "a.js", Line: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Match(embedded.Candidate{Tag: "css", Path: "a.js", Line: 3})
	require.NoError(t, err)
	assert.False(t, ok, "filter only narrows")
}

func TestNewMatcher_Errors(t *testing.T) {
	t.Parallel()

	_, err := embedded.NewMatcher(nil, []string{"("}, "")
	require.Error(t, err)

	_, err = embedded.NewMatcher(nil, nil, "tag +")
	require.Error(t, err)

	_, err = embedded.NewMatcher(nil, nil, `tag`)
	require.Error(t, err, "filter must be boolean")
}

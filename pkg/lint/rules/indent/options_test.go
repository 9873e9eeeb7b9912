package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts, err := parseOptions(nil)
	require.NoError(t, err)

	assert.False(t, opts.tabs)
	assert.Equal(t, 4, opts.size)
	assert.Equal(t, 1, opts.attribute)
	assert.Empty(t, opts.children)
	assert.Equal(t, []string{"pre", "textarea", "xmp"}, opts.verbatim)
	assert.Equal(t, []string{"html"}, opts.templateTags)
	assert.Equal(t, []string{"html"}, opts.templateComments)
	assert.Equal(t, "    ", opts.unit())
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	opts, err := parseOptions(map[string]any{
		"indent":                "tab",
		"attribute":             int64(2),
		"tag_children_indent":   map[string]any{"HTML": 0, "body": float64(2)},
		"verbatim_elements":     []any{"PRE", "code"},
		"verbatim_script_style": true,
		"template_tags":         []string{"html", "svg"},
		"template_filter":       `line > 1`,
		"markdown_languages":    []any{"vue"},
		"markdown_detect":       true,
	})
	require.NoError(t, err)

	assert.True(t, opts.tabs)
	assert.Equal(t, "\t", opts.unit())
	assert.Equal(t, 2, opts.attribute)
	assert.Equal(t, map[string]int{"html": 0, "body": 2}, opts.children)
	assert.Equal(t, []string{"pre", "code"}, opts.verbatim)
	assert.Equal(t, []string{"html", "svg"}, opts.templateTags)
	assert.Equal(t, "line > 1", opts.templateFilter)
	assert.Equal(t, []string{"vue"}, opts.markdownLanguages)
	assert.True(t, opts.markdownDetect)

	set := opts.verbatimSet()
	assert.True(t, set["pre"])
	assert.True(t, set["script"])
	assert.True(t, set["style"])
	assert.False(t, set["textarea"])
}

func TestParseOptionsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "unknown key", raw: map[string]any{"indnet": 2}},
		{name: "indent word", raw: map[string]any{"indent": "spaces"}},
		{name: "negative indent", raw: map[string]any{"indent": -2}},
		{name: "fractional indent", raw: map[string]any{"indent": 2.5}},
		{name: "attribute string", raw: map[string]any{"attribute": "1"}},
		{name: "children not a map", raw: map[string]any{"tag_children_indent": []string{"html"}}},
		{name: "negative child increment", raw: map[string]any{"tag_children_indent": map[string]any{"ul": -1}}},
		{name: "verbatim not a list", raw: map[string]any{"verbatim_elements": "pre"}},
		{name: "boolean as string", raw: map[string]any{"verbatim_script_style": "yes"}},
		{name: "filter not a string", raw: map[string]any{"template_filter": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseOptions(tt.raw)
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestMatcherKey(t *testing.T) {
	t.Parallel()

	a := defaultOptions()
	b := defaultOptions()
	assert.Equal(t, a.matcherKey(), b.matcherKey())

	b.templateFilter = "tag == 'html'"
	assert.NotEqual(t, a.matcherKey(), b.matcherKey())
}

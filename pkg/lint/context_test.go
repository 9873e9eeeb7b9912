package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/config"
	"github.com/yaklabco/htmlindent/pkg/lint"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

func ruleContext(opts map[string]any) *lint.RuleContext {
	doc := markup.NewDocument("a.html", []byte("<p></p>"))
	doc.Root = &markup.Node{Kind: markup.KindDocument}
	return lint.NewRuleContext(context.Background(), doc, config.NewConfig(), &config.RuleConfig{Options: opts})
}

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	rc := ruleContext(nil)
	assert.Same(t, rc.File.Root, rc.Root)
	assert.NotNil(t, rc.Embedded)
	assert.False(t, rc.Cancelled())

	empty := lint.NewRuleContext(context.Background(), nil, nil, nil)
	assert.Nil(t, empty.Root)
	assert.Nil(t, empty.Options())
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rc := lint.NewRuleContext(ctx, nil, nil, nil)
	assert.True(t, rc.Cancelled())
}

func TestRuleContext_Options(t *testing.T) {
	t.Parallel()

	opts := map[string]any{"indent": 2}
	assert.Equal(t, opts, ruleContext(opts).Options())
	assert.Nil(t, lint.NewRuleContext(context.Background(), nil, nil, &config.RuleConfig{}).Options())
}

func TestAsIntMap(t *testing.T) {
	t.Parallel()

	got, ok := lint.AsIntMap(map[string]any{"ul": int64(2), "ol": 0})
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"ul": 2, "ol": 0}, got)

	_, ok = lint.AsIntMap(map[string]any{"ul": "two"})
	assert.False(t, ok)

	_, ok = lint.AsIntMap([]any{1})
	assert.False(t, ok)

	got, ok = lint.AsIntMap(map[string]int{"li": 1})
	assert.True(t, ok)
	assert.Equal(t, 1, got["li"])
}

func TestAsInt(t *testing.T) {
	t.Parallel()

	for _, v := range []any{2, int64(2), float64(2)} {
		n, ok := lint.AsInt(v)
		assert.True(t, ok)
		assert.Equal(t, 2, n)
	}

	_, ok := lint.AsInt(1.5)
	assert.False(t, ok)
	_, ok = lint.AsInt("tab")
	assert.False(t, ok)
}

func TestAsStringSlice(t *testing.T) {
	t.Parallel()

	got, ok := lint.AsStringSlice([]any{"pre", "textarea"})
	assert.True(t, ok)
	assert.Equal(t, []string{"pre", "textarea"}, got)

	got, ok = lint.AsStringSlice([]string{"a"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got)

	_, ok = lint.AsStringSlice([]any{"pre", 1})
	assert.False(t, ok)
}

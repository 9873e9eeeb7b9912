package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlindent/pkg/langdetect"
	"github.com/yaklabco/htmlindent/pkg/markup"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected markup.Host
	}{
		{name: "html", path: "index.html", expected: markup.HostMarkup},
		{name: "htm", path: "legacy/page.htm", expected: markup.HostMarkup},
		{name: "vue", path: "App.vue", expected: markup.HostMarkup},
		{name: "javascript", path: "src/view.js", expected: markup.HostScript},
		{name: "module javascript", path: "view.mjs", expected: markup.HostScript},
		{name: "typescript", path: "view.ts", expected: markup.HostScript},
		{name: "tsx", path: "view.tsx", expected: markup.HostScript},
		{name: "markdown", path: "README.md", expected: markup.HostMarkdown},
		{name: "go source", path: "main.go", content: "package main", expected: markup.HostUnknown},
		{name: "node shebang", path: "bin/tool", content: "#!/usr/bin/env node\nconsole.log(1)", expected: markup.HostScript},
		{
			name:     "sniffed html",
			path:     "template",
			content:  "<!DOCTYPE html>\n<html></html>",
			expected: markup.HostMarkup,
		},
		{name: "plain text", path: "notes", content: "just words", expected: markup.HostUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Classify(tt.path, []byte(tt.content)))
		})
	}
}

func TestHostOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, markup.HostMarkup, langdetect.HostOf("Svelte"))
	assert.Equal(t, markup.HostScript, langdetect.HostOf("TypeScript"))
	assert.Equal(t, markup.HostMarkdown, langdetect.HostOf("Markdown"))
	assert.Equal(t, markup.HostUnknown, langdetect.HostOf("Go"))
}

func TestLooksLikeMarkup(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.LooksLikeMarkup([]byte("<html>\n<body></body>\n</html>")))
	assert.False(t, langdetect.LooksLikeMarkup([]byte("")))
	assert.False(t, langdetect.LooksLikeMarkup([]byte("const x = 1;")))
}

// Package langdetect classifies files by how they carry markup.
// It uses go-enry to map file names and content to languages, then maps
// languages to a markup.Host.
package langdetect

import (
	"bytes"
	"path/filepath"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/htmlindent/pkg/markup"
)

// Languages that hold whole markup documents.
var markupLanguages = map[string]bool{
	"HTML":       true,
	"HTML+ERB":   true,
	"HTML+EEX":   true,
	"Vue":        true,
	"Svelte":     true,
	"Handlebars": true,
	"Nunjucks":   true,
	"Twig":       true,
}

// Languages whose template literals may hold markup.
var scriptLanguages = map[string]bool{
	"JavaScript": true,
	"TypeScript": true,
	"TSX":        true,
	"JSX":        true,
}

// Languages whose fenced code blocks may hold markup.
var markdownLanguages = map[string]bool{
	"Markdown": true,
	"MDX":      true,
}

// HostOf maps a go-enry language name to a markup.Host.
func HostOf(language string) markup.Host {
	switch {
	case markupLanguages[language]:
		return markup.HostMarkup
	case scriptLanguages[language]:
		return markup.HostScript
	case markdownLanguages[language]:
		return markup.HostMarkdown
	default:
		return markup.HostUnknown
	}
}

// Classify returns how the file at path carries markup.
//
// Strategy:
//  1. Every language go-enry associates with the extension.
//  2. The shebang line (node, deno and friends).
//  3. Content sniffing for extension-less input.
func Classify(path string, content []byte) markup.Host {
	if ext := filepath.Ext(path); ext != "" {
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if host := HostOf(lang); host != markup.HostUnknown {
				return host
			}
		}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return HostOf(lang)
	}

	if filepath.Ext(path) == "" && LooksLikeMarkup(content) {
		return markup.HostMarkup
	}

	return markup.HostUnknown
}

// LooksLikeMarkup reports whether an untagged snippet is probably HTML.
func LooksLikeMarkup(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return false
	}

	if detectHTML(trimmed) {
		return true
	}

	if trimmed[0] != '<' {
		return false
	}

	candidates := []string{"HTML", "XML", "Markdown", "JavaScript"}
	lang, safe := enry.GetLanguageByClassifier(content, candidates)
	return safe && lang == "HTML"
}

// detectHTML checks for patterns that only appear in HTML documents.
func detectHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<head>")) ||
		bytes.Contains(lower, []byte("<body"))
}

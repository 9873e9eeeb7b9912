package indent

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/htmlindent/pkg/embedded"
	"github.com/yaklabco/htmlindent/pkg/lint"
)

// Option keys under rules.HI001.options.
const (
	optIndent              = "indent"
	optAttribute           = "attribute"
	optTagChildrenIndent   = "tag_children_indent"
	optVerbatimElements    = "verbatim_elements"
	optVerbatimScriptStyle = "verbatim_script_style"
	optTemplateTags        = "template_tags"
	optTemplateComments    = "template_comments"
	optTemplateFilter      = "template_filter"
	optMarkdownLanguages   = "markdown_languages"
	optMarkdownDetect      = "markdown_detect"
)

const (
	defaultSize = 4
	unitTab     = "tab"
)

var defaultVerbatim = []string{"pre", "textarea", "xmp"}

// ErrInvalidOption is wrapped by every option validation error.
var ErrInvalidOption = errors.New("invalid option")

// options is the validated form of the rule options.
type options struct {
	tabs bool
	size int

	attribute int
	children  map[string]int

	verbatim            []string
	verbatimScriptStyle bool

	templateTags     []string
	templateComments []string
	templateFilter   string

	markdownLanguages []string
	markdownDetect    bool
}

func defaultOptions() options {
	return options{
		size:              defaultSize,
		attribute:         1,
		children:          map[string]int{},
		verbatim:          slices.Clone(defaultVerbatim),
		templateTags:      slices.Clone(embedded.DefaultTags),
		templateComments:  slices.Clone(embedded.DefaultComments),
		markdownLanguages: slices.Clone(embedded.DefaultMarkdownLanguages),
	}
}

// unit is the whitespace of one level.
func (o options) unit() string {
	if o.tabs {
		return "\t"
	}
	return strings.Repeat(" ", o.size)
}

// verbatimSet returns the opaque element names.
func (o options) verbatimSet() map[string]bool {
	set := make(map[string]bool, len(o.verbatim)+2)
	for _, name := range o.verbatim {
		set[name] = true
	}
	if o.verbatimScriptStyle {
		set["script"] = true
		set["style"] = true
	}
	return set
}

// matcherKey identifies the literal predicates for matcher caching.
func (o options) matcherKey() string {
	return strings.Join(o.templateTags, "\x00") + "\x01" +
		strings.Join(o.templateComments, "\x00") + "\x01" + o.templateFilter
}

func invalid(key, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidOption, key, fmt.Sprintf(format, args...))
}

// parseOptions validates raw options and fills in defaults. Unknown keys
// are rejected.
func parseOptions(raw map[string]any) (options, error) {
	opts := defaultOptions()

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		var err error

		switch key {
		case optIndent:
			err = opts.setIndent(value)
		case optAttribute:
			opts.attribute, err = nonNegative(key, value)
		case optTagChildrenIndent:
			err = opts.setChildren(value)
		case optVerbatimElements:
			opts.verbatim, err = lowerList(key, value)
		case optVerbatimScriptStyle:
			opts.verbatimScriptStyle, err = boolean(key, value)
		case optTemplateTags:
			opts.templateTags, err = stringList(key, value)
		case optTemplateComments:
			opts.templateComments, err = stringList(key, value)
		case optTemplateFilter:
			s, ok := value.(string)
			if !ok {
				err = invalid(key, "must be a string")
			}
			opts.templateFilter = s
		case optMarkdownLanguages:
			opts.markdownLanguages, err = stringList(key, value)
		case optMarkdownDetect:
			opts.markdownDetect, err = boolean(key, value)
		default:
			err = invalid(key, "unknown option")
		}

		if err != nil {
			return options{}, err
		}
	}

	return opts, nil
}

func (o *options) setIndent(value any) error {
	if s, ok := value.(string); ok {
		if s != unitTab {
			return invalid(optIndent, "must be %q or a non-negative integer, got %q", unitTab, s)
		}
		o.tabs = true
		o.size = 1
		return nil
	}

	n, err := nonNegative(optIndent, value)
	if err != nil {
		return err
	}
	o.tabs = false
	o.size = n
	return nil
}

func (o *options) setChildren(value any) error {
	table, ok := lint.AsIntMap(value)
	if !ok {
		return invalid(optTagChildrenIndent, "must map element names to integers")
	}
	o.children = make(map[string]int, len(table))
	for name, n := range table {
		if n < 0 {
			return invalid(optTagChildrenIndent, "%s: must not be negative, got %d", name, n)
		}
		o.children[strings.ToLower(name)] = n
	}
	return nil
}

func nonNegative(key string, value any) (int, error) {
	n, ok := lint.AsInt(value)
	if !ok {
		return 0, invalid(key, "must be an integer")
	}
	if n < 0 {
		return 0, invalid(key, "must not be negative, got %d", n)
	}
	return n, nil
}

func boolean(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, invalid(key, "must be a boolean")
	}
	return b, nil
}

func stringList(key string, value any) ([]string, error) {
	list, ok := lint.AsStringSlice(value)
	if !ok {
		return nil, invalid(key, "must be a list of strings")
	}
	return list, nil
}

func lowerList(key string, value any) ([]string, error) {
	list, err := stringList(key, value)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s)
	}
	return out, nil
}

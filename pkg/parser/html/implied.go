package html

// impliedEnd describes which open elements a start tag closes when their
// end tag was omitted. The stack is searched from the top; an element in
// stops ends the search without closing anything.
type impliedEnd struct {
	closes map[string]bool
	stops  map[string]bool
}

func nameSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}

// buttonScope bounds the search for an open p element.
//
//nolint:gochecknoglobals // Read-only lookup table.
var buttonScope = nameSet("applet", "button", "caption", "html", "marquee", "object", "table", "td", "template", "th")

//nolint:gochecknoglobals // Read-only lookup table.
var impliedEnds = buildImpliedEnds()

func buildImpliedEnds() map[string]impliedEnd {
	ends := map[string]impliedEnd{
		"li":       {closes: nameSet("li"), stops: nameSet("ul", "ol", "menu")},
		"dt":       {closes: nameSet("dt", "dd"), stops: nameSet("dl")},
		"dd":       {closes: nameSet("dt", "dd"), stops: nameSet("dl")},
		"option":   {closes: nameSet("option"), stops: nameSet("select", "datalist", "optgroup")},
		"optgroup": {closes: nameSet("option", "optgroup"), stops: nameSet("select")},
		"tr":       {closes: nameSet("tr"), stops: nameSet("table", "thead", "tbody", "tfoot")},
		"td":       {closes: nameSet("td", "th"), stops: nameSet("tr", "table")},
		"th":       {closes: nameSet("td", "th"), stops: nameSet("tr", "table")},
		"thead":    {closes: nameSet("thead", "tbody", "tfoot"), stops: nameSet("table")},
		"tbody":    {closes: nameSet("thead", "tbody", "tfoot"), stops: nameSet("table")},
		"tfoot":    {closes: nameSet("thead", "tbody", "tfoot"), stops: nameSet("table")},
	}

	// Block-level start tags close an open paragraph.
	paragraph := impliedEnd{closes: nameSet("p"), stops: buttonScope}
	for _, name := range []string{
		"address", "article", "aside", "blockquote", "details", "dialog", "div",
		"dl", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr",
		"main", "menu", "nav", "ol", "p", "pre", "section", "summary", "table", "ul",
	} {
		ends[name] = paragraph
	}
	return ends
}

// closeImplied ends the open elements a start tag named name implies closed.
// Closed elements end where the start tag begins and get no Close node.
func (b *builder) closeImplied(name string, at int) {
	rule, ok := impliedEnds[name]
	if !ok {
		return
	}

	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if rule.closes[el.Name] {
			for _, open := range b.stack[i:] {
				b.extend(open, at)
			}
			b.stack = b.stack[:i]
			return
		}
		if rule.stops[el.Name] {
			return
		}
	}
}

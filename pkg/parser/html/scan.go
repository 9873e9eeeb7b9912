package html

// tagSpan describes the layout of a raw start tag relative to its first byte.
type tagSpan struct {
	// nameEnd is the index just past the tag name.
	nameEnd int
	attrs   []attrSpan
	// endStart is the index of the closing ">" or "/>", or len(raw) when
	// the tag is unterminated.
	endStart int
}

// attrSpan locates one attribute. The value span includes its quotes.
type attrSpan struct {
	keyStart, keyEnd int
	valStart, valEnd int
	hasValue         bool
}

// scanStartTag walks a raw start tag such as `<div id="a" hidden>` and
// returns the spans of its name, attributes and closing delimiter.
func scanStartTag(raw []byte) tagSpan {
	var span tagSpan

	pos := 0
	if pos < len(raw) && raw[pos] == '<' {
		pos++
	}
	for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && !isTagEnd(raw, pos) {
		pos++
	}
	span.nameEnd = pos
	span.endStart = len(raw)

	for pos < len(raw) {
		for pos < len(raw) && (isAttrSpace(raw[pos]) || (raw[pos] == '/' && !isTagEnd(raw, pos))) {
			pos++
		}
		if pos >= len(raw) {
			break
		}
		if raw[pos] == '>' || isTagEnd(raw, pos) {
			span.endStart = pos
			break
		}

		attr := attrSpan{keyStart: pos}
		pos++ // a key is at least one byte, even if that byte is '='
		for pos < len(raw) && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '>' && !isTagEnd(raw, pos) {
			pos++
		}
		attr.keyEnd = pos

		next := pos
		for next < len(raw) && isAttrSpace(raw[next]) {
			next++
		}
		if next >= len(raw) || raw[next] != '=' {
			span.attrs = append(span.attrs, attr)
			continue
		}

		pos = next + 1
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) {
			span.attrs = append(span.attrs, attr)
			break
		}

		attr.hasValue = true
		attr.valStart = pos
		if quote := raw[pos]; quote == '"' || quote == '\'' {
			pos++
			for pos < len(raw) && raw[pos] != quote {
				pos++
			}
			if pos < len(raw) {
				pos++ // closing quote
			}
		} else {
			for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' {
				pos++
			}
		}
		attr.valEnd = pos
		span.attrs = append(span.attrs, attr)
	}

	return span
}

func isTagEnd(raw []byte, pos int) bool {
	return raw[pos] == '/' && pos+1 < len(raw) && raw[pos+1] == '>'
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

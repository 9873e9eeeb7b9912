package markup

// NodeKind classifies the type of a tree node.
type NodeKind uint8

// Node kinds. Element-like kinds carry open/close tag tokens; the token
// kinds are the leaves whose leading whitespace is checked.
const (
	KindDocument NodeKind = iota
	KindDoctype

	// Element-like nodes.
	KindElement
	KindScript
	KindStyle

	// Tag tokens.
	KindOpenTagStart
	KindOpenTagEnd
	KindCloseTag

	// Attributes.
	KindAttribute
	KindAttributeKey
	KindAttributeValue

	// Content.
	KindText
	KindComment
	KindCommentOpen
	KindCommentContent
	KindCommentClose
)

var kindNames = [...]string{
	KindDocument:       "Document",
	KindDoctype:        "Doctype",
	KindElement:        "Element",
	KindScript:         "Script",
	KindStyle:          "Style",
	KindOpenTagStart:   "OpenTagStart",
	KindOpenTagEnd:     "OpenTagEnd",
	KindCloseTag:       "CloseTag",
	KindAttribute:      "Attribute",
	KindAttributeKey:   "AttributeKey",
	KindAttributeValue: "AttributeValue",
	KindText:           "Text",
	KindComment:        "Comment",
	KindCommentOpen:    "CommentOpen",
	KindCommentContent: "CommentContent",
	KindCommentClose:   "CommentClose",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// TemplatePart is a sub-range of a text or comment value. IsTemplate marks
// an interpolation hole whose content is computed elsewhere.
type TemplatePart struct {
	Range      Range
	IsTemplate bool
}

// Node is a single element of the markup tree. Which fields are set depends
// on Kind:
//
//   - Element, Script, Style: Name, OpenStart, OpenEnd, Attributes, Children, Close.
//     Script and Style keep their raw content in Body instead of Children.
//   - Attribute: Key and (optionally) Val.
//   - Comment: Open, Content, Close.
//   - Text, CommentContent: Value and Parts.
//   - Token kinds: Range, Loc and Value only.
//
// The parser owns every node; consumers must not mutate them.
type Node struct {
	Kind  NodeKind
	Name  string
	Range Range
	Loc   Location
	Value string

	OpenStart  *Node
	OpenEnd    *Node
	Close      *Node
	Attributes []*Node
	Children   []*Node
	Body       *Node

	// SelfClosing is set for elements written as <x/>.
	SelfClosing bool
	// Void is set for elements that never take children (br, img, ...).
	Void bool

	Key *Node
	Val *Node

	Open    *Node
	Content *Node

	Parts []TemplatePart
}

// IsElement returns true for element, script and style nodes.
func (n *Node) IsElement() bool {
	switch n.Kind {
	case KindElement, KindScript, KindStyle:
		return true
	default:
		return false
	}
}

// Holes returns the ranges of the node's interpolation parts.
func (n *Node) Holes() []Range {
	var holes []Range
	for _, part := range n.Parts {
		if part.IsTemplate {
			holes = append(holes, part.Range)
		}
	}
	return holes
}

// Fields returns the node's direct sub-nodes in source order.
func (n *Node) Fields() []*Node {
	var out []*Node
	push := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n.Kind {
	case KindElement, KindScript, KindStyle:
		push(n.OpenStart)
		push(n.Attributes...)
		push(n.OpenEnd)
		push(n.Body)
		push(n.Children...)
		push(n.Close)
	case KindDocument:
		push(n.Children...)
	case KindAttribute:
		push(n.Key, n.Val)
	case KindComment:
		push(n.Open, n.Content, n.Close)
	case KindDoctype, KindOpenTagStart, KindOpenTagEnd, KindCloseTag,
		KindAttributeKey, KindAttributeValue, KindText,
		KindCommentOpen, KindCommentContent, KindCommentClose:
	}

	return out
}

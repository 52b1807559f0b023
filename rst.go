package helptext

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Kind names a document node type after the docutils element it mirrors.
type Kind string

// Node kinds the RST walker treats specially. Other docutils element names
// are valid kinds and render as plain blocks or inline text.
const (
	KindText           Kind = "#text"
	KindDocument       Kind = "document"
	KindSection        Kind = "section"
	KindTitle          Kind = "title"
	KindSubtitle       Kind = "subtitle"
	KindRubric         Kind = "rubric"
	KindParagraph      Kind = "paragraph"
	KindLiteralBlock   Kind = "literal_block"
	KindLineBlock      Kind = "line_block"
	KindLine           Kind = "line"
	KindComment        Kind = "comment"
	KindReference      Kind = "reference"
	KindEmphasis       Kind = "emphasis"
	KindStrong         Kind = "strong"
	KindLiteral        Kind = "literal"
	KindTerm           Kind = "term"
	KindDefinitionList Kind = "definition_list"
	KindDefinitionItem Kind = "definition_list_item"
	KindDefinition     Kind = "definition"
	KindBulletList     Kind = "bullet_list"
	KindListItem       Kind = "list_item"
)

// inlineKinds are the docutils elements deriving from Inline.
var inlineKinds = map[Kind]bool{
	KindEmphasis:             true,
	KindStrong:               true,
	KindLiteral:              true,
	KindReference:            true,
	"footnote_reference":     true,
	"citation_reference":     true,
	"substitution_reference": true,
	"title_reference":        true,
	"abbreviation":           true,
	"acronym":                true,
	"superscript":            true,
	"subscript":              true,
	"math":                   true,
	"image":                  true,
	"inline":                 true,
	"problematic":            true,
	"generated":              true,
	"target":                 true,
	"raw":                    true,
}

func isInline(k Kind) bool { return inlineKinds[k] }

func isTitular(k Kind) bool {
	return k == KindTitle || k == KindSubtitle || k == KindRubric
}

// Node is an element of a parsed reStructuredText document.
type Node struct {
	Kind Kind
	// Text is the content of KindText nodes.
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// TextNode returns a text node.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Element returns a node of kind with children.
func Element(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// SetAttr sets an attribute and returns n for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// Attr returns the attribute called name.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AsText returns the concatenated text of n and its descendants.
func (n *Node) AsText() string {
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.AsText())
	}
	return b.String()
}

func (n *Node) indent() (int, error) {
	v, ok := n.Attr("indent")
	if !ok {
		return 0, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%s: %w: indent %q", n.Kind, ErrInvalidAttribute, v)
	}
	return i, nil
}

// RenderRST renders a reStructuredText document tree.
func RenderRST(root *Node, opts ...RenderOption) (*Document, error) {
	if root == nil {
		return nil, ErrEmptyDocument
	}
	b := NewBuilder(opts...)
	w := &rstWalker{b: b, log: b.log, targets: make(map[string]int)}
	if err := w.visit(root); err != nil {
		return nil, fmt.Errorf("render rst: %w", err)
	}
	return &Document{Lines: b.Lines(), Targets: w.targets, Links: w.links}, nil
}

type rstWalker struct {
	b       *Builder
	log     *zap.Logger
	section int
	targets map[string]int
	links   []Link
}

func (w *rstWalker) visit(n *Node) error {
	switch n.Kind {
	case KindText:
		w.b.Add(n.Text)
		return nil
	case KindComment:
		return nil
	}

	w.log.Debug("entering", zap.String("kind", string(n.Kind)), zap.Int("offset", w.b.Offset()))
	inline := isInline(n.Kind)

	if n.Kind == KindTitle {
		w.targets[targetKey(n.AsText())] = w.b.Offset()
	}
	if !inline && n.Kind != KindLine && n.Kind != KindLineBlock {
		w.b.Linebreak()
	}
	if n.Kind == KindSection {
		w.section++
	}
	if n.Kind == KindTitle {
		w.b.Add(strings.Repeat("*", w.section))
		if w.section > 0 {
			w.b.Add(" ")
		}
	}
	if n.Kind == KindLine {
		indent, err := n.indent()
		if err != nil {
			return err
		}
		w.b.Add(strings.Repeat(" ", indent))
	}

	frames := 0
	if isTitular(n.Kind) || n.Kind == KindEmphasis || n.Kind == KindLiteral || n.Kind == KindLiteralBlock {
		frames += w.b.Push(true, TagBold)
	}
	if n.Kind == KindLiteralBlock {
		w.b.Linebreak()
	}
	verbatim := n.Kind == KindLiteralBlock || n.Kind == KindLine
	var fill bool
	if verbatim {
		fill = w.b.SetFill(false)
	}
	var linkStart int
	if n.Kind == KindReference {
		frames += w.b.Push(true, TagLinkColor, TagUnderline)
		linkStart = w.b.Offset()
	}

	for _, c := range n.Children {
		if err := w.visit(c); err != nil {
			w.b.Pop(frames)
			return err
		}
	}

	if verbatim {
		w.b.SetFill(fill)
	}
	w.b.Pop(frames)

	if n.Kind == KindReference {
		uri, ok := n.Attr("refuri")
		if !ok {
			return fmt.Errorf("%s: %w: refuri", n.Kind, ErrMissingAttribute)
		}
		w.links = append(w.links, Link{Offset: linkStart, Length: w.b.Offset() - linkStart, URI: uri})
	}
	if n.Kind == KindSection {
		w.section--
	}
	if !inline && n.Kind != KindLineBlock {
		w.b.Linebreak()
		if n.Kind != KindTerm && n.Kind != KindLine {
			w.b.Space()
		}
	}

	w.log.Debug("leaving", zap.String("kind", string(n.Kind)), zap.Int("offset", w.b.Offset()))
	return nil
}

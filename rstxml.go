package helptext

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// textualKinds are docutils elements that may hold text directly.
// Whitespace-only character data inside any other element is layout from
// the XML serializer and is dropped.
var textualKinds = map[Kind]bool{
	KindParagraph:     true,
	KindTitle:         true,
	KindSubtitle:      true,
	KindRubric:        true,
	KindLiteralBlock:  true,
	KindLine:          true,
	KindTerm:          true,
	KindComment:       true,
	"doctest_block":   true,
	"math_block":      true,
	"classifier":      true,
	"attribution":     true,
	"caption":         true,
	"label":           true,
	"field_name":      true,
	"address":         true,
	"option_string":   true,
	"option_argument": true,
}

// ParseRSTXML reads a document tree serialized by the docutils XML writer.
func ParseRSTXML(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docutils xml: %w", err)
	}
	if err := ValidateInput(data); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse docutils xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return nodeFromElement(root), nil
}

func nodeFromElement(el *etree.Element) *Node {
	n := &Node{Kind: Kind(el.Tag)}
	for _, a := range el.Attr {
		n.SetAttr(a.FullKey(), a.Value)
	}
	keepSpace := textualKinds[n.Kind] || isInline(n.Kind)
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if !keepSpace && strings.TrimSpace(t.Data) == "" {
				continue
			}
			n.Children = append(n.Children, TextNode(t.Data))
		case *etree.Element:
			n.Children = append(n.Children, nodeFromElement(t))
		}
	}
	return n
}

package helptext

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

func tagSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

var (
	ignoredTags = tagSet("html", "body")
	indentTags  = tagSet("blockquote")
	blockTags   = tagSet("p", "li", "ul", "pre", "br", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote")
	anchorTags  = tagSet("a")
	boldTags    = tagSet("strong", "h1", "em", "b")
	codeTags    = tagSet("code")
	literalTags = tagSet("pre")
)

func handledTag(tag string) bool {
	return ignoredTags[tag] || blockTags[tag] || boldTags[tag] || literalTags[tag] || codeTags[tag] || anchorTags[tag]
}

// RenderXHTML renders an element tree. Links are styled but not
// collected and no titles are recorded.
func RenderXHTML(root *etree.Element, opts ...RenderOption) *Document {
	b := NewBuilder(opts...)
	if root != nil {
		w := &xhtmlWalker{b: b, log: b.log}
		w.visit(root)
	}
	return &Document{Lines: b.Lines(), Targets: map[string]int{}}
}

// ParseXHTML parses an XHTML fragment. The fragment is wrapped in html and
// body elements and parsed permissively with HTML entities known.
func ParseXHTML(src string) (*etree.Element, error) {
	if err := ValidateInput([]byte(src)); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString("<html><body>" + src + "</body></html>"); err != nil {
		return nil, fmt.Errorf("parse xhtml: %w", err)
	}
	return doc.Root(), nil
}

// XHTMLToLine renders an XHTML fragment into a single line.
func XHTMLToLine(src string, opts ...RenderOption) (Line, error) {
	root, err := ParseXHTML(src)
	if err != nil {
		return nil, err
	}
	return RenderXHTML(root, opts...).Flatten(), nil
}

type xhtmlWalker struct {
	b   *Builder
	log *zap.Logger
}

func (w *xhtmlWalker) visit(el *etree.Element) {
	tag := strings.ToLower(el.Tag)
	w.log.Debug("entering", zap.String("tag", tag), zap.Stringer("tags", w.b.Tags()))
	handled := handledTag(tag)

	if !handled {
		w.marker("<" + el.FullTag() + ">")
	}
	if blockTags[tag] {
		w.b.Linebreak()
	}
	var fill bool
	if literalTags[tag] {
		fill = w.b.SetFill(false)
	}
	frames := 0
	if boldTags[tag] {
		frames += w.b.Push(false, TagBold)
	}
	if codeTags[tag] {
		frames += w.b.Push(w.b.Fill(), TagCodeBackground)
	}
	if anchorTags[tag] {
		frames += w.b.Push(true, TagLinkColor, TagUnderline)
	}
	if indentTags[tag] {
		w.b.Indent()
	}

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			w.b.Add(t.Data)
		case *etree.Element:
			w.visit(t)
		}
	}

	if !handled {
		w.marker("</" + el.FullTag() + ">")
	}
	if blockTags[tag] {
		w.b.Linebreak()
	}
	if literalTags[tag] {
		w.b.SetFill(fill)
	}
	if indentTags[tag] {
		w.b.Dedent()
	}
	w.b.Pop(frames)
	w.log.Debug("leaving", zap.String("tag", tag), zap.Stringer("tags", w.b.Tags()))
}

// marker renders the literal tag text of an element the walker does not
// know, so the markup stays visible.
func (w *xhtmlWalker) marker(text string) {
	n := w.b.Push(false, TagBold)
	w.b.Add(text)
	w.b.Pop(n)
}

package helptext

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrMissingAttribute reports a document node lacking an attribute its
	// kind requires, such as a reference without a target URI.
	ErrMissingAttribute = errors.New("missing node attribute")
	// ErrInvalidAttribute reports an attribute value of the wrong form.
	ErrInvalidAttribute = errors.New("invalid node attribute")
	// ErrEmptyDocument reports input without a root node.
	ErrEmptyDocument = errors.New("empty document")
)

// Document is the result of rendering one tree.
type Document struct {
	// Lines holds the rendered lines in order with their start offsets.
	Lines []OutputLine
	// Targets maps title text, with all whitespace removed, to the offset
	// of the title.
	Targets map[string]int
	// Links lists hyperlink regions in document order.
	Links []Link
}

// Text returns the rendered text without styling.
func (d *Document) Text() string {
	var b strings.Builder
	for _, ol := range d.Lines {
		b.WriteString(ol.Line.String())
	}
	return b.String()
}

// Flatten concatenates all lines into one; see Flatten.
func (d *Document) Flatten() Line {
	return Flatten(d.Lines)
}

// Target returns the offset of the title matching name. Whitespace in
// name is ignored.
func (d *Document) Target(name string) (int, bool) {
	off, ok := d.Targets[targetKey(name)]
	return off, ok
}

// LinkAt returns the link covering offset.
func (d *Document) LinkAt(offset int) (Link, bool) {
	for _, l := range d.Links {
		if offset >= l.Offset && offset < l.End() {
			return l, true
		}
	}
	return Link{}, false
}

// LineAt returns the index of the line holding the character at offset,
// or -1 when offset precedes all output.
func (d *Document) LineAt(offset int) int {
	if offset < 0 || len(d.Lines) == 0 {
		return -1
	}
	return sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].Offset > offset
	}) - 1
}

func targetKey(title string) string {
	return strings.Join(strings.Fields(title), "")
}

package helptext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDocument() *Document {
	return &Document{
		Lines: []OutputLine{
			{Offset: 0, Line: Line{{Text: "* Usage\n"}}},
			{Offset: 8, Line: Line{{Text: "\n"}}},
			{Offset: 9, Line: Line{{Text: "See click now.\n"}}},
		},
		Targets: map[string]int{"Usage": 0, "SeeAlso": 9},
		Links:   []Link{{Offset: 13, Length: 5, URI: "http://x"}},
	}
}

func TestDocumentText(t *testing.T) {
	assert.Equal(t, "* Usage\n\nSee click now.\n", sampleDocument().Text())
}

func TestDocumentTarget(t *testing.T) {
	doc := sampleDocument()
	off, ok := doc.Target("See \t Also")
	assert.True(t, ok)
	assert.Equal(t, 9, off)
	_, ok = doc.Target("Missing")
	assert.False(t, ok)
}

func TestDocumentLinkAt(t *testing.T) {
	doc := sampleDocument()
	for _, off := range []int{13, 15, 17} {
		l, ok := doc.LinkAt(off)
		assert.Truef(t, ok, "offset %d", off)
		assert.Equal(t, "http://x", l.URI)
	}
	for _, off := range []int{12, 18} {
		_, ok := doc.LinkAt(off)
		assert.Falsef(t, ok, "offset %d", off)
	}
}

func TestDocumentLineAt(t *testing.T) {
	doc := sampleDocument()
	cases := map[int]int{-1: -1, 0: 0, 7: 0, 8: 1, 9: 2, 23: 2, 100: 2}
	for off, want := range cases {
		assert.Equalf(t, want, doc.LineAt(off), "offset %d", off)
	}
	assert.Equal(t, -1, (&Document{}).LineAt(0))
}

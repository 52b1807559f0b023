package helptext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineAppendDropsEmptyText(t *testing.T) {
	var l Line
	l.Append(NewTagset(TagBold), "")
	assert.Empty(t, l)
	assert.True(t, l.EndsWith(""))
	assert.False(t, l.EndsWith("\n"))
}

func TestFlattenConcatenatesAndTerminates(t *testing.T) {
	bold := NewTagset(TagBold)
	lines := []OutputLine{
		{Offset: 0, Line: Line{{Tags: bold, Text: "Title\n"}}},
		{Offset: 6, Line: Line{{Tags: bold, Text: "more"}, {Tags: Tagset{}, Text: " text"}}},
	}
	got := Flatten(lines)
	assert.Equal(t, Line{
		{Tags: bold, Text: "Title\nmore"},
		{Tags: Tagset{}, Text: " text\n"},
	}, got)
	assert.Equal(t, "Title\nmore text\n", got.String())
	assert.Equal(t, 16, got.Len())
}

func TestFlattenIsIdempotent(t *testing.T) {
	bold := NewTagset(TagBold)
	once := Flatten([]OutputLine{{Line: Line{{Tags: bold, Text: "x"}}}})
	twice := once.Flatten()
	assert.Equal(t, once, twice)
	assert.Equal(t, Line{{Tags: bold, Text: "x"}, {Tags: Tagset{}, Text: "\n"}}, once)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Equal(t, Line{{Tags: Tagset{}, Text: "\n"}}, Flatten(nil))
}

func TestFlattenDoesNotAliasInput(t *testing.T) {
	l := Line{{Tags: Tagset{}, Text: "a"}}
	out := l.Flatten()
	out[0].Text = "changed"
	assert.Equal(t, "a", l[0].Text)
}

func TestLinkEnd(t *testing.T) {
	assert.Equal(t, 18, Link{Offset: 13, Length: 5}.End())
}

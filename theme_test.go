package helptext

import (
	"sort"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeByName(t *testing.T) {
	theme, ok := ThemeByName("")
	require.True(t, ok)
	assert.Equal(t, "default", theme.Name())

	theme, ok = ThemeByName("  NORD ")
	require.True(t, ok)
	assert.Equal(t, "nord", theme.Name())

	_, ok = ThemeByName("nope")
	assert.False(t, ok)

	available := AvailableThemes()
	assert.True(t, sort.StringsAreSorted(available))
	for _, name := range available {
		_, ok := ThemeByName(name)
		assert.Truef(t, ok, "theme %q", name)
	}
	assert.Contains(t, available, "boring")
	assert.Equal(t, "boring", BoringTheme().Name())
}

func TestStylesRender(t *testing.T) {
	def := DefaultTheme().Styles()
	assert.Equal(t, "\x1b[1mhi\x1b[0m", def.render(termenv.TrueColor, NewTagset(TagBold), "hi"))
	assert.Equal(t, "hi", def.render(termenv.TrueColor, Tagset{}, "hi"))
	assert.Equal(t, "hi", def.render(termenv.Ascii, NewTagset(TagBold, TagLinkColor), "hi"))
	assert.Contains(t, def.render(termenv.TrueColor, NewTagset(TagLinkColor), "hi"), "38;2;102;102;255")
	assert.Contains(t, def.render(termenv.TrueColor, NewTagset(TagCodeBackground), "hi"), "48;2;61;61;61")

	nord, _ := ThemeByName("nord")
	assert.Contains(t, nord.Styles().render(termenv.TrueColor, NewTagset(TagLinkColor), "hi"), "38;2;136;192;208")

	mono, _ := ThemeByName("mono")
	out := mono.Styles().render(termenv.TrueColor, NewTagset(TagUnderline, TagLinkColor), "hi")
	assert.Equal(t, "\x1b[4mhi\x1b[0m", out)

	assert.Equal(t, "hi", BoringTheme().Styles().render(termenv.TrueColor, NewTagset(TagBold, TagUnderline), "hi"))
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme("custom", Styles{Bold: true})
	assert.Equal(t, "custom", theme.Name())
	assert.True(t, theme.Styles().Bold)
}

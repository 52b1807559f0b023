package helptext

import (
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

const (
	foregroundPrefix = "fg:"
	backgroundPrefix = "bg:"
)

// Styles describes how tags are drawn on a terminal.
type Styles struct {
	Bold      bool
	Underline bool
	// Color enables fg: and bg: tags.
	Color bool
	// Remap replaces the color of a color tag. Tags missing from the map
	// are drawn with the color they name.
	Remap map[Tag]string
}

// Theme provides named styles for terminal output.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func remapped(link, code string) Styles {
	return Styles{
		Bold:      true,
		Underline: true,
		Color:     true,
		Remap: map[Tag]string{
			TagLinkColor:      foregroundPrefix + link,
			TagCodeBackground: backgroundPrefix + code,
		},
	}
}

var builtinThemes = map[string]Theme{
	"default":        theme{name: "default", styles: Styles{Bold: true, Underline: true, Color: true}},
	"mono":           theme{name: "mono", styles: Styles{Bold: true, Underline: true}},
	"boring":         theme{name: "boring", styles: Styles{}},
	"gruvbox":        theme{name: "gruvbox", styles: remapped("#83a598", "#3c3836")},
	"nord":           theme{name: "nord", styles: remapped("#88c0d0", "#3b4252")},
	"solarized-dark": theme{name: "solarized-dark", styles: remapped("#268bd2", "#073642")},
	"github-light":   theme{name: "github-light", styles: remapped("#0969da", "#eff1f3")},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns the theme drawing plain text.
func BoringTheme() Theme {
	return builtinThemes["boring"]
}

// render draws text with the styles tags select under profile p.
func (s Styles) render(p termenv.Profile, tags Tagset, text string) string {
	if tags.Empty() || text == "" {
		return text
	}
	st := p.String(text)
	for _, tag := range tags.Tags() {
		switch {
		case tag == TagBold:
			if s.Bold {
				st = st.Bold()
			}
		case tag == TagUnderline:
			if s.Underline {
				st = st.Underline()
			}
		case s.Color:
			if to, ok := s.Remap[tag]; ok {
				tag = Tag(to)
			}
			if c, ok := strings.CutPrefix(string(tag), foregroundPrefix); ok {
				st = st.Foreground(p.Color(c))
			} else if c, ok := strings.CutPrefix(string(tag), backgroundPrefix); ok {
				st = st.Background(p.Color(c))
			}
		}
	}
	return st.String()
}

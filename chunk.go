package helptext

import (
	"strings"
	"unicode/utf8"
)

// Run is a text segment with a set of style tags applied.
type Run struct {
	Tags Tagset
	Text string
}

// Line is an ordered sequence of runs. Adjacent runs never share an
// identical tagset and no run is empty when built through Append.
type Line []Run

// Append adds text styled with tags, merging it into the last run when
// the tagsets match. Empty text is dropped.
func (l *Line) Append(tags Tagset, text string) {
	if text == "" {
		return
	}
	if n := len(*l); n > 0 && (*l)[n-1].Tags.Equal(tags) {
		(*l)[n-1].Text += text
		return
	}
	*l = append(*l, Run{Tags: tags, Text: text})
}

// Extend appends every run of other.
func (l *Line) Extend(other Line) {
	for _, r := range other {
		l.Append(r.Tags, r.Text)
	}
}

// String returns the text of the line without styling.
func (l Line) String() string {
	var b strings.Builder
	for _, r := range l {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the rendered length in characters.
func (l Line) Len() int {
	n := 0
	for _, r := range l {
		n += utf8.RuneCountInString(r.Text)
	}
	return n
}

// EndsWith reports whether the rendered text of the line ends with
// suffix, which must not span runs.
func (l Line) EndsWith(suffix string) bool {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Text == "" {
			continue
		}
		return strings.HasSuffix(l[i].Text, suffix)
	}
	return suffix == ""
}

// Flatten returns a copy of the line terminated by a newline run.
func (l Line) Flatten() Line {
	out := make(Line, 0, len(l)+1)
	out.Extend(l)
	if !out.EndsWith("\n") {
		out.Append(Tagset{}, "\n")
	}
	return out
}

// OutputLine is a rendered line together with the character offset of
// its first character in the whole rendering.
type OutputLine struct {
	Offset int
	Line   Line
}

// Link is a hyperlink region of the rendering.
type Link struct {
	Offset int
	Length int
	URI    string
}

// End returns the offset just past the link text.
func (l Link) End() int { return l.Offset + l.Length }

// Flatten concatenates the runs of all lines into one newline-terminated
// line, for consumers that want a single scrollable unit.
func Flatten(lines []OutputLine) Line {
	var out Line
	for _, ol := range lines {
		out.Extend(ol.Line)
	}
	return out.Flatten()
}

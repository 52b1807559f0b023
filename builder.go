package helptext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Builder accumulates styled output lines, filling words up to the wrap
// width. It is the backend shared by the document walkers and is not safe
// for concurrent use.
type Builder struct {
	log    *zap.Logger
	width  int
	tags   TagStack
	lines  []OutputLine
	offset int
	col    int
	indent string
	fill   bool
	// blank is set once a separator line has been emitted and cleared by
	// any further text.
	blank bool
}

// NewBuilder returns an empty builder in fill mode.
func NewBuilder(opts ...RenderOption) *Builder {
	cfg := newRenderConfig(opts)
	return &Builder{
		log:   cfg.logger.Named("renderer"),
		width: cfg.width,
		fill:  true,
		blank: true,
	}
}

// Lines returns the output accumulated so far.
func (b *Builder) Lines() []OutputLine { return b.lines }

// Offset returns the number of characters rendered so far.
func (b *Builder) Offset() int { return b.offset }

// Column returns the current output column.
func (b *Builder) Column() int { return b.col }

// Width returns the wrap width.
func (b *Builder) Width() int { return b.width }

// Push opens a tag scope; see TagStack.Push.
func (b *Builder) Push(span bool, tags ...Tag) int { return b.tags.Push(span, tags...) }

// Pop closes n tag scopes.
func (b *Builder) Pop(n int) { b.tags.Pop(n) }

// Tags returns the tags applied to text added now.
func (b *Builder) Tags() Tagset { return b.tags.Effective() }

// Fill reports whether word filling is on.
func (b *Builder) Fill() bool { return b.fill }

// SetFill switches word filling and returns the previous mode.
func (b *Builder) SetFill(fill bool) bool {
	prev := b.fill
	b.fill = fill
	return prev
}

// Indent deepens the indentation of lines started from now on by one
// column.
func (b *Builder) Indent() { b.indent += " " }

// Dedent undoes one Indent.
func (b *Builder) Dedent() {
	if b.indent != "" {
		b.indent = b.indent[:len(b.indent)-1]
	}
}

// Add renders text with the current tags. In fill mode newlines are
// reflowed into spaces and lines are broken at whitespace before the wrap
// width; otherwise newlines are kept.
func (b *Builder) Add(text string) {
	b.blank = false
	for {
		text = b.addSegment(text)
		if text == "" {
			return
		}
	}
}

// Linebreak terminates the current line unless it already ended or holds
// no text yet.
func (b *Builder) Linebreak() {
	if b.atEndOfLine() || b.atBeginningOfLine() {
		return
	}
	b.log.Debug("linebreak", zap.Int("offset", b.offset))
	b.literal("\n")
}

// Space emits one blank separator line. Consecutive calls without text in
// between emit only one.
func (b *Builder) Space() {
	if b.blank {
		return
	}
	b.log.Debug("space", zap.Int("offset", b.offset))
	b.Linebreak()
	b.literal("\n")
	b.blank = true
}

func (b *Builder) literal(text string) {
	fill := b.SetFill(false)
	b.Add(text)
	b.fill = fill
}

// addSegment renders as much of words as belongs on the current line and
// returns what is left for the next one. The remainder is always shorter
// than words, or equal to it only right after the column was moved back
// to the indent.
func (b *Builder) addSegment(words string) (rest string) {
	b.log.Debug("add", zap.String("text", words), zap.Bool("fill", b.fill), zap.Int("col", b.col))
	if b.atEndOfLine() {
		b.startLine()
	}
	line := &b.lines[len(b.lines)-1].Line

	words = strings.ReplaceAll(words, "\r", "")
	if b.col == 0 {
		words = b.indent + words
	}
	if b.fill {
		words = strings.ReplaceAll(words, "\n", " ")
	} else if i := strings.IndexByte(words, '\n'); i >= 0 {
		words, rest = words[:i+1], words[i+1:]
	}

	if b.fill && b.width > 0 && b.col+utf8.RuneCountInString(words) > b.width {
		words, rest = b.wrap(words, rest)
		b.log.Debug("wrapped", zap.String("text", words), zap.String("rest", rest))
	}

	n := utf8.RuneCountInString(words)
	if strings.HasSuffix(words, "\n") {
		b.col = utf8.RuneCountInString(b.indent)
	} else {
		b.col += n
	}
	line.Append(b.tags.Effective(), words)
	b.offset += n
	return rest
}

// wrap splits an overlong candidate. It breaks at the last whitespace run
// that starts before the wrap width. Without one, the candidate moves to
// the next line if the column is past the indent, and otherwise its first
// word is emitted on its own.
func (b *Builder) wrap(words, rest string) (string, string) {
	rs := []rune(words)
	offs := splitOffsets(rs)
	for i := len(offs) - 2; i > 0; i -= 2 {
		if b.col+offs[i] < b.width {
			return string(rs[:offs[i]]) + "\n", string(rs[offs[i+1]:]) + rest
		}
	}
	if b.col > utf8.RuneCountInString(b.indent) {
		return "\n", words + rest
	}
	if len(offs) > 1 {
		return string(rs[:offs[1]]), string(rs[offs[2]:]) + rest
	}
	return words, rest
}

// splitOffsets returns the start offsets of the alternating word and
// whitespace pieces of rs. The first and last pieces are words, possibly
// empty, so the result always has odd length and odd indices start
// whitespace.
func splitOffsets(rs []rune) []int {
	offs := []int{0}
	space := false
	for i, r := range rs {
		if unicode.IsSpace(r) != space {
			space = !space
			offs = append(offs, i)
		}
	}
	if space {
		offs = append(offs, len(rs))
	}
	return offs
}

// startLine opens a line seeded with the indentation in the current tags.
// The seed is not counted in the offset or the column.
func (b *Builder) startLine() {
	if n := len(b.lines); n > 0 {
		b.detachSpan(&b.lines[n-1].Line)
	}
	ol := OutputLine{Offset: b.offset}
	ol.Line.Append(b.tags.Effective(), b.indent)
	b.lines = append(b.lines, ol)
}

// detachSpan moves a trailing newline out of the active span tags so
// inline decoration such as link underlining stops at the line end.
func (b *Builder) detachSpan(line *Line) {
	span := b.tags.Span()
	n := len(*line)
	if n == 0 || span.Empty() {
		return
	}
	last := (*line)[n-1]
	if !last.Tags.Intersects(span) || !strings.HasSuffix(last.Text, "\n") {
		return
	}
	*line = (*line)[:n-1]
	line.Append(last.Tags, strings.TrimSuffix(last.Text, "\n"))
	line.Append(last.Tags.Minus(span), "\n")
}

func (b *Builder) atEndOfLine() bool {
	return len(b.lines) == 0 || b.lines[len(b.lines)-1].Line.EndsWith("\n")
}

// atBeginningOfLine reports whether the current line holds no text, not
// even an indent seed.
func (b *Builder) atBeginningOfLine() bool {
	return len(b.lines) == 0 || len(b.lines[len(b.lines)-1].Line) == 0
}

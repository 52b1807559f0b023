package helptext

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// WriteOption configures WriteANSI.
type WriteOption func(*writeConfig)

type writeConfig struct {
	theme   Theme
	profile termenv.Profile
	osc8    bool
	footer  bool
	width   int
	logger  *zap.Logger
}

// WithTheme sets the theme used to draw tags.
func WithTheme(theme Theme) WriteOption {
	return func(cfg *writeConfig) {
		if theme != nil {
			cfg.theme = theme
		}
	}
}

// WithProfile sets the terminal color profile. The default is TrueColor.
func WithProfile(profile termenv.Profile) WriteOption {
	return func(cfg *writeConfig) {
		cfg.profile = profile
	}
}

// WithOSC8 enables OSC 8 hyperlinks around link text.
func WithOSC8(enabled bool) WriteOption {
	return func(cfg *writeConfig) {
		cfg.osc8 = enabled
	}
}

// WithLinkFooter appends a numbered list of link targets after the text.
func WithLinkFooter(enabled bool) WriteOption {
	return func(cfg *writeConfig) {
		cfg.footer = enabled
	}
}

// WithFooterWidth sets the width link footer entries are truncated to.
func WithFooterWidth(width int) WriteOption {
	return func(cfg *writeConfig) {
		cfg.width = width
	}
}

// WithWriteLogger sets the logger for WriteANSI.
func WithWriteLogger(logger *zap.Logger) WriteOption {
	return func(cfg *writeConfig) {
		cfg.logger = logger
	}
}

// WriteANSI draws doc to w with terminal escape sequences.
func WriteANSI(w io.Writer, doc *Document, opts ...WriteOption) error {
	cfg := writeConfig{
		theme:   DefaultTheme(),
		profile: termenv.TrueColor,
		width:   DefaultWidth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if doc == nil {
		return ErrEmptyDocument
	}
	log := cfg.logger.Named("ansi")
	log.Debug("writing document",
		zap.Int("lines", len(doc.Lines)),
		zap.Int("links", len(doc.Links)),
		zap.String("theme", cfg.theme.Name()),
		zap.Bool("osc8", cfg.osc8))

	bw := bufio.NewWriter(w)
	aw := &ansiWriter{w: bw, cfg: cfg, styles: cfg.theme.Styles(), links: doc.Links}
	for _, ol := range doc.Lines {
		offset := ol.Offset
		for _, run := range ol.Line {
			aw.run(offset, run)
			offset += utf8.RuneCountInString(run.Text)
		}
	}
	aw.closeLink()
	if cfg.footer {
		aw.footer()
	}
	if aw.err != nil {
		return fmt.Errorf("write ansi: %w", aw.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ansi: %w", err)
	}
	return nil
}

type ansiWriter struct {
	w      *bufio.Writer
	cfg    writeConfig
	styles Styles
	links  []Link
	// next is the index of the first link not yet opened.
	next int
	open bool
	err  error
}

func (a *ansiWriter) write(s string) {
	if a.err != nil || s == "" {
		return
	}
	_, a.err = a.w.WriteString(s)
}

// run draws one run starting at offset, splitting it where links start
// and end.
func (a *ansiWriter) run(offset int, run Run) {
	if !a.cfg.osc8 {
		a.write(a.styles.render(a.cfg.profile, run.Tags, sanitizeText(run.Text)))
		return
	}
	text := []rune(run.Text)
	for len(text) > 0 {
		a.linkBoundary(offset)
		n := len(text)
		if cut := a.nextBoundary(offset); cut > offset && cut-offset < n {
			n = cut - offset
		}
		a.write(a.styles.render(a.cfg.profile, run.Tags, sanitizeText(string(text[:n]))))
		text = text[n:]
		offset += n
	}
}

// linkBoundary closes or opens a hyperlink at offset.
func (a *ansiWriter) linkBoundary(offset int) {
	if a.open && offset >= a.links[a.next-1].End() {
		a.closeLink()
	}
	for !a.open && a.next < len(a.links) && a.links[a.next].End() <= offset {
		a.next++
	}
	if !a.open && a.next < len(a.links) && a.links[a.next].Offset <= offset {
		a.write(osc8Start + a.links[a.next].URI + "\x1b\\")
		a.open = true
		a.next++
	}
}

func (a *ansiWriter) nextBoundary(offset int) int {
	if a.open {
		return a.links[a.next-1].End()
	}
	if a.next < len(a.links) {
		return a.links[a.next].Offset
	}
	return -1
}

func (a *ansiWriter) closeLink() {
	if !a.open {
		return
	}
	a.write(osc8End)
	a.open = false
}

func (a *ansiWriter) footer() {
	if len(a.links) == 0 {
		return
	}
	a.write("\n")
	for i, l := range a.links {
		label := fmt.Sprintf("[%d] ", i+1)
		uri := sanitizeText(l.URI)
		if a.cfg.width > 0 {
			uri = fitURI(uri, a.cfg.width-ansi.PrintableRuneWidth(label)-2)
		}
		a.write(label + "<" + uri + ">\n")
	}
}

// fitURI shortens uri to at most limit columns. The scheme goes first,
// then the tail is cut behind an ellipsis.
func fitURI(uri string, limit int) string {
	if ansi.PrintableRuneWidth(uri) <= limit {
		return uri
	}
	if limit <= 0 {
		return ""
	}
	if _, rest, ok := strings.Cut(uri, "://"); ok {
		uri = rest
		if ansi.PrintableRuneWidth(uri) <= limit {
			return uri
		}
	}
	return truncate.StringWithTail(uri, uint(limit), "…")
}

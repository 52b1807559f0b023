package helptext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Fenced code blocks with one of these info strings render as block
// quotes of their Markdown content.
var quoteFenceLanguages = map[string]bool{
	"quote":  true,
	"quoted": true,
}

func newMarkdownConverter() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			renderer.WithNodeRenderers(util.Prioritized(&fenceRenderer{}, 100)),
		),
	)
}

// MarkdownToXHTML converts Markdown to an XHTML fragment. Single newlines
// become line breaks and raw HTML in the source is omitted.
func MarkdownToXHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdownConverter().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderMarkdown renders Markdown through its XHTML conversion and returns
// the front matter decoded from its head.
func RenderMarkdown(src []byte, opts ...RenderOption) (*Document, FrontMatter, error) {
	if err := ValidateInput(src); err != nil {
		return nil, nil, err
	}
	meta, body, err := SplitFrontMatter(src)
	if err != nil {
		return nil, nil, err
	}
	xhtml, err := MarkdownToXHTML(body)
	if err != nil {
		return nil, nil, err
	}
	root, err := ParseXHTML(xhtml)
	if err != nil {
		return nil, nil, err
	}
	return RenderXHTML(root, opts...), meta, nil
}

// MarkdownToLine renders Markdown into a single line. Leading front matter
// is dropped.
func MarkdownToLine(src []byte, opts ...RenderOption) (Line, error) {
	doc, _, err := RenderMarkdown(src, opts...)
	if err != nil {
		return nil, err
	}
	return doc.Flatten(), nil
}

type fenceRenderer struct{}

func (r *fenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *fenceRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	var body bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body.Write(seg.Value(source))
	}
	lang := string(n.Language(source))

	if quoteFenceLanguages[strings.ToLower(lang)] {
		inner, err := MarkdownToXHTML(body.Bytes())
		if err != nil {
			return ast.WalkStop, err
		}
		_, _ = w.WriteString("<blockquote>\n")
		_, _ = w.WriteString(inner)
		_, _ = w.WriteString("</blockquote>\n")
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString("<pre><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML(body.Bytes()))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

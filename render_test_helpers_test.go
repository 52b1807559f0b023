package helptext

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")
var osc8Regexp = regexp.MustCompile("\x1b\\]8;;.*?\x1b\\\\")

func stripANSI(s string) string {
	s = ansiRegexp.ReplaceAllString(s, "")
	s = osc8Regexp.ReplaceAllString(s, "")
	return s
}

// sampleTree builds a document with sections, prose, links and a literal
// block, repeated n times.
func sampleTree(n int) *Node {
	root := Element(KindDocument)
	for i := 0; i < n; i++ {
		root.Children = append(root.Children, Element(KindSection,
			Element(KindTitle, text("Configuring the renderer")),
			Element(KindParagraph,
				text("The quick brown fox jumps over the lazy dog while the "),
				Element(KindReference, text("documentation index")).SetAttr("refuri", "https://example.com/docs/index.html"),
				text(" explains every option in detail, including "),
				Element(KindLiteral, text("--width")),
				text(" and its interaction with terminal detection.")),
			Element(KindLiteralBlock, text("$ helptext --width 40 help.xml\n$ helptext -l README.md"))))
	}
	return root
}

func renderANSI(t testing.TB, doc *Document, opts ...WriteOption) string {
	t.Helper()
	var out bytes.Buffer
	if err := WriteANSI(&out, doc, opts...); err != nil {
		t.Fatalf("write ansi: %v", err)
	}
	return out.String()
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

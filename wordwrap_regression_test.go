package helptext

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrappedQuoteIndentation(t *testing.T) {
	src := strings.Join([]string{
		"```quote",
		"If a user-facing function or interface method takes more than 4",
		"parameters total (including context.Context), move non-ctx inputs into",
		"a request struct (e.g. FooRequest).",
		"```",
	}, "\n")

	doc, _, err := RenderMarkdown([]byte(src), WithWidth(30))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := nonEmptyLines(doc.Text())
	if len(got) < 6 {
		t.Fatalf("too few lines: %q", got)
	}
	for i, line := range got {
		if !strings.HasPrefix(line, " ") {
			t.Fatalf("line %d not indented: %q", i+1, line)
		}
		if n := utf8.RuneCountInString(line); n > 30 {
			t.Fatalf("line %d exceeds width: %d %q", i+1, n, line)
		}
	}
	if !strings.Contains(doc.Text(), "FooRequest).") {
		t.Fatalf("missing tail: %q", doc.Text())
	}
}

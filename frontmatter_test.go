package helptext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatterFormats(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		src   string
		body  string
		title string
	}{
		{
			name:  "yaml",
			src:   "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n\nBody.\n",
			body:  "\n# Hello\n\nBody.\n",
			title: "Post",
		},
		{
			name:  "toml",
			src:   "+++\ntitle = \"Post\"\n+++\n\n# Hello\n",
			body:  "\n# Hello\n",
			title: "Post",
		},
		{
			name:  "json",
			src:   ";;;\n{\"title\": \"Post\", \"weight\": 2}\n;;;\n\n# Hello\n",
			body:  "\n# Hello\n",
			title: "Post",
		},
		{
			name:  "crlf",
			src:   "---\r\ntitle: Post\r\n---\r\nBody",
			body:  "Body",
			title: "Post",
		},
		{
			name:  "bom",
			src:   "\xEF\xBB\xBF---\ntitle: Post\n---\nBody",
			body:  "Body",
			title: "Post",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			meta, body, err := SplitFrontMatter([]byte(tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.body, string(body))
			assert.Equal(t, tc.title, meta.Title())
		})
	}
}

func TestSplitFrontMatterJSONValues(t *testing.T) {
	meta, _, err := SplitFrontMatter([]byte(";;;\n{\"title\": \"Post\", \"weight\": 2, \"tags\": [\"a\"]}\n;;;\n"))
	require.NoError(t, err)
	assert.Equal(t, float64(2), meta["weight"])
	assert.Equal(t, []any{"a"}, meta["tags"])
}

func TestSplitFrontMatterLeavesOtherInputAlone(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"not at start":   "# Intro\n\n+++\ntitle = \"Keep me\"\n+++\n\nTail\n",
		"unclosed":       "---\ntitle: Post\n\nBody\n",
		"thematic break": "---\n\nBody\n---\n",
		"empty":          "",
	}
	for name, src := range tests {
		src := src
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			meta, body, err := SplitFrontMatter([]byte(src))
			require.NoError(t, err)
			assert.Nil(t, meta)
			assert.Equal(t, src, string(body))
		})
	}
}

func TestSplitFrontMatterDecodeErrors(t *testing.T) {
	for _, src := range []string{
		"---\ntitle: [unclosed\n---\nBody\n",
		"+++\ntitle = \n+++\nBody\n",
		";;;\n{bad: }\n;;;\nBody\n",
		";;;\n[1, 2]\n;;;\nBody\n",
	} {
		_, _, err := SplitFrontMatter([]byte(src))
		assert.ErrorIsf(t, err, ErrFrontMatter, "%q", src)
	}
}

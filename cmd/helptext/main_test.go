package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rstSample = `<?xml version="1.0" encoding="utf-8"?>
<document>
  <section ids="usage" names="usage">
    <title>Usage</title>
    <paragraph>See <reference refuri="http://x">click</reference> now.</paragraph>
  </section>
</document>
`

func TestReadInputsFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()

	inputs, err := readInputs([]string{path, "file://" + path, srv.URL + "/page.html"}, nil)
	require.NoError(t, err)
	require.Len(t, inputs, 3)
	assert.Equal(t, "hello", string(inputs[0].data))
	assert.Equal(t, "hello", string(inputs[1].data))
	assert.Equal(t, "stream", string(inputs[2].data))
	assert.Equal(t, "/page.html", inputs[2].name)
}

func TestReadInputsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	_, err := readInputs([]string{srv.URL}, nil)
	assert.Error(t, err, "404 response")
}

func TestReadInputsStdin(t *testing.T) {
	inputs, err := readInputs(nil, strings.NewReader("piped"))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "piped", string(inputs[0].data))
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"doc.xml", "", formatRST},
		{"page.HTML", "", formatXHTML},
		{"notes.md", "", formatMarkdown},
		{"-", rstSample, formatRST},
		{"-", "<p>hi</p>", formatXHTML},
		{"-", "# Title", formatMarkdown},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, detectFormat(tc.name, []byte(tc.data)), "detectFormat(%q)", tc.name)
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		require.NoErrorf(t, err, "resolveOSC8(%q)", input)
		assert.Equalf(t, want, got, "resolveOSC8(%q)", input)
	}
	_, err := resolveOSC8("nope")
	assert.Error(t, err)
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--config", cfgPath}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRunRendersBoringRST(t *testing.T) {
	out, errOut, code := runCLI(t, rstSample, "--boring", "--width", "40", "--format", "rst")
	require.Zero(t, code, errOut)
	assert.Equal(t, "* Usage\n\nSee click now.\n\n", out)
}

func TestRunRendersMarkdownSeparators(t *testing.T) {
	out, errOut, code := runCLI(t, "# Title\n\nBody.\n", "--boring", "--format", "markdown")
	require.Zero(t, code, errOut)
	assert.Equal(t, "Title\n \nBody.\n ", out)
}

func TestRunListsLinksAndTargets(t *testing.T) {
	out, errOut, code := runCLI(t, rstSample, "--list-links")
	require.Zero(t, code, errOut)
	assert.Equal(t, "13\t5\thttp://x\n", out)

	out, errOut, code = runCLI(t, rstSample, "--list-targets")
	require.Zero(t, code, errOut)
	assert.Equal(t, "0\tUsage\n", out)
}

func TestRunLinkFooter(t *testing.T) {
	out, errOut, code := runCLI(t, "<p>go <a href=\"http://x\">there</a></p>", "--boring", "--links", "--format", "xhtml")
	require.Zero(t, code, errOut)
	assert.NotContains(t, out, "[1]", "xhtml documents carry no link regions")

	out, errOut, code = runCLI(t, rstSample, "--boring", "--links")
	require.Zero(t, code, errOut)
	assert.True(t, strings.HasSuffix(out, "\n[1] <http://x>\n"), "footer missing in %q", out)
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, _, code := runCLI(t, "", "--theme", "nope")
	assert.Equal(t, 2, code, "unknown theme")
	_, _, code = runCLI(t, "", "--osc8", "maybe")
	assert.Equal(t, 2, code, "bad osc8 mode")
	_, _, code = runCLI(t, "", "--format", "pdf")
	assert.Equal(t, 1, code, "unknown format")
}

func TestRunListThemes(t *testing.T) {
	out, _, code := runCLI(t, "", "--list-themes")
	require.Zero(t, code)
	assert.Contains(t, out, "boring\n")
	assert.Contains(t, out, "default\n")
}

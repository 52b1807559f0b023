package helptext

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrFrontMatter reports a front matter block that cannot be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds metadata decoded from the head of a Markdown source.
type FrontMatter map[string]any

// Title returns the "title" entry when it is a string.
func (f FrontMatter) Title() string {
	s, _ := f["title"].(string)
	return s
}

// SplitFrontMatter separates a leading front matter block from src. YAML
// blocks are fenced by "---", TOML by "+++" and JSON by ";;;". A source
// without front matter is returned unchanged with nil metadata.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	openLine, openNext, ok := nextLine(src, 0)
	if !ok {
		return nil, src, nil
	}
	delim, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return nil, src, nil
	}
	secondLine, _, ok := nextLine(src, openNext)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return nil, src, nil
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return nil, src, nil
	}
	meta, err := decodeFrontMatter(delim, src[openNext:closeStart])
	if err != nil {
		return nil, nil, err
	}
	return meta, src[closeNext:], nil
}

func decodeFrontMatter(delim, data []byte) (FrontMatter, error) {
	meta := FrontMatter{}
	switch string(delim) {
	case "---":
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrFrontMatter, err)
		}
	case "+++":
		if err := toml.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("%w: toml: %w", ErrFrontMatter, err)
		}
	case ";;;":
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: json: malformed object", ErrFrontMatter)
		}
		obj, ok := gjson.ParseBytes(data).Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: json: not an object", ErrFrontMatter)
		}
		meta = obj
	}
	return meta, nil
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

// findClosingFrontMatterDelimiter returns the offsets of the start of the
// closing delimiter line and of the line after it.
func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

package helptext

import (
	"sort"
	"strings"
)

// Tag is an opaque style label attached to rendered text.
type Tag string

// Tags understood by DefaultTheme. Renderers may attach any other label;
// themes ignore labels they do not know.
const (
	TagBold      Tag = "bold"
	TagUnderline Tag = "underline"
	// TagLinkColor colours hyperlink text.
	TagLinkColor Tag = "fg:#6666ff"
	// TagCodeBackground dims the background behind code.
	TagCodeBackground Tag = "bg:#3d3d3d"
)

// Tagset is an immutable, sorted set of tags. The zero value is the empty
// set.
type Tagset struct {
	tags []Tag
}

// NewTagset returns the set holding tags.
func NewTagset(tags ...Tag) Tagset {
	if len(tags) == 0 {
		return Tagset{}
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return Tagset{tags: out[:n]}
}

// Tags returns the members in sorted order.
func (s Tagset) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of tags in the set.
func (s Tagset) Len() int { return len(s.tags) }

// Empty reports whether the set has no members.
func (s Tagset) Empty() bool { return len(s.tags) == 0 }

// Has reports whether t is a member.
func (s Tagset) Has(t Tag) bool {
	i := sort.Search(len(s.tags), func(i int) bool { return s.tags[i] >= t })
	return i < len(s.tags) && s.tags[i] == t
}

// Equal reports whether both sets hold the same tags.
func (s Tagset) Equal(o Tagset) bool {
	if len(s.tags) != len(o.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != o.tags[i] {
			return false
		}
	}
	return true
}

// Union returns the set of tags in s or o.
func (s Tagset) Union(o Tagset) Tagset {
	switch {
	case o.Empty():
		return s
	case s.Empty():
		return o
	}
	out := make([]Tag, 0, len(s.tags)+len(o.tags))
	i, j := 0, 0
	for i < len(s.tags) && j < len(o.tags) {
		switch {
		case s.tags[i] < o.tags[j]:
			out = append(out, s.tags[i])
			i++
		case s.tags[i] > o.tags[j]:
			out = append(out, o.tags[j])
			j++
		default:
			out = append(out, s.tags[i])
			i++
			j++
		}
	}
	out = append(out, s.tags[i:]...)
	out = append(out, o.tags[j:]...)
	return Tagset{tags: out}
}

// With returns s extended with tags.
func (s Tagset) With(tags ...Tag) Tagset {
	return s.Union(NewTagset(tags...))
}

// Minus returns the tags of s that are not in o.
func (s Tagset) Minus(o Tagset) Tagset {
	if s.Empty() || o.Empty() {
		return s
	}
	out := make([]Tag, 0, len(s.tags))
	for _, t := range s.tags {
		if !o.Has(t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return Tagset{}
	}
	return Tagset{tags: out}
}

// Intersects reports whether s and o share at least one tag.
func (s Tagset) Intersects(o Tagset) bool {
	for _, t := range s.tags {
		if o.Has(t) {
			return true
		}
	}
	return false
}

func (s Tagset) String() string {
	parts := make([]string, len(s.tags))
	for i, t := range s.tags {
		parts[i] = string(t)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

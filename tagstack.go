package helptext

type tagFrame struct {
	block Tagset
	span  Tagset
}

// TagStack tracks nested style scopes. Each frame carries the block tags,
// which style whole constructed lines, and the span tags, which style an
// inline region and are detached from line terminators.
type TagStack struct {
	frames []tagFrame
}

// Push opens a scope extending the current frame with tags, as span tags
// when span is set and as block tags otherwise. It returns the number of
// frames added so conditional pushes can be balanced with a single Pop.
func (s *TagStack) Push(span bool, tags ...Tag) int {
	top := s.top()
	if span {
		top.span = top.span.With(tags...)
	} else {
		top.block = top.block.With(tags...)
	}
	s.frames = append(s.frames, top)
	return 1
}

// Pop closes the n innermost scopes.
func (s *TagStack) Pop(n int) {
	if n <= 0 {
		return
	}
	if n > len(s.frames) {
		n = len(s.frames)
	}
	s.frames = s.frames[:len(s.frames)-n]
}

// Depth returns the number of open scopes.
func (s *TagStack) Depth() int { return len(s.frames) }

// Effective returns the union of the innermost block and span tags.
func (s *TagStack) Effective() Tagset {
	top := s.top()
	return top.block.Union(top.span)
}

// Block returns the innermost block tags.
func (s *TagStack) Block() Tagset { return s.top().block }

// Span returns the innermost span tags.
func (s *TagStack) Span() Tagset { return s.top().span }

func (s *TagStack) top() tagFrame {
	if len(s.frames) == 0 {
		return tagFrame{}
	}
	return s.frames[len(s.frames)-1]
}

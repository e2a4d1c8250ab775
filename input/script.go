package input

// Script replays a fixed list of frames, then repeats its last frame with the
// edges cleared. An empty script yields idle frames.
type Script struct {
	frames []Frame
	next   int
}

func NewScript(frames ...Frame) *Script {
	return &Script{frames: append([]Frame(nil), frames...)}
}

// Hold repeats f for n frames.
func Hold(f Frame, n int) []Frame {
	out := make([]Frame, n)
	for i := range out {
		out[i] = f
	}
	return out
}

func (s *Script) Poll() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	if s.next < len(s.frames) {
		f := s.frames[s.next]
		s.next++
		return f.Clamped()
	}
	last := s.frames[len(s.frames)-1]
	last.JumpPressed = false
	last.JumpReleased = false
	return last.Clamped()
}

// Done reports whether every scripted frame has been polled.
func (s *Script) Done() bool {
	return s.next >= len(s.frames)
}

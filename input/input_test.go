package input

import "testing"

func TestEdges(t *testing.T) {
	var e Edges
	steps := []struct {
		held     bool
		pressed  bool
		released bool
	}{
		{false, false, false},
		{true, true, false},
		{true, false, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
	}
	for i, s := range steps {
		f := e.Next(0, s.held)
		if f.JumpPressed != s.pressed || f.JumpReleased != s.released || f.JumpHeld != s.held {
			t.Fatalf("step %d: got %+v", i, f)
		}
	}
}

func TestFrameClamped(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-3, -1},
		{0.4, 0.4},
		{2, 1},
	}
	for _, c := range cases {
		if got := (Frame{Horizontal: c.in}).Clamped().Horizontal; got != c.want {
			t.Fatalf("Clamped(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestScript(t *testing.T) {
	s := NewScript(Frame{JumpPressed: true, JumpHeld: true}, Frame{Horizontal: 1, JumpHeld: true})
	if f := s.Poll(); !f.JumpPressed {
		t.Fatalf("first frame lost its press")
	}
	if s.Done() {
		t.Fatalf("script finished early")
	}
	s.Poll()
	f := s.Poll()
	if !s.Done() || f.JumpPressed || !f.JumpHeld || f.Horizontal != 1 {
		t.Fatalf("unexpected repeat frame %+v", f)
	}

	if (&Script{}).Poll() != (Frame{}) {
		t.Fatalf("empty script should be idle")
	}
	if got := len(Hold(Frame{Horizontal: -1}, 3)); got != 3 {
		t.Fatalf("Hold produced %d frames", got)
	}
}

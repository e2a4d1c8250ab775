package input

import "github.com/guilhermepo2/JumpyJump/common"

// Frame is the input state sampled once per simulation tick.
type Frame struct {
	// Horizontal is the move axis in [-1, 1]; negative is left.
	Horizontal float64
	// JumpPressed is true only on the tick the jump button went down.
	JumpPressed bool
	// JumpReleased is true only on the tick the jump button went up.
	JumpReleased bool
	// JumpHeld is true while the jump button is down.
	JumpHeld bool
}

// Clamped returns the frame with its axis limited to [-1, 1].
func (f Frame) Clamped() Frame {
	f.Horizontal = common.Clamp(f.Horizontal, -1, 1)
	return f
}

// Source yields one frame per tick.
type Source interface {
	Poll() Frame
}

// Edges turns a held jump button into pressed/released edges.
type Edges struct {
	held bool
}

// Next builds a frame from the raw axis and button state, filling in the
// edges relative to the previous call.
func (e *Edges) Next(horizontal float64, jumpHeld bool) Frame {
	f := Frame{
		Horizontal:   horizontal,
		JumpPressed:  jumpHeld && !e.held,
		JumpReleased: !jumpHeld && e.held,
		JumpHeld:     jumpHeld,
	}
	e.held = jumpHeld
	return f.Clamped()
}

func (e *Edges) Reset() {
	e.held = false
}

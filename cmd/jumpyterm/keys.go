package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/guilhermepo2/JumpyJump/input"
)

// holdWindow is how long a key counts as held after its last press event.
// Terminals only report presses and auto-repeat, never releases.
const holdWindow = 180 * time.Millisecond

// keyLatch turns terminal key presses into a held-key input source.
type keyLatch struct {
	left, right, jump time.Time
	edges             input.Edges
}

// Press records a key event at now. It reports false for keys it ignores.
func (k *keyLatch) Press(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		k.left = now
	case tcell.KeyRight:
		k.right = now
	case tcell.KeyUp:
		k.jump = now
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			k.left = now
		case 'd', 'D', 'l':
			k.right = now
		case ' ', 'w', 'W', 'k':
			k.jump = now
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Frame samples the latch for one tick.
func (k *keyLatch) Frame(now time.Time) input.Frame {
	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < holdWindow
	}
	horizontal := 0.0
	if held(k.left) {
		horizontal--
	}
	if held(k.right) {
		horizontal++
	}
	return k.edges.Next(horizontal, held(k.jump))
}

func (k *keyLatch) Reset() {
	*k = keyLatch{}
}

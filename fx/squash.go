package fx

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/timer"
)

type squashKey struct{ owner any }

// Squasher keeps the current sprite scale of each owner and reverts it through
// the scheduler once the squash has run its course.
type Squasher struct {
	sched  *timer.Scheduler
	scales map[any]mgl64.Vec2
}

func NewSquasher(sched *timer.Scheduler) *Squasher {
	return &Squasher{sched: sched, scales: make(map[any]mgl64.Vec2)}
}

func (q *Squasher) Squash(owner any, scale mgl64.Vec2, duration time.Duration) {
	key := squashKey{owner}
	q.sched.Cancel(key)
	q.scales[owner] = scale
	q.sched.After(key, duration, func() {
		delete(q.scales, owner)
	})
}

// Scale returns the owner's current scale, (1,1) when not squashed.
func (q *Squasher) Scale(owner any) mgl64.Vec2 {
	if s, ok := q.scales[owner]; ok {
		return s
	}
	return mgl64.Vec2{1, 1}
}

// Forget drops the owner's scale and its pending revert.
func (q *Squasher) Forget(owner any) {
	q.sched.Cancel(squashKey{owner})
	delete(q.scales, owner)
}

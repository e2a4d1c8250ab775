package timer

import (
	"time"

	"github.com/guilhermepo2/JumpyJump/common"
)

type task struct {
	owner any

	// delayed call
	remaining time.Duration
	fn        func()

	// tween
	elapsed  time.Duration
	duration time.Duration
	tween    func(progress float64)

	done bool
}

// Scheduler runs cosmetic tasks advanced by the game loop. Tasks belong to an
// owner so everything an entity scheduled can be cancelled when it goes away.
// Owners are compared with ==, so they should be pointers or other comparable
// values.
//
// Nothing a task computes is read back by the simulation.
type Scheduler struct {
	tasks     []*task
	added     []*task
	advancing bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// After calls fn once delay has elapsed. A non-positive delay fires on the next
// Advance.
func (s *Scheduler) After(owner any, delay time.Duration, fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.push(&task{owner: owner, remaining: delay, fn: fn})
}

// Tween calls fn on every Advance with progress in [0,1] until the duration
// has elapsed. The final call always receives exactly 1.
func (s *Scheduler) Tween(owner any, duration time.Duration, fn func(progress float64)) {
	if s == nil || fn == nil {
		return
	}
	s.push(&task{owner: owner, duration: duration, tween: fn})
}

func (s *Scheduler) push(t *task) {
	if s.advancing {
		s.added = append(s.added, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

// Advance moves every task forward by dt, in scheduling order. Tasks scheduled
// by a callback wait for the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	s.advancing = true
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		if t.tween != nil {
			t.elapsed += dt
			progress := 1.0
			if t.duration > 0 {
				progress = common.Clamp01(float64(t.elapsed) / float64(t.duration))
			}
			if progress >= 1 {
				t.done = true
			}
			t.tween(progress)
			continue
		}

		t.remaining -= dt
		if t.remaining <= 0 {
			t.done = true
			t.fn()
		}
	}
	s.advancing = false

	s.compact()
	s.tasks = append(s.tasks, s.added...)
	s.added = nil
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Cancel drops every pending task of owner and returns how many were dropped.
// Cancelled tasks never fire, even when cancelled from another task's callback
// during the same Advance.
func (s *Scheduler) Cancel(owner any) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.done && t.owner == owner {
			t.done = true
			n++
		}
	}
	for _, t := range s.added {
		if !t.done && t.owner == owner {
			t.done = true
			n++
		}
	}
	if !s.advancing {
		s.compact()
	}
	return n
}

// Pending counts the tasks of owner that have not fired yet.
func (s *Scheduler) Pending(owner any) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.done && t.owner == owner {
			n++
		}
	}
	for _, t := range s.added {
		if !t.done && t.owner == owner {
			n++
		}
	}
	return n
}

// Len counts every pending task.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	for _, t := range s.added {
		if !t.done {
			n++
		}
	}
	return n
}

// Clear cancels everything.
func (s *Scheduler) Clear() {
	if s == nil {
		return
	}
	for _, t := range s.tasks {
		t.done = true
	}
	for _, t := range s.added {
		t.done = true
	}
	if !s.advancing {
		s.tasks = nil
	}
	s.added = nil
}

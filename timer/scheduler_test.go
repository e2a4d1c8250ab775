package timer

import (
	"testing"
	"time"
)

const frame = time.Second / 60

type owner struct{ name string }

func TestAfterFiresOnceInOrder(t *testing.T) {
	s := New()
	a, b := &owner{"a"}, &owner{"b"}

	var fired []string
	s.After(a, 30*time.Millisecond, func() { fired = append(fired, "a30") })
	s.After(b, 10*time.Millisecond, func() { fired = append(fired, "b10") })
	s.After(a, 10*time.Millisecond, func() { fired = append(fired, "a10") })
	s.After(b, 0, func() { fired = append(fired, "b0") })

	steps := []struct {
		dt   time.Duration
		want []string
	}{
		{5 * time.Millisecond, []string{"b0"}},
		{5 * time.Millisecond, []string{"b0", "b10", "a10"}},
		{10 * time.Millisecond, []string{"b0", "b10", "a10"}},
		{10 * time.Millisecond, []string{"b0", "b10", "a10", "a30"}},
		{time.Second, []string{"b0", "b10", "a10", "a30"}},
	}
	for i, step := range steps {
		s.Advance(step.dt)
		if len(fired) != len(step.want) {
			t.Fatalf("step %d: fired %v, want %v", i, fired, step.want)
		}
		for j := range fired {
			if fired[j] != step.want[j] {
				t.Fatalf("step %d: fired %v, want %v", i, fired, step.want)
			}
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected no pending tasks, got %d", s.Len())
	}
}

func TestTweenProgress(t *testing.T) {
	s := New()
	var got []float64
	s.Tween(&owner{}, 4*frame, func(p float64) { got = append(got, p) })

	for i := 0; i < 6; i++ {
		s.Advance(frame)
	}

	want := []float64{0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("progress = %v, want %v", got, want)
	}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("progress = %v, want %v", got, want)
		}
	}
}

func TestCancel(t *testing.T) {
	cases := []struct {
		name       string
		cancelFrom string // "outside" or "callback"
	}{
		{"outside", "outside"},
		{"from_callback", "callback"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New()
			victim, other := &owner{"victim"}, &owner{"other"}
			fired := 0

			if c.cancelFrom == "callback" {
				s.After(other, 0, func() {
					if n := s.Cancel(victim); n != 2 {
						t.Errorf("cancelled %d, want 2", n)
					}
				})
			}
			s.After(victim, 0, func() { fired++ })
			s.Tween(victim, time.Second, func(float64) { fired++ })
			s.After(other, frame, func() {})

			if got := s.Pending(victim); got != 2 {
				t.Fatalf("pending = %d, want 2", got)
			}
			if c.cancelFrom == "outside" {
				if n := s.Cancel(victim); n != 2 {
					t.Fatalf("cancelled %d, want 2", n)
				}
			}

			s.Advance(frame)
			if fired != 0 {
				t.Fatalf("cancelled tasks fired %d times", fired)
			}
			if s.Pending(victim) != 0 {
				t.Fatalf("victim still has pending tasks")
			}
		})
	}
}

func TestScheduledFromCallbackWaitsForNextAdvance(t *testing.T) {
	s := New()
	o := &owner{}
	var order []string
	s.After(o, 0, func() {
		order = append(order, "first")
		s.After(o, 0, func() { order = append(order, "second") })
	})

	s.Advance(frame)
	if len(order) != 1 {
		t.Fatalf("nested task ran in the same Advance: %v", order)
	}
	if s.Pending(o) != 1 {
		t.Fatalf("nested task not pending")
	}
	s.Advance(frame)
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("order = %v", order)
	}
}

func TestClearAndNilScheduler(t *testing.T) {
	s := New()
	s.After(&owner{}, time.Second, func() { t.Fatalf("cleared task fired") })
	s.Clear()
	s.Advance(2 * time.Second)
	if s.Len() != 0 {
		t.Fatalf("expected empty scheduler")
	}

	var nilScheduler *Scheduler
	nilScheduler.After(&owner{}, 0, func() {})
	nilScheduler.Advance(frame)
	if nilScheduler.Len() != 0 || nilScheduler.Cancel(&owner{}) != 0 {
		t.Fatalf("nil scheduler should be inert")
	}
}

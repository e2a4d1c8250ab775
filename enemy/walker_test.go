package enemy

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
)

const dt = 1.0 / 60

func newPen(t *testing.T) (*physics.Space, *physics.Actor, *Walker, *fx.Recorder) {
	t.Helper()
	s := physics.NewSpace()
	s.AddBox(common.Rect{X: -10, Y: -1, Width: 20, Height: 1}, physics.LayerSolid, nil)
	s.AddBox(common.Rect{X: -4, Y: 0, Width: 1, Height: 3}, physics.LayerSolid, nil)
	s.AddBox(common.Rect{X: 3, Y: 0, Width: 1, Height: 3}, physics.LayerSolid, nil)

	actor, err := physics.NewActor(s, physics.ActorConfig{
		Volume:   physics.Volume{Width: 1, Height: 1, SkinWidth: physics.DefaultSkinWidth},
		Masks:    physics.LayerMasks{Platform: physics.LayerSolid},
		Position: mgl64.Vec2{0, 0.5},
		Layer:    physics.LayerEnemy,
	})
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	rec := &fx.Recorder{}
	w, err := NewWalker(actor, DefaultWalkerConfig(), rec.Sinks(), nil)
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	actor.Collider().Data = w
	return s, actor, w, rec
}

func TestWalkerTurnsAtWalls(t *testing.T) {
	_, actor, w, _ := newPen(t)

	var turns []float64
	last := w.Direction()
	minX, maxX := actor.Position()[0], actor.Position()[0]
	for i := 0; i < 10*60; i++ {
		w.Update(dt)
		if d := w.Direction(); d != last {
			turns = append(turns, d)
			last = d
		}
		x := actor.Position()[0]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}

	if len(turns) < 2 || turns[0] != 1 || turns[1] != -1 {
		t.Fatalf("turns = %v, want right then left", turns)
	}
	if minX < -2.5-1e-9 || maxX > 2.5+1e-9 {
		t.Fatalf("walker left the pen: x in [%v, %v]", minX, maxX)
	}
	if !actor.IsGrounded() {
		t.Fatalf("walker should stay on the floor")
	}
}

func TestWalkerKill(t *testing.T) {
	s, actor, w, rec := newPen(t)
	w.OnKill(actor.Destroy)

	w.HurtPlayer()
	if got := rec.Sounds(); len(got) != 1 || got[0] != fx.SoundDeath {
		t.Fatalf("sounds = %v", got)
	}

	w.Kill()
	w.Kill()
	pos := actor.Position()
	w.Update(dt)
	if !w.Dead() || actor.Position() != pos {
		t.Fatalf("killed walker kept moving")
	}
	if got := s.Overlap(actor.Bounds(), physics.LayerEnemy); len(got) != 0 {
		t.Fatalf("killed walker left its collider behind")
	}
}

func TestNewWalkerNilMover(t *testing.T) {
	if _, err := NewWalker(nil, DefaultWalkerConfig(), fx.Sinks{}, nil); !errors.Is(err, ErrNilMover) {
		t.Fatalf("expected ErrNilMover, got %v", err)
	}
}

package gameplay

import (
	"math"
	"testing"
	"time"

	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/timer"
)

func TestQuestionBoxBounce(t *testing.T) {
	space := physics.NewSpace()
	sched := timer.New()
	rec := &fx.Recorder{}
	bounds := common.Rect{X: 2, Y: 3, Width: 1, Height: 1}
	box := NewQuestionBox(space, bounds, DefaultBoxConfig(), sched, rec.Sinks(), nil)

	if c := box.Collider(); c == nil || c.Layer != physics.LayerSolid || c.Data != box {
		t.Fatalf("box collider not registered as solid: %+v", c)
	}

	bumps := 0
	box.OnBump(func() { bumps++ })
	box.BumpedByPlayer()
	box.BumpedByPlayer()

	if !box.Activated() || bumps != 1 {
		t.Fatalf("activated = %v, bumps = %d", box.Activated(), bumps)
	}
	if got := rec.Sounds(); len(got) != 1 || got[0] != fx.SoundCoin {
		t.Fatalf("sounds = %v", got)
	}
	anims := rec.Animations()
	if len(anims) != 2 || anims[1] != fx.AnimBoxUsed {
		t.Fatalf("animations = %v", anims)
	}

	steps := []float64{0.25, 0.5, 0.25, 0}
	for i, want := range steps {
		sched.Advance(50 * time.Millisecond)
		if got := box.VisualOffset()[1]; math.Abs(got-want) > 1e-9 {
			t.Fatalf("step %d: offset = %v, want %v", i, got, want)
		}
		if box.Collider().Bounds != bounds {
			t.Fatalf("the bounce moved the collider")
		}
	}
	if sched.Pending(box) != 0 {
		t.Fatalf("bounce tasks left behind")
	}
}

func TestQuestionBoxDestroyCancelsBounce(t *testing.T) {
	sched := timer.New()
	box := NewQuestionBox(physics.NewSpace(), common.Rect{Width: 1, Height: 1}, DefaultBoxConfig(), sched, fx.Sinks{}, nil)
	box.BumpedByPlayer()
	sched.Advance(30 * time.Millisecond)

	box.Destroy()
	if sched.Pending(box) != 0 || box.VisualOffset()[1] != 0 {
		t.Fatalf("destroy left the bounce running")
	}
	sched.Advance(time.Second)
	if box.VisualOffset()[1] != 0 {
		t.Fatalf("cancelled bounce still moved the sprite")
	}
}

func TestCoinCollect(t *testing.T) {
	space := physics.NewSpace()
	rec := &fx.Recorder{}
	bounds := common.Rect{X: 1, Y: 1, Width: 0.5, Height: 0.5}
	coin := NewCoin(space, bounds, rec.Sinks(), nil)

	if got := space.Overlap(bounds, physics.LayerPickup); len(got) != 1 || got[0].Data != coin {
		t.Fatalf("coin trigger not registered")
	}

	collected := 0
	coin.OnCollect(func() { collected++ })
	coin.Collect()
	coin.Collect()

	if !coin.Collected() || collected != 1 {
		t.Fatalf("collected = %d", collected)
	}
	if got := rec.Sounds(); len(got) != 1 || got[0] != fx.SoundCoin {
		t.Fatalf("sounds = %v", got)
	}
	if got := space.Overlap(bounds, physics.LayerPickup); len(got) != 0 {
		t.Fatalf("collected coin still registered")
	}
}

func TestSpikeHurts(t *testing.T) {
	rec := &fx.Recorder{}
	NewSpike(rec.Sinks()).HurtPlayer()
	if got := rec.Sounds(); len(got) != 1 || got[0] != fx.SoundDeath {
		t.Fatalf("sounds = %v", got)
	}
}

package fx

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Animation names a visual state an owner switches to.
type Animation string

const (
	AnimIdle              Animation = "idle"
	AnimRunning           Animation = "running"
	AnimJumping           Animation = "jumping"
	AnimChangingDirection Animation = "changing_direction"
	AnimWalking           Animation = "walking"
	AnimBoxActive         Animation = "active"
	AnimBoxUsed           Animation = "used"
)

// Sound names a one-shot sound effect.
type Sound string

const (
	SoundJump  Sound = "jump"
	SoundCoin  Sound = "coin"
	SoundDeath Sound = "death"
)

// Particle names a particle burst.
type Particle string

const ParticleFoot Particle = "foot"

// AnimationSink receives animation and facing changes.
type AnimationSink interface {
	PlayAnimation(owner any, anim Animation)
	SetFacing(owner any, right bool)
}

type SoundSink interface {
	PlaySound(sound Sound)
}

type ParticleSink interface {
	EmitParticles(kind Particle, at mgl64.Vec2)
}

// SquashSink scales an owner's sprite for a short while.
type SquashSink interface {
	Squash(owner any, scale mgl64.Vec2, duration time.Duration)
}

// Sinks bundles the cosmetic collaborators of an entity. Every field is
// optional.
type Sinks struct {
	Animation AnimationSink
	Sound     SoundSink
	Particles ParticleSink
	Squash    SquashSink
}

// OrNop replaces missing sinks with no-ops.
func (s Sinks) OrNop() Sinks {
	if s.Animation == nil {
		s.Animation = Nop{}
	}
	if s.Sound == nil {
		s.Sound = Nop{}
	}
	if s.Particles == nil {
		s.Particles = Nop{}
	}
	if s.Squash == nil {
		s.Squash = Nop{}
	}
	return s
}

// Nop implements every sink and does nothing.
type Nop struct{}

func (Nop) PlayAnimation(any, Animation) {}
func (Nop) SetFacing(any, bool) {}
func (Nop) PlaySound(Sound) {}
func (Nop) EmitParticles(Particle, mgl64.Vec2) {}
func (Nop) Squash(any, mgl64.Vec2, time.Duration) {}

package fx

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/timer"
)

// DefaultParticleLife is how long a burst stays alive.
const DefaultParticleLife = 400 * time.Millisecond

// Burst is one live particle effect. Progress runs from 0 to 1 over its life.
type Burst struct {
	Kind     Particle
	At       mgl64.Vec2
	Progress float64
}

// Particles is a ParticleSink that keeps bursts alive for a fixed time and
// then destroys them.
type Particles struct {
	sched  *timer.Scheduler
	life   time.Duration
	bursts []*Burst
}

func NewParticles(sched *timer.Scheduler, life time.Duration) *Particles {
	if life <= 0 {
		life = DefaultParticleLife
	}
	return &Particles{sched: sched, life: life}
}

func (p *Particles) EmitParticles(kind Particle, at mgl64.Vec2) {
	b := &Burst{Kind: kind, At: at}
	p.bursts = append(p.bursts, b)
	p.sched.Tween(b, p.life, func(progress float64) {
		b.Progress = progress
		if progress >= 1 {
			p.remove(b)
		}
	})
}

func (p *Particles) remove(b *Burst) {
	for i, other := range p.bursts {
		if other == b {
			p.bursts = append(p.bursts[:i], p.bursts[i+1:]...)
			return
		}
	}
}

// Bursts returns a snapshot of the live bursts, oldest first.
func (p *Particles) Bursts() []Burst {
	out := make([]Burst, 0, len(p.bursts))
	for _, b := range p.bursts {
		out = append(out, *b)
	}
	return out
}

// Clear destroys every live burst.
func (p *Particles) Clear() {
	for _, b := range p.bursts {
		p.sched.Cancel(b)
	}
	p.bursts = nil
}

package fx

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Event is one notification captured by a Recorder.
type Event struct {
	Owner     any
	Animation Animation
	Sound     Sound
	Particle  Particle
	Facing    *bool
	Squash    mgl64.Vec2
	Duration  time.Duration
	At        mgl64.Vec2
}

// Recorder implements every sink and keeps what it received, in order. It
// backs headless runs and tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) PlayAnimation(owner any, anim Animation) {
	r.Events = append(r.Events, Event{Owner: owner, Animation: anim})
}

func (r *Recorder) SetFacing(owner any, right bool) {
	r.Events = append(r.Events, Event{Owner: owner, Facing: &right})
}

func (r *Recorder) PlaySound(sound Sound) {
	r.Events = append(r.Events, Event{Sound: sound})
}

func (r *Recorder) EmitParticles(kind Particle, at mgl64.Vec2) {
	r.Events = append(r.Events, Event{Particle: kind, At: at})
}

func (r *Recorder) Squash(owner any, scale mgl64.Vec2, duration time.Duration) {
	r.Events = append(r.Events, Event{Owner: owner, Squash: scale, Duration: duration})
}

// Sounds lists the recorded sounds.
func (r *Recorder) Sounds() []Sound {
	var out []Sound
	for _, e := range r.Events {
		if e.Sound != "" {
			out = append(out, e.Sound)
		}
	}
	return out
}

// Animations lists the recorded animation changes.
func (r *Recorder) Animations() []Animation {
	var out []Animation
	for _, e := range r.Events {
		if e.Animation != "" {
			out = append(out, e.Animation)
		}
	}
	return out
}

// Squashes lists the recorded squash scales.
func (r *Recorder) Squashes() []mgl64.Vec2 {
	var out []mgl64.Vec2
	for _, e := range r.Events {
		if e.Duration > 0 {
			out = append(out, e.Squash)
		}
	}
	return out
}

// Particles lists the recorded particle kinds.
func (r *Recorder) Particles() []Particle {
	var out []Particle
	for _, e := range r.Events {
		if e.Particle != "" {
			out = append(out, e.Particle)
		}
	}
	return out
}

// Sinks routes every sink to the recorder.
func (r *Recorder) Sinks() Sinks {
	return Sinks{Animation: r, Sound: r, Particles: r, Squash: r}
}

func (r *Recorder) Reset() {
	r.Events = nil
}

package gameplay

import "github.com/guilhermepo2/JumpyJump/fx"

// Spike is the hazard attached to every spike tile.
type Spike struct {
	sinks fx.Sinks
}

func NewSpike(sinks fx.Sinks) *Spike {
	return &Spike{sinks: sinks.OrNop()}
}

func (s *Spike) HurtPlayer() {
	s.sinks.Sound.PlaySound(fx.SoundDeath)
}

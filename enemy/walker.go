package enemy

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/sirupsen/logrus"
)

var ErrNilMover = errors.New("enemy: mover is nil")

const (
	DefaultFootSpeed = 2.5
	DefaultGravity   = -10.0
)

type WalkerConfig struct {
	FootSpeed float64
	Gravity   float64
	// StartDirection is -1 for left, +1 for right.
	StartDirection float64
}

func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{FootSpeed: DefaultFootSpeed, Gravity: DefaultGravity, StartDirection: -1}
}

// Walker paces back and forth, turning around whenever it walks into a wall.
// It is a hazard to the player.
type Walker struct {
	actor     physics.Mover
	cfg       WalkerConfig
	sinks     fx.Sinks
	log       logrus.FieldLogger
	direction float64
	velocity  mgl64.Vec2
	dead      bool
	onKill    func()
}

func NewWalker(actor physics.Mover, cfg WalkerConfig, sinks fx.Sinks, logger logrus.FieldLogger) (*Walker, error) {
	if actor == nil {
		return nil, ErrNilMover
	}
	w := &Walker{
		actor:     actor,
		cfg:       cfg,
		sinks:     sinks.OrNop(),
		log:       common.LoggerOrDiscard(logger).WithField("entity", "walker"),
		direction: common.Sign(cfg.StartDirection),
	}
	actor.AddCollisionListener(w.onCollision)
	w.sinks.Animation.PlayAnimation(w, fx.AnimWalking)
	w.sinks.Animation.SetFacing(w, w.direction > 0)
	return w, nil
}

func (w *Walker) onCollision(hit physics.Hit) {
	prev := w.direction
	switch hit.Normal[0] {
	case 1:
		w.direction = 1
	case -1:
		w.direction = -1
	}
	if w.direction != prev {
		w.sinks.Animation.SetFacing(w, w.direction > 0)
		w.log.WithField("direction", w.direction).Debug("walker turned")
	}
}

// Update runs one simulation tick.
func (w *Walker) Update(dt float64) {
	if w.dead {
		return
	}
	if w.actor.IsGrounded() {
		w.velocity[1] = 0
	}
	w.velocity[0] = w.direction * w.cfg.FootSpeed
	w.velocity[1] += w.cfg.Gravity * dt

	w.velocity = w.actor.Move(w.velocity.Mul(dt), dt)
}

// HurtPlayer is called when the player touches the walker.
func (w *Walker) HurtPlayer() {
	w.sinks.Sound.PlaySound(fx.SoundDeath)
}

// OnKill registers the callback that removes the walker from the world.
func (w *Walker) OnKill(fn func()) {
	w.onKill = fn
}

// Kill stops the walker and removes it from the world.
func (w *Walker) Kill() {
	if w.dead {
		return
	}
	w.dead = true
	w.log.Debug("walker killed")
	if w.onKill != nil {
		w.onKill()
	}
}

func (w *Walker) Dead() bool {
	return w.dead
}

func (w *Walker) Direction() float64 {
	return w.direction
}

func (w *Walker) Position() mgl64.Vec2 {
	return w.actor.Position()
}

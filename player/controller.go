package player

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/input"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/sirupsen/logrus"
)

var ErrNilMover = errors.New("player: mover is nil")

// SquashDuration is how long the jump and landing squash lasts.
const SquashDuration = 48 * time.Millisecond

var (
	jumpSquash = mgl64.Vec2{0.6, 1.4}
	landSquash = mgl64.Vec2{1.4, 0.6}
	// foot particles spawn half a unit below the player's centre
	footOffset = mgl64.Vec2{0, -0.5}
)

// Bumpable colliders react when the player hits them from below.
type Bumpable interface {
	BumpedByPlayer()
}

// Hazard colliders kill the player on contact.
type Hazard interface {
	HurtPlayer()
}

// Pickup colliders are collected on contact.
type Pickup interface {
	Collect()
}

// Controller turns input into movement for one player actor. It owns the
// Grounded/Jumping state machine; the actor's collision results are
// authoritative over the velocity it asks for.
type Controller struct {
	actor  physics.Mover
	tuning Tuning
	jump   JumpConstants
	sinks  fx.Sinks
	log    logrus.FieldLogger

	state    State
	ctx      StateContext
	velocity mgl64.Vec2
	gravity  float64
	axis     float64

	pressedJumpTime float64
	wasGroundedTime float64

	facingRight bool
	animation   fx.Animation

	dead           bool
	deathListeners []func()
}

// NewController derives the jump constants from tuning and subscribes to the
// actor's collision and trigger events. Invalid tuning is fatal.
func NewController(actor physics.Mover, tuning Tuning, sinks fx.Sinks, logger logrus.FieldLogger) (*Controller, error) {
	if actor == nil {
		return nil, ErrNilMover
	}
	jump, err := tuning.Derive()
	if err != nil {
		return nil, err
	}
	c := &Controller{
		actor:       actor,
		tuning:      tuning,
		jump:        jump,
		sinks:       sinks.OrNop(),
		log:         common.LoggerOrDiscard(logger).WithField("entity", "player"),
		state:       StateGrounded,
		gravity:     jump.GoingDownGravity,
		facingRight: true,
	}
	c.ctx = StateContext{
		Jump:               jump,
		JumpCut:            tuning.JumpCutValue,
		Velocity:           &c.velocity,
		IsGrounded:         actor.IsGrounded,
		JumpBuffered:       c.jumpBuffered,
		ConsumeJumpBuffers: c.consumeJumpBuffers,
		SetGravity:         func(g float64) { c.gravity = g },
		ChangeState:        c.changeState,
		Launched:           c.launched,
		Landed:             c.landed,
	}

	actor.AddCollisionListener(c.onCollision)
	actor.AddTriggerListener(c.onTrigger)

	c.log.WithFields(logrus.Fields{
		"v0":     jump.InitialVelocity,
		"g_up":   jump.GoingUpGravity,
		"g_down": jump.GoingDownGravity,
	}).Debug("player controller ready")

	return c, nil
}

// Update runs one simulation tick.
func (c *Controller) Update(dt float64, in input.Frame) {
	in = in.Clamped()

	c.pressedJumpTime -= dt
	c.wasGroundedTime -= dt
	c.axis = in.Horizontal
	if in.JumpPressed {
		c.pressedJumpTime = c.tuning.PressedToJumpRememberTime
	}

	grounded := c.actor.IsGrounded()
	if grounded {
		c.wasGroundedTime = c.tuning.GroundedRememberTime
		c.velocity[1] = 0
	}

	c.ctx.Input = in
	c.state.Update(&c.ctx)

	c.updateFacing()
	c.updateAnimation(grounded)

	// walking off a ledge falls without a jump
	if c.velocity[1] < 0 {
		c.gravity = c.jump.GoingDownGravity
		c.changeState(StateJumping)
	}

	damping := c.tuning.AirDamping
	if grounded {
		damping = c.tuning.GroundDamping
	}
	c.velocity[0] = common.Lerp(c.velocity[0], c.axis*c.tuning.FootSpeed, common.Clamp01(dt*damping))
	c.velocity[1] += c.gravity * dt

	delta := c.velocity.Mul(dt)
	c.velocity = c.actor.Move(delta, dt)
}

func (c *Controller) jumpBuffered() bool {
	return c.pressedJumpTime > 0 && c.wasGroundedTime > 0
}

func (c *Controller) consumeJumpBuffers() {
	c.pressedJumpTime = 0
	c.wasGroundedTime = 0
}

func (c *Controller) changeState(next State) {
	if next == nil || next == c.state {
		return
	}
	c.log.WithFields(logrus.Fields{
		"from": c.state.Name(),
		"to":   next.Name(),
	}).Debug("player state change")
	c.state = next
}

func (c *Controller) launched() {
	c.sinks.Squash.Squash(c, jumpSquash, SquashDuration)
	c.sinks.Sound.PlaySound(fx.SoundJump)
	c.emitFootParticles()
}

func (c *Controller) landed() {
	c.emitFootParticles()
	c.sinks.Squash.Squash(c, landSquash, SquashDuration)
}

func (c *Controller) emitFootParticles() {
	c.sinks.Particles.EmitParticles(fx.ParticleFoot, c.actor.Position().Add(footOffset))
}

func (c *Controller) updateFacing() {
	if c.axis == 0 {
		return
	}
	right := c.axis > 0
	if right == c.facingRight {
		return
	}
	c.facingRight = right
	c.sinks.Animation.SetFacing(c, right)
}

// selectAnimation picks the sprite state from the grounded flag and how the
// current velocity compares with the requested direction.
func selectAnimation(grounded bool, vx, axis float64) fx.Animation {
	switch {
	case !grounded:
		return fx.AnimJumping
	case axis != 0 && common.Sign(vx) != common.Sign(axis):
		return fx.AnimChangingDirection
	case vx > 0.5 || vx < -0.5:
		return fx.AnimRunning
	default:
		return fx.AnimIdle
	}
}

func (c *Controller) updateAnimation(grounded bool) {
	anim := selectAnimation(grounded, c.velocity[0], c.axis)
	if anim == c.animation {
		return
	}
	c.animation = anim
	c.sinks.Animation.PlayAnimation(c, anim)
	if anim == fx.AnimChangingDirection {
		c.emitFootParticles()
	}
}

func (c *Controller) onCollision(hit physics.Hit) {
	// only hits on the underside of something count as bumps
	if hit.Collider == nil || hit.Normal[1] != -1 {
		return
	}
	if b, ok := hit.Collider.Data.(Bumpable); ok {
		b.BumpedByPlayer()
	}
}

func (c *Controller) onTrigger(phase physics.TriggerPhase, col *physics.Collider) {
	if phase != physics.TriggerEnter || col == nil {
		return
	}
	if h, ok := col.Data.(Hazard); ok {
		h.HurtPlayer()
		c.Die()
		return
	}
	if p, ok := col.Data.(Pickup); ok {
		p.Collect()
	}
}

// OnDeath registers fn to run when the player dies.
func (c *Controller) OnDeath(fn func()) {
	if fn == nil {
		return
	}
	c.deathListeners = append(c.deathListeners, fn)
}

// Die raises the death event. It fires at most once per controller.
func (c *Controller) Die() {
	if c.dead {
		return
	}
	c.dead = true
	c.log.WithField("position", c.actor.Position()).Info("player died")
	for _, fn := range c.deathListeners {
		fn()
	}
}

func (c *Controller) Dead() bool {
	return c.dead
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Velocity() mgl64.Vec2 {
	return c.velocity
}

func (c *Controller) Gravity() float64 {
	return c.gravity
}

func (c *Controller) JumpConstants() JumpConstants {
	return c.jump
}

func (c *Controller) Tuning() Tuning {
	return c.tuning
}

func (c *Controller) FacingRight() bool {
	return c.facingRight
}

func (c *Controller) Animation() fx.Animation {
	return c.animation
}

func (c *Controller) Position() mgl64.Vec2 {
	return c.actor.Position()
}

package physics

import "github.com/go-gl/mathgl/mgl64"

// Mover is the movement capability shared by everything that walks the world:
// the player controller and enemies drive an Actor through it.
type Mover interface {
	Move(delta mgl64.Vec2, dt float64) mgl64.Vec2
	IsGrounded() bool
	Position() mgl64.Vec2
	Velocity() mgl64.Vec2
	AddCollisionListener(fn CollisionListener)
	AddTriggerListener(fn TriggerListener)
}

var _ Mover = (*Actor)(nil)

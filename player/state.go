package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/input"
)

// State is one node of the player's movement state machine.
type State interface {
	Name() string
	Update(ctx *StateContext)
}

// StateContext gives a state controlled access to the controller for one tick.
type StateContext struct {
	Input    input.Frame
	Jump     JumpConstants
	JumpCut  float64
	Velocity *mgl64.Vec2

	IsGrounded func() bool
	// JumpBuffered reports a recent press while recently grounded.
	JumpBuffered       func() bool
	ConsumeJumpBuffers func()
	SetGravity         func(g float64)
	ChangeState        func(next State)

	// cosmetic notifications
	Launched func()
	Landed   func()
}

// State singletons.
var (
	StateGrounded State = &groundedState{}
	StateJumping  State = &jumpingState{}
)

type groundedState struct{}

type jumpingState struct{}

func (groundedState) Name() string { return "grounded" }
func (groundedState) Update(ctx *StateContext) {
	if !ctx.JumpBuffered() {
		return
	}
	ctx.ConsumeJumpBuffers()
	ctx.SetGravity(ctx.Jump.GoingUpGravity)
	ctx.Velocity[1] = ctx.Jump.InitialVelocity
	ctx.Launched()
	ctx.ChangeState(StateJumping)
}

func (jumpingState) Name() string { return "jumping" }
func (jumpingState) Update(ctx *StateContext) {
	// releasing early cuts the rise short
	if ctx.Input.JumpReleased && ctx.Velocity[1] > 0 {
		ctx.Velocity[1] *= ctx.JumpCut
	}

	if ctx.IsGrounded() {
		ctx.Landed()
		ctx.ChangeState(StateGrounded)
	}
}

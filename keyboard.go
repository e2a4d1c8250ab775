package main

import (
	"github.com/guilhermepo2/JumpyJump/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GamepadDeadzone is the stick deflection below which the axis reads zero.
const GamepadDeadzone = 0.2

// Keyboard reads A/D or the arrow keys and space, plus the first standard
// gamepad's left stick, d-pad and bottom face button.
type Keyboard struct{}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Poll must be called from ebiten's Update.
func (k *Keyboard) Poll() input.Frame {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	pressed := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp)
	released := inpututil.IsKeyJustReleased(ebiten.KeySpace) ||
		inpututil.IsKeyJustReleased(ebiten.KeyW) ||
		inpututil.IsKeyJustReleased(ebiten.KeyUp)
	held := ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeyUp)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if leftX < -GamepadDeadzone || leftX > GamepadDeadzone {
				moveX = leftX
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
				moveX = -1
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
				moveX = 1
			}

			jump := ebiten.StandardGamepadButtonRightBottom
			pressed = pressed || inpututil.IsStandardGamepadButtonJustPressed(gid, jump)
			released = released || inpututil.IsStandardGamepadButtonJustReleased(gid, jump)
			held = held || ebiten.IsStandardGamepadButtonPressed(gid, jump)
		}
	}

	return input.Frame{
		Horizontal:   moveX,
		JumpPressed:  pressed,
		JumpReleased: released,
		JumpHeld:     held,
	}.Clamped()
}

// PausePressed reports the pause toggle (Escape, P or the gamepad start button).
func (k *Keyboard) PausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	for _, gid := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

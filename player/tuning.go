package player

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTuning = errors.New("player: invalid tuning")

// Tuning is what a designer edits. Jumps are described by how high they go and
// how far the player runs before reaching the peak, not by raw gravity.
type Tuning struct {
	JumpPeakHeight           float64
	HorizontalDistanceToPeak float64
	FootSpeed                float64
	GroundDamping            float64
	AirDamping               float64
	JumpCutValue             float64
	DescendGravityMultiplier float64

	// input buffering and coyote time, in seconds
	PressedToJumpRememberTime float64
	GroundedRememberTime      float64
}

func DefaultTuning() Tuning {
	return Tuning{
		JumpPeakHeight:            2,
		HorizontalDistanceToPeak:  2,
		FootSpeed:                 5,
		GroundDamping:             1,
		AirDamping:                1,
		JumpCutValue:              0.25,
		DescendGravityMultiplier:  2,
		PressedToJumpRememberTime: 0.125,
		GroundedRememberTime:      0.125,
	}
}

func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"jump peak height", t.JumpPeakHeight},
		{"horizontal distance to peak", t.HorizontalDistanceToPeak},
		{"foot speed", t.FootSpeed},
		{"descend gravity multiplier", t.DescendGravityMultiplier},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidTuning, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"ground damping", t.GroundDamping},
		{"air damping", t.AirDamping},
		{"pressed-to-jump remember time", t.PressedToJumpRememberTime},
		{"grounded remember time", t.GroundedRememberTime},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidTuning, p.name, p.value)
		}
	}

	if !(t.JumpCutValue >= 0 && t.JumpCutValue <= 1) {
		return fmt.Errorf("%w: jump cut value must be within [0, 1], got %g", ErrInvalidTuning, t.JumpCutValue)
	}
	return nil
}

// TimeToPeak is how long a jump rises, in seconds.
func (t Tuning) TimeToPeak() float64 {
	return t.HorizontalDistanceToPeak / t.FootSpeed
}

// JumpConstants are the physical values derived from a Tuning.
type JumpConstants struct {
	InitialVelocity  float64
	GoingUpGravity   float64
	GoingDownGravity float64
}

// Derive turns the tuning into jump physics:
//
//	v0     = 2*h*s/d
//	g_up   = -2*h*s²/d²
//	g_down = g_up * multiplier
//
// so rising at v0 under g_up peaks at height h after d/s seconds.
func (t Tuning) Derive() (JumpConstants, error) {
	if err := t.Validate(); err != nil {
		return JumpConstants{}, err
	}
	h, d, s := t.JumpPeakHeight, t.HorizontalDistanceToPeak, t.FootSpeed

	up := -(2 * h * s * s) / (d * d)
	return JumpConstants{
		InitialVelocity:  (2 * h * s) / d,
		GoingUpGravity:   up,
		GoingDownGravity: up * t.DescendGravityMultiplier,
	}, nil
}

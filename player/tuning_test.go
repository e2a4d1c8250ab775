package player

import (
	"errors"
	"math"
	"testing"
)

func TestDeriveJumpConstants(t *testing.T) {
	cases := []struct {
		name     string
		h, d, s  float64
		wantV0   float64
		wantUp   float64
		wantDown float64
	}{
		{"defaults", 2, 2, 5, 10, -25, -50},
		{"tall_jump", 5, 2, 5, 25, -62.5, -125},
		{"long_jump", 1, 4, 8, 4, -8, -16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tuning.JumpPeakHeight = c.h
			tuning.HorizontalDistanceToPeak = c.d
			tuning.FootSpeed = c.s

			got, err := tuning.Derive()
			if err != nil {
				t.Fatalf("Derive: %v", err)
			}
			if got.InitialVelocity != c.wantV0 || got.GoingUpGravity != c.wantUp || got.GoingDownGravity != c.wantDown {
				t.Fatalf("got %+v, want v0=%v up=%v down=%v", got, c.wantV0, c.wantUp, c.wantDown)
			}

			// rising for d/s seconds peaks at h with no vertical speed left
			tp := tuning.TimeToPeak()
			height := got.InitialVelocity*tp + 0.5*got.GoingUpGravity*tp*tp
			speed := got.InitialVelocity + got.GoingUpGravity*tp
			if math.Abs(height-c.h) > 1e-9 || math.Abs(speed) > 1e-9 {
				t.Fatalf("peak height %v speed %v, want %v and 0", height, speed, c.h)
			}
		})
	}
}

func TestTuningValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero_distance_to_peak", func(t *Tuning) { t.HorizontalDistanceToPeak = 0 }},
		{"negative_peak", func(t *Tuning) { t.JumpPeakHeight = -1 }},
		{"zero_foot_speed", func(t *Tuning) { t.FootSpeed = 0 }},
		{"nan_foot_speed", func(t *Tuning) { t.FootSpeed = math.NaN() }},
		{"zero_multiplier", func(t *Tuning) { t.DescendGravityMultiplier = 0 }},
		{"jump_cut_above_one", func(t *Tuning) { t.JumpCutValue = 1.5 }},
		{"negative_air_damping", func(t *Tuning) { t.AirDamping = -1 }},
		{"negative_buffer", func(t *Tuning) { t.PressedToJumpRememberTime = -0.1 }},
	}

	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tuning := DefaultTuning()
			c.mutate(&tuning)
			if err := tuning.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
			if _, err := tuning.Derive(); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("Derive should refuse invalid tuning, got %v", err)
			}
		})
	}
}

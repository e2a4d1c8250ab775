package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidVolume = errors.New("physics: invalid collision volume")
	ErrInvalidRays   = errors.New("physics: at least two rays per axis are required")
	ErrNilGeometry   = errors.New("physics: geometry provider is nil")
)

// Volume is the actor's axis-aligned collision box. Probes start SkinWidth
// inside the box so their origins never sit exactly on a boundary.
type Volume struct {
	Width     float64
	Height    float64
	SkinWidth float64
}

// DefaultSkinWidth matches a 1/16 unit inset.
const DefaultSkinWidth = 0.0625

func (v Volume) Validate() error {
	if v.Width <= 0 || v.Height <= 0 || math.IsNaN(v.Width) || math.IsNaN(v.Height) {
		return fmt.Errorf("%w: size %gx%g must be positive", ErrInvalidVolume, v.Width, v.Height)
	}
	if v.SkinWidth <= 0 {
		return fmt.Errorf("%w: skin width %g must be positive", ErrInvalidVolume, v.SkinWidth)
	}
	if limit := math.Min(v.Width, v.Height) / 2; v.SkinWidth >= limit {
		return fmt.Errorf("%w: skin width %g must be below %g", ErrInvalidVolume, v.SkinWidth, limit)
	}
	return nil
}

// CollisionState holds the per-side contact flags of the last Move call.
type CollisionState struct {
	Above bool
	Right bool
	Below bool
	Left  bool

	BecameGroundedThisFrame bool
	WasGroundedLastFrame    bool
}

func (s CollisionState) HasCollision() bool {
	return s.Above || s.Right || s.Below || s.Left
}

func (s *CollisionState) reset() {
	s.Above = false
	s.Right = false
	s.Below = false
	s.Left = false
	s.BecameGroundedThisFrame = false
}

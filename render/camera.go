package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
)

// Camera maps world units (y up) to screen pixels (y down). X and Y are the
// world position at the centre of the screen.
type Camera struct {
	X, Y       float64
	Scale      float64
	Smoothness float64

	screenW, screenH float64
}

func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Scale:      common.TileSize,
		Smoothness: 0.15,
		screenW:    float64(screenW),
		screenH:    float64(screenH),
	}
}

// Follow eases the camera toward target, keeping the view inside a world of
// the given size when the world is larger than the screen.
func (c *Camera) Follow(target mgl64.Vec2, worldW, worldH float64) {
	c.X = common.Lerp(c.X, target[0], common.Clamp01(c.Smoothness))
	c.Y = common.Lerp(c.Y, target[1], common.Clamp01(c.Smoothness))
	c.X = clampAxis(c.X, c.screenW/c.Scale, worldW)
	c.Y = clampAxis(c.Y, c.screenH/c.Scale, worldH)
}

// Snap moves the camera straight onto target.
func (c *Camera) Snap(target mgl64.Vec2, worldW, worldH float64) {
	c.X = clampAxis(target[0], c.screenW/c.Scale, worldW)
	c.Y = clampAxis(target[1], c.screenH/c.Scale, worldH)
}

func clampAxis(v, view, world float64) float64 {
	if world <= view {
		return world / 2
	}
	return common.Clamp(v, view/2, world-view/2)
}

// ToScreen converts a world point to pixels.
func (c *Camera) ToScreen(p mgl64.Vec2) (float32, float32) {
	x := (p[0]-c.X)*c.Scale + c.screenW/2
	y := c.screenH/2 - (p[1]-c.Y)*c.Scale
	return float32(x), float32(y)
}

// RectToScreen returns the top-left pixel corner and pixel size of r.
func (c *Camera) RectToScreen(r common.Rect) (x, y, w, h float32) {
	x, y = c.ToScreen(mgl64.Vec2{r.MinX(), r.MaxY()})
	return x, y, float32(r.Width * c.Scale), float32(r.Height * c.Scale)
}

// Visible reports whether r overlaps the screen.
func (c *Camera) Visible(r common.Rect) bool {
	x, y, w, h := c.RectToScreen(r)
	return x+w >= 0 && y+h >= 0 && float64(x) <= c.screenW && float64(y) <= c.screenH
}

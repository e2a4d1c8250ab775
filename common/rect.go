package common

import "github.com/go-gl/mathgl/mgl64"

// Rect is an axis-aligned box. X, Y is the minimum corner (bottom-left in world
// space, where y points up).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCenter builds a rect of the given size centred on c.
func RectFromCenter(c mgl64.Vec2, width, height float64) Rect {
	return Rect{X: c[0] - width/2, Y: c[1] - height/2, Width: width, Height: height}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

func (r Rect) Center() mgl64.Vec2 {
	return mgl64.Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Inset shrinks the rect by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Intersects reports a strict overlap; rects that only share an edge do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

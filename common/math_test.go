package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSign(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-3, -1},
		{-0.0001, -1},
		{0, 1},
		{2, 1},
	}
	for _, c := range cases {
		if got := Sign(c.in); got != c.want {
			t.Fatalf("Sign(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp01AndLerp(t *testing.T) {
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.25) != 0.25 {
		t.Fatalf("Clamp01 out of range")
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("Lerp = %v, want 3", got)
	}
}

func TestRectIntersectsIsStrict(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1, Height: 1}
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 0.5, Y: 0.5, Width: 1, Height: 1}, true},
		{"shared_edge", Rect{X: 1, Y: 0, Width: 1, Height: 1}, false},
		{"apart", Rect{X: 3, Y: 3, Width: 1, Height: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.other); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRectInsetAndCenter(t *testing.T) {
	r := RectFromCenter(mgl64.Vec2{2, 3}, 2, 4).Inset(0.5)
	if r.X != 1.5 || r.Y != 1.5 || r.Width != 1 || r.Height != 3 {
		t.Fatalf("unexpected inset rect %+v", r)
	}
	if c := r.Center(); c[0] != 2 || c[1] != 3 {
		t.Fatalf("center = %v", c)
	}
}

package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws a scene with flat shapes. Squash, particles and poses come
// from the cosmetic sinks the scene reports into.
type Renderer struct {
	Camera    *Camera
	Palette   Palette
	Animator  *Animator
	Squasher  *fx.Squasher
	Particles *fx.Particles
	Debug     bool

	gridScene *scene.Scene
	grid      physics.TileGrid
}

func NewRenderer(cam *Camera, palette Palette, anim *Animator, squash *fx.Squasher, particles *fx.Particles) *Renderer {
	return &Renderer{Camera: cam, Palette: palette, Animator: anim, Squasher: squash, Particles: particles}
}

// Sinks exposes the renderer's cosmetic state as scene sinks. Sound is left to
// the caller.
func (r *Renderer) Sinks(sound fx.SoundSink) fx.Sinks {
	return fx.Sinks{
		Animation: r.Animator,
		Sound:     sound,
		Particles: r.Particles,
		Squash:    r.Squasher,
	}.OrNop()
}

func (r *Renderer) Draw(screen *ebiten.Image, s *scene.Scene) {
	screen.Fill(r.Palette.Sky)
	if s == nil {
		return
	}

	lvl := s.Level()
	r.Camera.Follow(s.PlayerActor().Position(), float64(lvl.Width), float64(lvl.Height))

	r.drawTiles(screen, s)
	for _, b := range s.Boxes() {
		c := r.Palette.Box
		if b.Activated() {
			c = r.Palette.UsedBox
		}
		bounds := b.Bounds()
		off := b.VisualOffset()
		bounds.X += off[0]
		bounds.Y += off[1]
		r.fillRect(screen, bounds, c)
	}
	for _, coin := range s.Coins() {
		if coin.Collected() {
			continue
		}
		b := coin.Bounds()
		x, y := r.Camera.ToScreen(b.Center())
		vector.DrawFilledCircle(screen, x, y, float32(b.Width/2*r.Camera.Scale), r.Palette.Coin, true)
	}
	for _, e := range s.Enemies() {
		if e.Walker.Dead() {
			continue
		}
		r.drawActor(screen, e.Walker, e.Actor, r.Palette.Enemy)
	}
	if !s.Player().Dead() {
		r.drawActor(screen, s.Player(), s.PlayerActor(), r.playerColor(s.Player()))
	}
	r.drawParticles(screen)

	if r.Debug {
		r.drawDebug(screen, s)
	}
}

func (r *Renderer) drawTiles(screen *ebiten.Image, s *scene.Scene) {
	if r.gridScene != s {
		r.gridScene = s
		r.grid = s.Level().TileGrid()
	}
	grid := r.grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := common.Rect{X: float64(x), Y: float64(y), Width: 1, Height: 1}
			switch grid.At(x, y) {
			case physics.TileSolid:
				r.fillRect(screen, tile, r.Palette.Solid)
			case physics.TileOneWay:
				tile.Y += 0.75
				tile.Height = 0.25
				r.fillRect(screen, tile, r.Palette.OneWay)
			case physics.TileHazard:
				tile.Height = 0.5
				r.fillRect(screen, tile, r.Palette.Spike)
			}
		}
	}
}

// drawActor draws the actor box scaled by its squash around the feet, with an
// eye on the side it faces.
func (r *Renderer) drawActor(screen *ebiten.Image, owner any, a *physics.Actor, c color.Color) {
	bounds := a.Bounds()
	scale := mgl64.Vec2{1, 1}
	if r.Squasher != nil {
		scale = r.Squasher.Scale(owner)
	}
	feet := mgl64.Vec2{bounds.Center()[0], bounds.MinY()}
	w, h := bounds.Width*scale[0], bounds.Height*scale[1]
	body := common.Rect{X: feet[0] - w/2, Y: feet[1], Width: w, Height: h}
	r.fillRect(screen, body, c)

	pose := r.Animator.Pose(owner)
	eyeX := body.MinX() + w*0.7
	if !pose.FacingRight {
		eyeX = body.MinX() + w*0.3
	}
	ex, ey := r.Camera.ToScreen(mgl64.Vec2{eyeX, body.MinY() + h*0.7})
	vector.DrawFilledCircle(screen, ex, ey, float32(0.08*r.Camera.Scale), r.Palette.Text, true)
}

func (r *Renderer) playerColor(p interface{ Animation() fx.Animation }) color.Color {
	switch p.Animation() {
	case fx.AnimJumping:
		return shade(r.Palette.Player, 1.15)
	case fx.AnimChangingDirection:
		return shade(r.Palette.Player, 0.8)
	default:
		return r.Palette.Player
	}
}

func (r *Renderer) drawParticles(screen *ebiten.Image) {
	if r.Particles == nil {
		return
	}
	for _, b := range r.Particles.Bursts() {
		// three puffs drifting apart and shrinking
		spread := 0.4 * b.Progress
		radius := float32((1 - b.Progress) * 0.12 * r.Camera.Scale)
		for _, dx := range []float64{-spread, 0, spread} {
			x, y := r.Camera.ToScreen(b.At.Add(mgl64.Vec2{dx, 0.1 * b.Progress}))
			vector.DrawFilledCircle(screen, x, y, radius, r.Palette.Particle, true)
		}
	}
}

func (r *Renderer) drawDebug(screen *ebiten.Image, s *scene.Scene) {
	for _, c := range s.Space().Colliders() {
		if !r.Camera.Visible(c.Bounds) {
			continue
		}
		x, y, w, h := r.Camera.RectToScreen(c.Bounds)
		vector.StrokeRect(screen, x, y, w, h, 1, r.Palette.Text, false)
	}
	p := s.Player()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"state: %s  anim: %s  grounded: %v\npos: %.2f,%.2f  vel: %.2f,%.2f  g: %.1f",
		p.State().Name(), p.Animation(), s.PlayerActor().IsGrounded(),
		p.Position()[0], p.Position()[1], p.Velocity()[0], p.Velocity()[1], p.Gravity(),
	), 8, 40)
}

func (r *Renderer) fillRect(screen *ebiten.Image, rect common.Rect, c color.Color) {
	if !r.Camera.Visible(rect) {
		return
	}
	x, y, w, h := r.Camera.RectToScreen(rect)
	vector.DrawFilledRect(screen, x, y, w, h, c, false)
}

// DrawHUD prints the counters in the top-left corner.
func DrawHUD(screen *ebiten.Image, stats scene.Stats, paused bool) {
	line := fmt.Sprintf("coins: %d  deaths: %d  fps: %.0f", stats.Coins, stats.Deaths, ebiten.ActualFPS())
	if paused {
		line += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, line, 8, 8)
}

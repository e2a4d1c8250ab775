package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/scene"
)

// cellsPerUnit keeps tiles roughly square in a terminal font.
const cellsPerUnit = 2

var (
	styleSky    = tcell.StyleDefault.Background(tcell.ColorNavy)
	styleSolid  = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Background(tcell.ColorNavy)
	styleOneWay = tcell.StyleDefault.Foreground(tcell.ColorBurlyWood).Background(tcell.ColorNavy)
	styleSpike  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleBox    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGoldenrod)
	styleUsed   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorPeru)
	styleCoin   = tcell.StyleDefault.Foreground(tcell.ColorGold).Background(tcell.ColorNavy)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorSienna).Background(tcell.ColorNavy)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorTomato).Background(tcell.ColorNavy)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// view maps world units to terminal cells. The camera follows the player on x
// and keeps the bottom of the map on the last row.
type view struct {
	width, height int
	originX       float64
}

func (v *view) follow(playerX, worldW float64) {
	viewW := float64(v.width) / cellsPerUnit
	if worldW <= viewW {
		v.originX = 0
		return
	}
	v.originX = common.Clamp(playerX-viewW/2, 0, worldW-viewW)
}

// cell returns the terminal cell of a world point.
func (v *view) cell(x, y float64, worldH float64) (int, int) {
	col := int(math.Floor((x - v.originX) * cellsPerUnit))
	row := int(math.Floor(worldH-y)) + 1
	return col, row
}

func (v *view) put(s tcell.Screen, col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 1 || col >= v.width || row >= v.height {
		return
	}
	s.SetContent(col, row, r, nil, style)
}

// putUnit fills the cells of one world unit square at (x, y).
func (v *view) putUnit(s tcell.Screen, x, y, worldH float64, r rune, style tcell.Style) {
	col, row := v.cell(x, y+1, worldH)
	for i := 0; i < cellsPerUnit; i++ {
		v.put(s, col+i, row, r, style)
	}
}

func (v *view) draw(s tcell.Screen, sc *scene.Scene, grid physics.TileGrid, paused bool) {
	s.Clear()
	v.width, v.height = s.Size()
	lvl := sc.Level()
	worldH := float64(lvl.Height)
	v.follow(sc.PlayerActor().Position()[0], float64(lvl.Width))

	for row := 1; row < v.height; row++ {
		for col := 0; col < v.width; col++ {
			s.SetContent(col, row, ' ', nil, styleSky)
		}
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			switch grid.At(x, y) {
			case physics.TileSolid:
				v.putUnit(s, float64(x), float64(y), worldH, '█', styleSolid)
			case physics.TileOneWay:
				v.putUnit(s, float64(x), float64(y), worldH, '▀', styleOneWay)
			case physics.TileHazard:
				v.putUnit(s, float64(x), float64(y), worldH, '^', styleSpike)
			}
		}
	}

	for _, b := range sc.Boxes() {
		style, r := styleBox, '?'
		if b.Activated() {
			style, r = styleUsed, ' '
		}
		bounds := b.Bounds()
		v.putUnit(s, bounds.X, bounds.Y, worldH, r, style)
	}
	for _, c := range sc.Coins() {
		if c.Collected() {
			continue
		}
		col, row := v.cell(c.Bounds().Center()[0], c.Bounds().Center()[1], worldH)
		v.put(s, col, row, 'o', styleCoin)
	}
	for _, e := range sc.Enemies() {
		if e.Walker.Dead() {
			continue
		}
		p := e.Actor.Position()
		col, row := v.cell(p[0], p[1], worldH)
		v.put(s, col, row, 'G', styleEnemy)
	}
	if p := sc.Player(); !p.Dead() {
		pos := p.Position()
		col, row := v.cell(pos[0], pos[1], worldH)
		glyph := '>'
		if !p.FacingRight() {
			glyph = '<'
		}
		v.put(s, col, row, '@', stylePlayer)
		v.put(s, col+1, row, glyph, stylePlayer)
	}

	stats := sc.Stats()
	hud := fmt.Sprintf(" coins %d  deaths %d  state %s  [arrows/wasd move, space jump, p pause, q quit]",
		stats.Coins, stats.Deaths, sc.Player().State().Name())
	if paused {
		hud += "  PAUSED"
	}
	for i, r := range hud {
		if i >= v.width {
			break
		}
		s.SetContent(i, 0, r, nil, styleHUD)
	}
	s.Show()
}

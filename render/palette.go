package render

import (
	"image/color"

	"github.com/guilhermepo2/JumpyJump/prefabs"
	"golang.org/x/image/colornames"
)

type Palette struct {
	Sky      color.Color
	Solid    color.Color
	OneWay   color.Color
	Spike    color.Color
	Player   color.Color
	Enemy    color.Color
	Box      color.Color
	UsedBox  color.Color
	Coin     color.Color
	Particle color.Color
	Text     color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Sky:      colornames.Skyblue,
		Solid:    colornames.Saddlebrown,
		OneWay:   colornames.Burlywood,
		Spike:    colornames.Silver,
		Player:   colornames.Tomato,
		Enemy:    colornames.Sienna,
		Box:      colornames.Goldenrod,
		UsedBox:  colornames.Peru,
		Coin:     colornames.Gold,
		Particle: colornames.Whitesmoke,
		Text:     colornames.White,
	}
}

// WithPrefabs overrides actor colours with the ones set in the prefabs.
func (p Palette) WithPrefabs(pl prefabs.PlayerSpec, g prefabs.GoombaSpec, b prefabs.QuestionBoxSpec) Palette {
	p.Player = pl.Color.ColorOr(p.Player)
	p.Enemy = g.Color.ColorOr(p.Enemy)
	p.Box = b.Color.ColorOr(p.Box)
	p.UsedBox = b.UsedColor.ColorOr(p.UsedBox)
	return p
}

// shade scales a colour's RGB by f, keeping alpha.
func shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		s := float64(v>>8) * f
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: uint8(a >> 8)}
}

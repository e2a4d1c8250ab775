package physics

import "github.com/guilhermepo2/JumpyJump/common"

// TileKind is the collision meaning of one grid cell.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileSolid
	TileOneWay
	TileHazard
)

// TileGrid is a row-major collision grid in world units. Row 0 is the bottom
// row and each tile is one unit square.
type TileGrid struct {
	Width  int
	Height int
	Tiles  []TileKind
	// Bounds adds solid walls along the left, right and top edges.
	Bounds bool
	// HazardData is attached to every hazard collider.
	HazardData any
}

func (g TileGrid) At(x, y int) TileKind {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return TileEmpty
	}
	idx := y*g.Width + x
	if idx >= len(g.Tiles) {
		return TileEmpty
	}
	return g.Tiles[idx]
}

// AddTileGrid registers colliders for a tile grid. Contiguous solid tiles are
// merged into as few rectangles as possible so actors do not catch on the
// seams between tiles. One-way tiles merge along their row only. Hazards stay
// individual half-height boxes sitting on the bottom of their tile.
func (s *Space) AddTileGrid(g TileGrid) []*Collider {
	if s == nil || g.Width <= 0 || g.Height <= 0 {
		return nil
	}

	var out []*Collider
	processed := make([]bool, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if processed[idx] {
				continue
			}
			kind := g.At(x, y)
			processed[idx] = true
			switch kind {
			case TileEmpty:
				continue
			case TileHazard:
				bounds := common.Rect{X: float64(x), Y: float64(y), Width: 1, Height: 0.5}
				out = append(out, s.AddBox(bounds, LayerHazard, g.HazardData))
				continue
			}

			w := 1
			for x+w < g.Width && !processed[y*g.Width+x+w] && g.At(x+w, y) == kind {
				w++
			}

			h := 1
			if kind == TileSolid {
			heightLoop:
				for y+h < g.Height {
					for xi := x; xi < x+w; xi++ {
						idx2 := (y+h)*g.Width + xi
						if processed[idx2] || g.At(xi, y+h) != kind {
							break heightLoop
						}
					}
					h++
				}
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}

			layer := LayerSolid
			if kind == TileOneWay {
				layer = LayerOneWay
			}
			bounds := common.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
			out = append(out, s.AddBox(bounds, layer, nil))
		}
	}

	if g.Bounds {
		worldW := float64(g.Width)
		worldH := float64(g.Height)
		const thickness = 1.0
		walls := []common.Rect{
			{X: -thickness, Y: 0, Width: thickness, Height: worldH + thickness},
			{X: worldW, Y: 0, Width: thickness, Height: worldH + thickness},
			{X: -thickness, Y: worldH, Width: worldW + 2*thickness, Height: thickness},
		}
		for _, wall := range walls {
			out = append(out, s.AddBox(wall, LayerSolid, nil))
		}
	}

	return out
}

package levels

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/physics"
)

var (
	ErrInvalidLevel  = errors.New("levels: invalid level")
	ErrUnknownEntity = errors.New("levels: unknown entity type")
)

// Entity types placed by level files.
const (
	EntityPlayer      = "player"
	EntityGoomba      = "goomba"
	EntityQuestionBox = "question_box"
	EntityCoin        = "coin"
)

// Level is a tile map. Layers are flat row-major grids with row 0 at the top
// of the map; a non-zero cell is a filled tile.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

// LayerMeta says what a layer's tiles do. A layer with no flag set is
// decoration only.
type LayerMeta struct {
	Physics bool `json:"physics"`
	OneWay  bool `json:"one_way"`
	Hazard  bool `json:"hazard"`
}

// Entity is placed on a tile; X, Y use the same top-down rows as the layers.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if len(l.LayerMeta) != 0 && len(l.LayerMeta) != len(l.Layers) {
		return fmt.Errorf("%w: %d layers but %d layer_meta entries", ErrInvalidLevel, len(l.Layers), len(l.LayerMeta))
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d cells, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}

	players := 0
	for i, e := range l.Entities {
		switch e.Type {
		case EntityPlayer:
			players++
		case EntityGoomba, EntityQuestionBox, EntityCoin:
		default:
			return fmt.Errorf("%w: %q (entity %d)", ErrUnknownEntity, e.Type, i)
		}
		if e.X < 0 || e.Y < 0 || e.X >= l.Width || e.Y >= l.Height {
			return fmt.Errorf("%w: %s at (%d,%d) is outside the map", ErrInvalidLevel, e.Type, e.X, e.Y)
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: want exactly one player spawn, found %d", ErrInvalidLevel, players)
	}
	return nil
}

// TileGrid flattens the layers into a collision grid, flipping rows so row 0
// is the bottom. Solid beats one-way, which beats hazard, when layers overlap.
func (l *Level) TileGrid() physics.TileGrid {
	g := physics.TileGrid{
		Width:  l.Width,
		Height: l.Height,
		Tiles:  make([]physics.TileKind, l.Width*l.Height),
		Bounds: true,
	}
	for i, layer := range l.Layers {
		kind := l.layerKind(i)
		if kind == physics.TileEmpty {
			continue
		}
		for idx, v := range layer {
			if v == 0 {
				continue
			}
			row, col := idx/l.Width, idx%l.Width
			cell := (l.Height-1-row)*l.Width + col
			if rank(kind) > rank(g.Tiles[cell]) {
				g.Tiles[cell] = kind
			}
		}
	}
	return g
}

func (l *Level) layerKind(i int) physics.TileKind {
	if len(l.LayerMeta) == 0 {
		// without metadata every layer is solid ground
		return physics.TileSolid
	}
	m := l.LayerMeta[i]
	switch {
	case m.Physics:
		return physics.TileSolid
	case m.OneWay:
		return physics.TileOneWay
	case m.Hazard:
		return physics.TileHazard
	default:
		return physics.TileEmpty
	}
}

func rank(k physics.TileKind) int {
	switch k {
	case physics.TileSolid:
		return 3
	case physics.TileOneWay:
		return 2
	case physics.TileHazard:
		return 1
	default:
		return 0
	}
}

// Center is the world position (y up) of the middle of the entity's tile.
func (l *Level) Center(e Entity) mgl64.Vec2 {
	return mgl64.Vec2{float64(e.X) + 0.5, float64(l.Height-1-e.Y) + 0.5}
}

// Player returns the player spawn.
func (l *Level) Player() (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == EntityPlayer {
			return e, true
		}
	}
	return Entity{}, false
}

// FloatProp reads a numeric property, falling back to def.
func (e Entity) FloatProp(name string, def float64) float64 {
	if v, ok := e.Props[name].(float64); ok {
		return v
	}
	return def
}

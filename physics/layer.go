package physics

import "fmt"

// Layer is a bitmask of world-geometry categories.
type Layer uint

const LayerNone Layer = 0

const (
	LayerSolid Layer = 1 << iota
	LayerOneWay
	LayerHazard
	LayerPickup
	LayerEnemy
)

// LayerAll matches every category.
const LayerAll = ^Layer(0)

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

// LayerMasks selects which categories an actor treats as solid, as triggers and
// as one-way platforms. One-way platforms are solid platforms that only block
// from above, so OneWay must be a subset of Platform.
type LayerMasks struct {
	Platform Layer
	Trigger  Layer
	OneWay   Layer
}

// normalized folds the one-way set into the platform set so we can land on
// one-way platforms from above.
func (m LayerMasks) normalized() LayerMasks {
	m.Platform |= m.OneWay
	return m
}

// withoutOneWay is the platform mask with one-way platforms removed.
func (m LayerMasks) withoutOneWay() Layer {
	return m.Platform &^ m.OneWay
}

var layerNames = map[string]Layer{
	"solid":   LayerSolid,
	"one_way": LayerOneWay,
	"hazard":  LayerHazard,
	"pickup":  LayerPickup,
	"enemy":   LayerEnemy,
}

// ParseLayers combines layer names such as "solid" or "one_way" into a mask.
func ParseLayers(names []string) (Layer, error) {
	var mask Layer
	for _, name := range names {
		l, ok := layerNames[name]
		if !ok {
			return LayerNone, fmt.Errorf("physics: unknown layer %q", name)
		}
		mask |= l
	}
	return mask, nil
}

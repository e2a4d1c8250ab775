package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/jakecoffman/cp"
)

// Hit is the result of a single probe.
type Hit struct {
	Point    mgl64.Vec2
	Normal   mgl64.Vec2
	Distance float64
	Collider *Collider
}

// Geometry is the read-only world an actor probes against.
type Geometry interface {
	// Probe fires a ray from origin along direction and returns the nearest
	// collider within maxDistance whose layer is in mask.
	Probe(origin, direction mgl64.Vec2, maxDistance float64, mask Layer) (Hit, bool)
	// Overlap returns the colliders in mask strictly overlapping bounds.
	Overlap(bounds common.Rect, mask Layer) []*Collider
}

// Collider is a box registered in a Space. Data carries the gameplay object
// that owns it.
type Collider struct {
	Layer  Layer
	Bounds common.Rect
	Data   any

	id    int
	shape *cp.Shape
}

// probeTolerance is how far past its length a ray still reports a hit.
const probeTolerance = 1e-7

// Space is a Geometry backed by a chipmunk space. Colliders live on the
// static body; the space is never stepped, only queried.
type Space struct {
	space     *cp.Space
	colliders map[*cp.Shape]*Collider
	order     []*Collider
	nextID    int
}

func NewSpace() *Space {
	return &Space{
		space:     cp.NewSpace(),
		colliders: make(map[*cp.Shape]*Collider),
	}
}

// AddBox registers a box collider on layer.
func (s *Space) AddBox(bounds common.Rect, layer Layer, data any) *Collider {
	if s == nil {
		return nil
	}
	s.nextID++
	c := &Collider{Layer: layer, Bounds: bounds, Data: data, id: s.nextID}
	s.attach(c)
	s.order = append(s.order, c)
	return c
}

func (s *Space) attach(c *Collider) {
	bb := cp.BB{L: c.Bounds.MinX(), B: c.Bounds.MinY(), R: c.Bounds.MaxX(), T: c.Bounds.MaxY()}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: uint(c.Layer), Mask: uint(LayerAll)})
	s.space.AddShape(shape)
	c.shape = shape
	s.colliders[shape] = c
}

func (s *Space) detach(c *Collider) {
	if c.shape == nil {
		return
	}
	s.space.RemoveShape(c.shape)
	delete(s.colliders, c.shape)
	c.shape = nil
}

// Move relocates a collider.
func (s *Space) Move(c *Collider, bounds common.Rect) {
	if s == nil || c == nil || c.shape == nil {
		return
	}
	if c.Bounds == bounds {
		return
	}
	s.detach(c)
	c.Bounds = bounds
	s.attach(c)
}

// Remove unregisters a collider. Removing twice is a no-op.
func (s *Space) Remove(c *Collider) {
	if s == nil || c == nil || c.shape == nil {
		return
	}
	s.detach(c)
	for i, other := range s.order {
		if other == c {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Colliders returns the registered colliders in insertion order.
func (s *Space) Colliders() []*Collider {
	if s == nil {
		return nil
	}
	return append([]*Collider(nil), s.order...)
}

func (s *Space) Probe(origin, direction mgl64.Vec2, maxDistance float64, mask Layer) (Hit, bool) {
	if s == nil || maxDistance <= 0 || mask == LayerNone {
		return Hit{}, false
	}
	dirLen := direction.Len()
	if dirLen == 0 {
		return Hit{}, false
	}
	dir := direction.Mul(1 / dirLen)
	// the segment runs slightly past maxDistance so a face lying exactly at
	// the end of the ray still registers
	reach := maxDistance + probeTolerance
	end := origin.Add(dir.Mul(reach))

	filter := cp.ShapeFilter{Group: 0, Categories: uint(LayerAll), Mask: uint(mask)}
	info := s.space.SegmentQueryFirst(
		cp.Vector{X: origin[0], Y: origin[1]},
		cp.Vector{X: end[0], Y: end[1]},
		0,
		filter,
	)
	if info.Shape == nil {
		return Hit{}, false
	}
	c, ok := s.colliders[info.Shape]
	if !ok {
		return Hit{}, false
	}
	distance := math.Min(info.Alpha*reach, maxDistance)
	return Hit{
		Point:    origin.Add(dir.Mul(distance)),
		Normal:   snapNormal(mgl64.Vec2{info.Normal.X, info.Normal.Y}),
		Distance: distance,
		Collider: c,
	}, true
}

func (s *Space) Overlap(bounds common.Rect, mask Layer) []*Collider {
	if s == nil || mask == LayerNone {
		return nil
	}
	bb := cp.BB{L: bounds.MinX(), B: bounds.MinY(), R: bounds.MaxX(), T: bounds.MaxY()}
	filter := cp.ShapeFilter{Group: 0, Categories: uint(LayerAll), Mask: uint(mask)}

	var out []*Collider
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		c, ok := s.colliders[shape]
		if !ok || !c.Bounds.Intersects(bounds) {
			return
		}
		out = append(out, c)
	}, nil)
	// the spatial index has no stable order; report in registration order
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// snapNormal rounds away float noise so axis-aligned faces report exact unit
// normals.
func snapNormal(n mgl64.Vec2) mgl64.Vec2 {
	const eps = 1e-9
	for i := range n {
		switch {
		case math.Abs(n[i]) < eps:
			n[i] = 0
		case math.Abs(n[i]-1) < eps:
			n[i] = 1
		case math.Abs(n[i]+1) < eps:
			n[i] = -1
		}
	}
	return n
}

package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
)

const (
	DefaultHorizontalRays = 6
	DefaultVerticalRays   = 4

	// skinWidthFudge is how close to a direct contact a clamped probe must be
	// before the remaining rows are skipped.
	skinWidthFudge = 0.001
)

// ErrNoRegistry is returned when an actor asks for its own collider but the
// geometry cannot register one.
var ErrNoRegistry = errors.New("physics: geometry cannot register actor colliders")

// Registry is implemented by geometry that can hold an actor's own collider so
// other actors can detect it as a trigger.
type Registry interface {
	AddBox(bounds common.Rect, layer Layer, data any) *Collider
	Move(c *Collider, bounds common.Rect)
	Remove(c *Collider)
}

// TriggerPhase tells a trigger listener how an overlap changed.
type TriggerPhase int

const (
	TriggerEnter TriggerPhase = iota
	TriggerStay
	TriggerExit
)

func (p TriggerPhase) String() string {
	switch p {
	case TriggerEnter:
		return "enter"
	case TriggerStay:
		return "stay"
	case TriggerExit:
		return "exit"
	default:
		return fmt.Sprintf("TriggerPhase(%d)", int(p))
	}
}

// CollisionListener receives every probe hit of a Move call, in probe order,
// after the actor has been translated.
type CollisionListener func(hit Hit)

// TriggerListener receives overlap changes with trigger colliders.
type TriggerListener func(phase TriggerPhase, c *Collider)

// ActorConfig configures a new Actor.
type ActorConfig struct {
	Volume Volume
	Masks  LayerMasks
	// Position is the centre of the collision box.
	Position mgl64.Vec2

	HorizontalRays int
	VerticalRays   int

	// Layer, when set, registers the actor's own box in the geometry with Data
	// attached, so other actors can overlap it.
	Layer Layer
	Data  any
}

type rayOrigins struct {
	topLeft     mgl64.Vec2
	topRight    mgl64.Vec2
	bottomRight mgl64.Vec2
	bottomLeft  mgl64.Vec2
}

// Actor is a kinematic box mover. It never penetrates platforms: Move probes
// along the requested displacement and clamps it at the first obstruction.
type Actor struct {
	geometry Geometry
	registry Registry
	self     *Collider

	volume Volume
	masks  LayerMasks

	horizontalRays int
	verticalRays   int
	// verticalDistanceBetweenRays spaces the horizontal probes along the
	// box height; horizontalDistanceBetweenRays spaces the vertical probes
	// along its width.
	verticalDistanceBetweenRays   float64
	horizontalDistanceBetweenRays float64

	position mgl64.Vec2
	velocity mgl64.Vec2
	state    CollisionState
	origins  rayOrigins

	hitsThisFrame []Hit
	triggers      *orderedmap.OrderedMap[*Collider, bool]

	collisionListeners []CollisionListener
	triggerListeners   []TriggerListener

	destroyed bool
}

func NewActor(geometry Geometry, cfg ActorConfig) (*Actor, error) {
	if geometry == nil {
		return nil, ErrNilGeometry
	}
	if err := cfg.Volume.Validate(); err != nil {
		return nil, err
	}
	if cfg.HorizontalRays == 0 {
		cfg.HorizontalRays = DefaultHorizontalRays
	}
	if cfg.VerticalRays == 0 {
		cfg.VerticalRays = DefaultVerticalRays
	}
	if cfg.HorizontalRays < 2 || cfg.VerticalRays < 2 {
		return nil, fmt.Errorf("%w: got %d horizontal, %d vertical", ErrInvalidRays, cfg.HorizontalRays, cfg.VerticalRays)
	}

	a := &Actor{
		geometry:       geometry,
		volume:         cfg.Volume,
		masks:          cfg.Masks.normalized(),
		horizontalRays: cfg.HorizontalRays,
		verticalRays:   cfg.VerticalRays,
		position:       cfg.Position,
		triggers:       orderedmap.NewOrderedMap[*Collider, bool](),
	}
	a.recalculateDistanceBetweenRays()

	if cfg.Layer != LayerNone {
		registry, ok := geometry.(Registry)
		if !ok {
			return nil, ErrNoRegistry
		}
		a.registry = registry
		a.self = registry.AddBox(a.Bounds(), cfg.Layer, cfg.Data)
	}

	return a, nil
}

func (a *Actor) recalculateDistanceBetweenRays() {
	useableHeight := a.volume.Height - 2*a.volume.SkinWidth
	a.verticalDistanceBetweenRays = useableHeight / float64(a.horizontalRays-1)

	useableWidth := a.volume.Width - 2*a.volume.SkinWidth
	a.horizontalDistanceBetweenRays = useableWidth / float64(a.verticalRays-1)
}

// calculateRaycastOrigins insets the current bounds by the skin width.
func (a *Actor) calculateRaycastOrigins() {
	b := a.Bounds().Inset(a.volume.SkinWidth)
	a.origins = rayOrigins{
		topLeft:     mgl64.Vec2{b.MinX(), b.MaxY()},
		topRight:    mgl64.Vec2{b.MaxX(), b.MaxY()},
		bottomRight: mgl64.Vec2{b.MaxX(), b.MinY()},
		bottomLeft:  mgl64.Vec2{b.MinX(), b.MinY()},
	}
}

// Move translates the actor by as much of delta as the world allows and
// returns the achieved velocity. When dt is zero the previous velocity is
// kept.
func (a *Actor) Move(delta mgl64.Vec2, dt float64) mgl64.Vec2 {
	if a.destroyed {
		return a.velocity
	}

	a.state.WasGroundedLastFrame = a.state.Below
	a.state.reset()
	a.hitsThisFrame = a.hitsThisFrame[:0]
	a.calculateRaycastOrigins()

	if delta[0] != 0 {
		a.moveHorizontal(&delta)
	}
	if delta[1] != 0 {
		a.moveVertical(&delta)
	}

	a.position = a.position.Add(delta)
	if dt > 0 {
		a.velocity = delta.Mul(1 / dt)
	}

	if !a.state.WasGroundedLastFrame && a.state.Below {
		a.state.BecameGroundedThisFrame = true
	}

	a.syncSelf()

	for _, hit := range a.hitsThisFrame {
		for _, fn := range a.collisionListeners {
			fn(hit)
		}
	}

	a.updateTriggers()

	return a.velocity
}

func (a *Actor) moveHorizontal(delta *mgl64.Vec2) {
	skin := a.volume.SkinWidth
	goingRight := delta[0] > 0
	rayDistance := math.Abs(delta[0]) + skin

	direction := mgl64.Vec2{-1, 0}
	initial := a.origins.bottomLeft
	if goingRight {
		direction = mgl64.Vec2{1, 0}
		initial = a.origins.bottomRight
	}

	for i := 0; i < a.horizontalRays; i++ {
		ray := mgl64.Vec2{initial[0], initial[1] + float64(i)*a.verticalDistanceBetweenRays}

		// while grounded only the bottom row sees one-way platforms, so the
		// platform we stand on never blocks us sideways
		mask := a.masks.withoutOneWay()
		if i == 0 && a.state.WasGroundedLastFrame {
			mask = a.masks.Platform
		}

		hit, ok := a.geometry.Probe(ray, direction, rayDistance, mask)
		if !ok {
			continue
		}

		rayDistance = hit.Distance
		clamped := math.Max(hit.Distance-skin, 0)
		if goingRight {
			delta[0] = clamped
			a.state.Right = true
		} else {
			delta[0] = -clamped
			a.state.Left = true
		}
		a.hitsThisFrame = append(a.hitsThisFrame, hit)

		if rayDistance < skin+skinWidthFudge {
			break
		}
	}
}

func (a *Actor) moveVertical(delta *mgl64.Vec2) {
	skin := a.volume.SkinWidth
	goingUp := delta[1] > 0
	rayDistance := math.Abs(delta[1]) + skin

	direction := mgl64.Vec2{0, -1}
	initial := a.origins.bottomLeft
	if goingUp {
		direction = mgl64.Vec2{0, 1}
		initial = a.origins.topLeft
	}
	// probe from where the horizontal pass put us
	initial[0] += delta[0]

	mask := a.masks.Platform
	if goingUp && !a.state.WasGroundedLastFrame {
		mask = a.masks.withoutOneWay()
	}

	for i := 0; i < a.verticalRays; i++ {
		ray := mgl64.Vec2{initial[0] + float64(i)*a.horizontalDistanceBetweenRays, initial[1]}

		hit, ok := a.geometry.Probe(ray, direction, rayDistance, mask)
		if !ok {
			continue
		}

		rayDistance = hit.Distance
		clamped := math.Max(hit.Distance-skin, 0)
		if goingUp {
			delta[1] = clamped
			a.state.Above = true
		} else {
			delta[1] = -clamped
			a.state.Below = true
		}
		a.hitsThisFrame = append(a.hitsThisFrame, hit)

		if rayDistance < skin+skinWidthFudge {
			break
		}
	}
}

func (a *Actor) updateTriggers() {
	if a.masks.Trigger == LayerNone || a.destroyed {
		return
	}

	current := a.geometry.Overlap(a.Bounds(), a.masks.Trigger)
	seen := make(map[*Collider]bool, len(current))
	for _, c := range current {
		if c == a.self {
			continue
		}
		seen[c] = true
		if _, ok := a.triggers.Get(c); !ok {
			a.triggers.Set(c, true)
		}
	}

	type event struct {
		phase TriggerPhase
		c     *Collider
	}
	var events []event
	var gone []*Collider
	for el := a.triggers.Front(); el != nil; el = el.Next() {
		c := el.Key
		switch {
		case !seen[c]:
			gone = append(gone, c)
			events = append(events, event{TriggerExit, c})
		case el.Value:
			a.triggers.Set(c, false)
			events = append(events, event{TriggerEnter, c})
		default:
			events = append(events, event{TriggerStay, c})
		}
	}
	for _, c := range gone {
		a.triggers.Delete(c)
	}

	for _, ev := range events {
		for _, fn := range a.triggerListeners {
			fn(ev.phase, ev.c)
		}
	}
}

func (a *Actor) syncSelf() {
	if a.self == nil || a.registry == nil {
		return
	}
	a.registry.Move(a.self, a.Bounds())
}

// IsNear fires the horizontal probe pattern downwards from origin (a top
// corner) without moving the actor or touching its collision state.
func (a *Actor) IsNear(origin, direction mgl64.Vec2, maxDistance float64) bool {
	for i := 0; i < a.horizontalRays; i++ {
		ray := mgl64.Vec2{origin[0], origin[1] - float64(i)*a.verticalDistanceBetweenRays}
		if _, ok := a.geometry.Probe(ray, direction, maxDistance, a.masks.Platform); ok {
			return true
		}
	}
	return false
}

// IsNearLeft reports a platform within distance of the left face.
func (a *Actor) IsNearLeft(distance float64) bool {
	b := a.Bounds().Inset(a.volume.SkinWidth)
	return a.IsNear(mgl64.Vec2{b.MinX(), b.MaxY()}, mgl64.Vec2{-1, 0}, distance+a.volume.SkinWidth)
}

// IsNearRight reports a platform within distance of the right face.
func (a *Actor) IsNearRight(distance float64) bool {
	b := a.Bounds().Inset(a.volume.SkinWidth)
	return a.IsNear(mgl64.Vec2{b.MaxX(), b.MaxY()}, mgl64.Vec2{1, 0}, distance+a.volume.SkinWidth)
}

func (a *Actor) IsGrounded() bool {
	return a.state.Below
}

func (a *Actor) CollisionState() CollisionState {
	return a.state
}

func (a *Actor) Velocity() mgl64.Vec2 {
	return a.velocity
}

func (a *Actor) Position() mgl64.Vec2 {
	return a.position
}

func (a *Actor) Volume() Volume {
	return a.volume
}

func (a *Actor) Masks() LayerMasks {
	return a.masks
}

func (a *Actor) Bounds() common.Rect {
	return common.RectFromCenter(a.position, a.volume.Width, a.volume.Height)
}

// SetPosition teleports the actor and clears its contact state.
func (a *Actor) SetPosition(p mgl64.Vec2) {
	a.position = p
	a.velocity = mgl64.Vec2{}
	a.state = CollisionState{}
	a.syncSelf()
}

// Hits returns a copy of the probe hits recorded by the last Move call.
func (a *Actor) Hits() []Hit {
	return append([]Hit(nil), a.hitsThisFrame...)
}

// Collider returns the actor's own collider, if it registered one.
func (a *Actor) Collider() *Collider {
	return a.self
}

func (a *Actor) AddCollisionListener(fn CollisionListener) {
	if fn == nil {
		return
	}
	a.collisionListeners = append(a.collisionListeners, fn)
}

func (a *Actor) AddTriggerListener(fn TriggerListener) {
	if fn == nil {
		return
	}
	a.triggerListeners = append(a.triggerListeners, fn)
}

// Destroy removes the actor's own collider and drops its listeners. Further
// Move calls do nothing.
func (a *Actor) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	if a.self != nil && a.registry != nil {
		a.registry.Remove(a.self)
	}
	a.self = nil
	a.collisionListeners = nil
	a.triggerListeners = nil
}

func (a *Actor) Destroyed() bool {
	return a.destroyed
}

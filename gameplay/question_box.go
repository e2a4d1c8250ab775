package gameplay

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/sirupsen/logrus"
)

type BoxConfig struct {
	// BounceHeight is how far the sprite pops up when bumped, in units.
	BounceHeight float64
	// BounceTime is the duration of each half of the bounce.
	BounceTime time.Duration
}

func DefaultBoxConfig() BoxConfig {
	return BoxConfig{BounceHeight: 0.5, BounceTime: 100 * time.Millisecond}
}

// QuestionBox is a solid block that pays out a coin the first time the player
// bumps it from below.
type QuestionBox struct {
	bounds   common.Rect
	collider *physics.Collider
	cfg      BoxConfig
	sched    *timer.Scheduler
	sinks    fx.Sinks
	log      logrus.FieldLogger

	activated bool
	offset    float64
	onBump    []func()
}

// NewQuestionBox registers the box as a solid collider.
func NewQuestionBox(reg physics.Registry, bounds common.Rect, cfg BoxConfig, sched *timer.Scheduler, sinks fx.Sinks, logger logrus.FieldLogger) *QuestionBox {
	b := &QuestionBox{
		bounds: bounds,
		cfg:    cfg,
		sched:  sched,
		sinks:  sinks.OrNop(),
		log:    common.LoggerOrDiscard(logger).WithField("entity", "question_box"),
	}
	b.collider = reg.AddBox(bounds, physics.LayerSolid, b)
	b.sinks.Animation.PlayAnimation(b, fx.AnimBoxActive)
	return b
}

func (b *QuestionBox) BumpedByPlayer() {
	if b.activated {
		return
	}
	b.activated = true
	b.log.WithField("position", b.bounds.Center()).Debug("question box bumped")

	b.sinks.Sound.PlaySound(fx.SoundCoin)
	b.sinks.Animation.PlayAnimation(b, fx.AnimBoxUsed)
	b.bounce()
	for _, fn := range b.onBump {
		fn()
	}
}

// bounce pops the sprite up and back down. Only the visual offset moves; the
// collider stays where it is.
func (b *QuestionBox) bounce() {
	h := b.cfg.BounceHeight
	b.sched.Tween(b, b.cfg.BounceTime, func(p float64) {
		b.offset = common.Lerp(0, h, p)
		if p < 1 {
			return
		}
		b.sched.Tween(b, b.cfg.BounceTime, func(p float64) {
			b.offset = common.Lerp(h, 0, p)
		})
	})
}

// OnBump registers fn to run on the first bump.
func (b *QuestionBox) OnBump(fn func()) {
	if fn != nil {
		b.onBump = append(b.onBump, fn)
	}
}

func (b *QuestionBox) Activated() bool {
	return b.activated
}

// VisualOffset is where the sprite is drawn relative to the collider.
func (b *QuestionBox) VisualOffset() mgl64.Vec2 {
	return mgl64.Vec2{0, b.offset}
}

func (b *QuestionBox) Bounds() common.Rect {
	return b.bounds
}

func (b *QuestionBox) Collider() *physics.Collider {
	return b.collider
}

// Destroy cancels the bounce and resets the sprite.
func (b *QuestionBox) Destroy() {
	b.sched.Cancel(b)
	b.offset = 0
}

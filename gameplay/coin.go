package gameplay

import (
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/sirupsen/logrus"
)

// Coin is a pickup trigger. Collecting it removes it from the world.
type Coin struct {
	reg       physics.Registry
	bounds    common.Rect
	collider  *physics.Collider
	sinks     fx.Sinks
	log       logrus.FieldLogger
	collected bool
	onCollect []func()
}

func NewCoin(reg physics.Registry, bounds common.Rect, sinks fx.Sinks, logger logrus.FieldLogger) *Coin {
	c := &Coin{
		reg:    reg,
		bounds: bounds,
		sinks:  sinks.OrNop(),
		log:    common.LoggerOrDiscard(logger).WithField("entity", "coin"),
	}
	c.collider = reg.AddBox(bounds, physics.LayerPickup, c)
	return c
}

func (c *Coin) Collect() {
	if c.collected {
		return
	}
	c.collected = true
	c.sinks.Sound.PlaySound(fx.SoundCoin)
	c.reg.Remove(c.collider)
	c.log.WithField("position", c.bounds.Center()).Debug("coin collected")
	for _, fn := range c.onCollect {
		fn()
	}
}

// OnCollect registers fn to run when the coin is collected.
func (c *Coin) OnCollect(fn func()) {
	if fn != nil {
		c.onCollect = append(c.onCollect, fn)
	}
}

func (c *Coin) Collected() bool {
	return c.collected
}

func (c *Coin) Bounds() common.Rect {
	return c.bounds
}

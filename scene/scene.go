package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/enemy"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/gameplay"
	"github.com/guilhermepo2/JumpyJump/input"
	"github.com/guilhermepo2/JumpyJump/levels"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/player"
	"github.com/guilhermepo2/JumpyJump/prefabs"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/sirupsen/logrus"
)

var ErrNoLevel = errors.New("scene: level is nil")

// KillDepth is how far below the bottom of the map an actor may fall before it
// is considered lost.
const KillDepth = 2.0

// CoinSize is the side of a coin's pickup box.
const CoinSize = 0.5

// Config is everything needed to build a playable level. Zero-value specs are
// replaced with the prefab defaults.
type Config struct {
	Level  *levels.Level
	Player prefabs.PlayerSpec
	Goomba prefabs.GoombaSpec
	Box    prefabs.QuestionBoxSpec

	Sinks     fx.Sinks
	Scheduler *timer.Scheduler
	Logger    logrus.FieldLogger

	// Stats carries counters over from the previous scene on restart.
	Stats Stats
}

type Stats struct {
	Coins  int
	Deaths int
}

// Enemy pairs a walker with the actor it drives.
type Enemy struct {
	Walker *enemy.Walker
	Actor  *physics.Actor
}

// Scene owns one run of a level: the collision space, every actor and
// gameplay object, and the wiring between them.
type Scene struct {
	level *levels.Level
	space *physics.Space
	sched *timer.Scheduler
	sinks fx.Sinks
	log   logrus.FieldLogger

	playerActor *physics.Actor
	player      *player.Controller
	enemies     []Enemy
	boxes       []*gameplay.QuestionBox
	coins       []*gameplay.Coin
	spike       *gameplay.Spike

	killY     float64
	ticks     int
	stats     Stats
	restart   bool
	destroyed bool
}

func New(cfg Config) (*Scene, error) {
	if cfg.Level == nil {
		return nil, ErrNoLevel
	}
	if cfg.Player.Name == "" {
		cfg.Player = prefabs.DefaultPlayerSpec()
	}
	if cfg.Goomba.Name == "" {
		cfg.Goomba = prefabs.DefaultGoombaSpec()
	}
	if cfg.Box.Name == "" {
		cfg.Box = prefabs.DefaultQuestionBoxSpec()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = timer.New()
	}

	s := &Scene{
		level: cfg.Level,
		space: physics.NewSpace(),
		sched: cfg.Scheduler,
		sinks: cfg.Sinks.OrNop(),
		log:   common.LoggerOrDiscard(cfg.Logger).WithField("level", cfg.Level.Name),
		killY: -KillDepth,
		stats: cfg.Stats,
	}
	s.spike = gameplay.NewSpike(s.sinks)

	grid := cfg.Level.TileGrid()
	grid.HazardData = s.spike
	tiles := s.space.AddTileGrid(grid)

	for _, e := range cfg.Level.Entities {
		var err error
		switch e.Type {
		case levels.EntityPlayer:
			err = s.spawnPlayer(e, cfg.Player)
		case levels.EntityGoomba:
			err = s.spawnGoomba(e, cfg.Goomba)
		case levels.EntityQuestionBox:
			s.spawnBox(e, cfg.Box)
		case levels.EntityCoin:
			s.spawnCoin(e)
		default:
			err = fmt.Errorf("%w: %q", levels.ErrUnknownEntity, e.Type)
		}
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("scene: spawn %s at (%d,%d): %w", e.Type, e.X, e.Y, err)
		}
	}
	if s.player == nil {
		s.Destroy()
		return nil, fmt.Errorf("%w: no player spawn", levels.ErrInvalidLevel)
	}

	s.log.WithFields(logrus.Fields{
		"tiles":   len(tiles),
		"enemies": len(s.enemies),
		"boxes":   len(s.boxes),
		"coins":   len(s.coins),
	}).Debug("scene built")
	return s, nil
}

// feet returns the centre of a box of height h standing on the bottom of the
// entity's tile.
func (s *Scene) feet(e levels.Entity, h float64) mgl64.Vec2 {
	c := s.level.Center(e)
	return mgl64.Vec2{c[0], c[1] - 0.5 + h/2}
}

func (s *Scene) spawnPlayer(e levels.Entity, spec prefabs.PlayerSpec) error {
	cfg, err := spec.ActorConfig()
	if err != nil {
		return err
	}
	cfg.Position = s.feet(e, cfg.Volume.Height)
	actor, err := physics.NewActor(s.space, cfg)
	if err != nil {
		return err
	}
	ctrl, err := player.NewController(actor, spec.Tuning.Tuning(), s.sinks, s.log)
	if err != nil {
		actor.Destroy()
		return err
	}
	ctrl.OnDeath(s.onPlayerDeath)
	s.playerActor = actor
	s.player = ctrl
	return nil
}

func (s *Scene) spawnGoomba(e levels.Entity, spec prefabs.GoombaSpec) error {
	cfg, err := spec.ActorConfig()
	if err != nil {
		return err
	}
	cfg.Position = s.feet(e, cfg.Volume.Height)
	cfg.Layer = physics.LayerEnemy
	actor, err := physics.NewActor(s.space, cfg)
	if err != nil {
		return err
	}
	w, err := enemy.NewWalker(actor, spec.WalkerConfig(e.FloatProp("direction", -1)), s.sinks, s.log)
	if err != nil {
		actor.Destroy()
		return err
	}
	actor.Collider().Data = w
	w.OnKill(actor.Destroy)
	s.enemies = append(s.enemies, Enemy{Walker: w, Actor: actor})
	return nil
}

func (s *Scene) spawnBox(e levels.Entity, spec prefabs.QuestionBoxSpec) {
	c := s.level.Center(e)
	b := gameplay.NewQuestionBox(s.space, common.RectFromCenter(c, 1, 1), spec.BoxConfig(), s.sched, s.sinks, s.log)
	b.OnBump(func() { s.stats.Coins++ })
	s.boxes = append(s.boxes, b)
}

func (s *Scene) spawnCoin(e levels.Entity) {
	c := s.level.Center(e)
	coin := gameplay.NewCoin(s.space, common.RectFromCenter(c, CoinSize, CoinSize), s.sinks, s.log)
	coin.OnCollect(func() { s.stats.Coins++ })
	s.coins = append(s.coins, coin)
}

func (s *Scene) onPlayerDeath() {
	s.stats.Deaths++
	s.restart = true
	s.log.WithField("deaths", s.stats.Deaths).Debug("restart requested")
}

// Step advances the scene by one tick: the player first, then enemies, then
// cosmetic timers. A dead player freezes the world until the host restarts.
func (s *Scene) Step(dt float64, in input.Frame) {
	if s.destroyed || s.restart {
		return
	}
	s.ticks++

	s.player.Update(dt, in)
	if s.playerActor.Position()[1] < s.killY {
		s.player.Die()
	}

	for _, e := range s.enemies {
		if e.Walker.Dead() {
			continue
		}
		e.Walker.Update(dt)
		if e.Actor.Position()[1] < s.killY {
			e.Walker.Kill()
		}
	}

	s.sched.Advance(time.Duration(dt * float64(time.Second)))
}

// Destroy cancels pending cosmetic tasks and unregisters every collider. The
// scene cannot be stepped afterwards.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, b := range s.boxes {
		b.Destroy()
	}
	for _, e := range s.enemies {
		e.Actor.Destroy()
	}
	if s.playerActor != nil {
		s.playerActor.Destroy()
	}
	for _, c := range s.space.Colliders() {
		s.space.Remove(c)
	}
	s.sched.Clear()
}

// RestartRequested reports that the player died and the host should rebuild
// the scene.
func (s *Scene) RestartRequested() bool {
	return s.restart
}

func (s *Scene) Stats() Stats {
	return s.stats
}

func (s *Scene) Ticks() int {
	return s.ticks
}

func (s *Scene) Level() *levels.Level {
	return s.level
}

func (s *Scene) Space() *physics.Space {
	return s.space
}

func (s *Scene) Player() *player.Controller {
	return s.player
}

func (s *Scene) PlayerActor() *physics.Actor {
	return s.playerActor
}

func (s *Scene) Enemies() []Enemy {
	return s.enemies
}

func (s *Scene) Boxes() []*gameplay.QuestionBox {
	return s.boxes
}

func (s *Scene) Coins() []*gameplay.Coin {
	return s.coins
}

func (s *Scene) Destroyed() bool {
	return s.destroyed
}

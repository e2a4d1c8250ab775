package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/prefabs"
	"github.com/guilhermepo2/JumpyJump/render"
	"github.com/guilhermepo2/JumpyJump/scene"
	"github.com/guilhermepo2/JumpyJump/sfx"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth      = common.BaseWidth
	baseHeight     = common.BaseHeight
	ticksPerSecond = common.TicksPerSecond
)

type Options struct {
	Level  string
	Debug  bool
	Watch  bool
	Mute   bool
	Logger *logrus.Logger
}

type Game struct {
	log *logrus.Logger

	content  scene.Content
	scene    *scene.Scene
	sched    *timer.Scheduler
	keyboard *Keyboard
	renderer *render.Renderer
	sound    *EbitenSound

	watcher  *prefabs.Watcher
	reloader *scene.Reloader

	paused         bool
	restartPending bool
	pauseUI        *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	content, err := scene.LoadContent(opts.Level)
	if err != nil {
		return nil, err
	}

	g := &Game{
		log:      opts.Logger,
		content:  content,
		sched:    timer.New(),
		keyboard: NewKeyboard(),
	}

	palette := render.DefaultPalette().WithPrefabs(content.Player, content.Goomba, content.Box)
	g.renderer = render.NewRenderer(
		render.NewCamera(baseWidth, baseHeight),
		palette,
		render.NewAnimator(),
		fx.NewSquasher(g.sched),
		fx.NewParticles(g.sched, fx.DefaultParticleLife),
	)
	g.renderer.Debug = opts.Debug

	if !opts.Mute {
		g.sound = NewEbitenSound(audio.NewContext(sfx.SampleRate), 0.6, g.log)
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "levels")
		if err != nil {
			g.log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
			g.reloader = scene.NewReloader(content.LevelName, g.log)
		}
	}

	g.pauseUI = NewPauseUI(g)

	if err := g.buildScene(scene.Stats{}); err != nil {
		return nil, err
	}
	if p := g.scene.PlayerActor(); p != nil {
		g.renderer.Camera.Snap(p.Position(), float64(content.Level.Width), float64(content.Level.Height))
	}
	return g, nil
}

func (g *Game) sinks() fx.Sinks {
	var sound fx.SoundSink
	if g.sound != nil {
		sound = g.sound
	}
	return g.renderer.Sinks(sound)
}

// buildScene replaces the running scene. Cosmetic state keyed by the old
// scene's objects is dropped with it.
func (g *Game) buildScene(stats scene.Stats) error {
	if g.scene != nil {
		g.scene.Destroy()
	}
	g.renderer.Animator.Reset()
	g.renderer.Squasher = fx.NewSquasher(g.sched)
	g.renderer.Particles.Clear()

	s, err := scene.New(g.content.Config(g.sinks(), g.sched, g.log, stats))
	if err != nil {
		return err
	}
	g.scene = s
	return nil
}

func (g *Game) restart() {
	stats := g.scene.Stats()
	g.log.WithFields(logrus.Fields{"coins": stats.Coins, "deaths": stats.Deaths}).Info("restarting level")
	if err := g.buildScene(stats); err != nil {
		g.log.WithError(err).Error("restart failed")
	}
}

// pollReloads drains pending file changes without blocking the frame.
func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			content, reload, err := g.reloader.Apply(change)
			if err != nil {
				g.log.WithError(err).WithField("file", change.Path).Warn("reload failed, keeping current content")
				continue
			}
			if !reload {
				continue
			}
			g.content = content
			g.renderer.Palette = render.DefaultPalette().WithPrefabs(content.Player, content.Goomba, content.Box)
			g.restartPending = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher error")
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollReloads()

	if g.keyboard.PausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.restartPending || g.scene.RestartRequested() {
		g.restartPending = false
		g.restart()
	}

	g.scene.Step(common.FixedStep, g.keyboard.Poll())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene)
	render.DrawHUD(screen, g.scene.Stats(), g.paused)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.sound != nil {
		g.sound.Close()
	}
	if g.scene != nil {
		g.scene.Destroy()
	}
}

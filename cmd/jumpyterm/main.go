// Command jumpyterm plays JumpyJump in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/scene"
	"github.com/guilhermepo2/JumpyJump/sfx"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/sirupsen/logrus"
)

type termGame struct {
	screen  tcell.Screen
	log     *logrus.Logger
	content scene.Content
	sched   *timer.Scheduler
	sound   *sfx.Beep
	scene   *scene.Scene
	grid    physics.TileGrid
	keys    keyLatch
	view    view
	paused  bool
}

func (g *termGame) sinks() fx.Sinks {
	var sound fx.SoundSink
	if g.sound != nil {
		sound = g.sound
	}
	return fx.Sinks{Sound: sound}.OrNop()
}

func (g *termGame) build(stats scene.Stats) error {
	if g.scene != nil {
		g.scene.Destroy()
	}
	s, err := scene.New(g.content.Config(g.sinks(), g.sched, g.log, stats))
	if err != nil {
		return err
	}
	g.scene = s
	g.grid = g.content.Level.TileGrid()
	g.keys.Reset()
	return nil
}

// handle reports false when the player quits.
func (g *termGame) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				g.paused = !g.paused
				return true
			case 'r':
				g.restart()
				return true
			}
		}
		g.keys.Press(ev, now)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *termGame) restart() {
	stats := g.scene.Stats()
	g.log.WithFields(logrus.Fields{"coins": stats.Coins, "deaths": stats.Deaths}).Info("restarting level")
	if err := g.build(stats); err != nil {
		g.log.WithError(err).Error("restart failed")
	}
}

func (g *termGame) tick(now time.Time) {
	if !g.paused {
		if g.scene.RestartRequested() {
			g.restart()
		}
		g.scene.Step(common.FixedStep, g.keys.Frame(now))
	}
	g.view.draw(g.screen, g.scene, g.grid, g.paused)
}

// eventPump forwards screen events to a channel until stopped or until the
// screen is finalized.
type eventPump struct {
	events chan tcell.Event
	done   chan struct{}
	exited chan struct{}
}

func startPump(screen tcell.Screen, size int) *eventPump {
	p := &eventPump{
		events: make(chan tcell.Event, size),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(p.exited)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(p.events)
				return
			}
			select {
			case p.events <- ev:
			case <-p.done:
				return
			}
		}
	}()
	return p
}

func (p *eventPump) stop() {
	close(p.done)
}

func (g *termGame) run() {
	ticker := time.NewTicker(time.Second / common.TicksPerSecond)
	defer ticker.Stop()

	pump := startPump(g.screen, 100)
	defer pump.stop()

	for {
		select {
		case ev, ok := <-pump.events:
			if !ok || !g.handle(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			g.tick(now)
		}
	}
}

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "", "write logs to this file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	lg := logrus.New()
	lg.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		lg.SetOutput(f)
		lg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	if *debug {
		lg.SetLevel(logrus.DebugLevel)
	}

	content, err := scene.LoadContent(*levelName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g := &termGame{screen: screen, log: lg, content: content, sched: timer.New()}
	if !*mute {
		g.sound = sfx.NewBeep(0, lg)
		if err := g.sound.Init(); err != nil {
			lg.WithError(err).Warn("sound disabled")
			g.sound = nil
		}
	}

	if err := g.build(scene.Stats{}); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g.run()

	g.scene.Destroy()
	if g.sound != nil {
		g.sound.Close()
	}
	screen.Fini()
}

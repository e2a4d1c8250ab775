package main

import (
	"flag"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and collider overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	watch := flag.Bool("watch", false, "reload prefabs and levels from disk when they change")
	stats := flag.String("statsview", "", "serve runtime stats on this address, e.g. localhost:18066")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	if *debug {
		lg.SetLevel(logrus.DebugLevel)
	}

	if *stats != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(*stats))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		lg.WithField("addr", *stats).Info("statsview listening")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("JumpyJump")
	ebiten.SetTPS(ticksPerSecond)

	game, err := NewGame(Options{
		Level:  *levelName,
		Debug:  *debug,
		Watch:  *watch,
		Mute:   *mute,
		Logger: lg,
	})
	if err != nil {
		lg.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		lg.WithError(err).Fatal("game stopped")
	}
}

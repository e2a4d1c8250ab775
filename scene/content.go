package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/levels"
	"github.com/guilhermepo2/JumpyJump/prefabs"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/sirupsen/logrus"
)

// Content is the data a scene is built from: one level and the prefabs of
// everything that can be placed in it.
type Content struct {
	LevelName string
	Level     *levels.Level
	Player    prefabs.PlayerSpec
	Goomba    prefabs.GoombaSpec
	Box       prefabs.QuestionBoxSpec
}

func LoadContent(levelName string) (Content, error) {
	if levelName == "" {
		levelName = levels.Default
	}
	c := Content{LevelName: levelName}

	var err error
	if c.Level, err = levels.Load(levelName); err != nil {
		return Content{}, fmt.Errorf("scene: level %s: %w", levelName, err)
	}
	if c.Level.Name == "" {
		c.Level.Name = strings.TrimSuffix(filepath.Base(levelName), ".json")
	}
	if c.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return Content{}, err
	}
	if c.Goomba, err = prefabs.LoadGoombaSpec(); err != nil {
		return Content{}, err
	}
	if c.Box, err = prefabs.LoadQuestionBoxSpec(); err != nil {
		return Content{}, err
	}
	return c, nil
}

// Config builds the scene configuration for this content.
func (c Content) Config(sinks fx.Sinks, sched *timer.Scheduler, logger logrus.FieldLogger, stats Stats) Config {
	return Config{
		Level:     c.Level,
		Player:    c.Player,
		Goomba:    c.Goomba,
		Box:       c.Box,
		Sinks:     sinks,
		Scheduler: sched,
		Logger:    logger,
		Stats:     stats,
	}
}

// Reloader turns file change notifications into fresh content. Saves that do
// not change a file's bytes are ignored.
type Reloader struct {
	levelName string
	digests   *prefabs.Digests
	log       logrus.FieldLogger
}

// NewReloader remembers the current bytes of every content file so the first
// notification for an untouched file is recognised as a no-op.
func NewReloader(levelName string, logger logrus.FieldLogger) *Reloader {
	if levelName == "" {
		levelName = levels.Default
	}
	r := &Reloader{
		levelName: levelName,
		digests:   prefabs.NewDigests(),
		log:       common.LoggerOrDiscard(logger).WithField("component", "reloader"),
	}
	for _, name := range []string{prefabs.PlayerFile, prefabs.GoombaFile, prefabs.QuestionBoxFile} {
		if data, err := prefabs.Load(name); err == nil {
			r.digests.Changed(name, data)
		}
	}
	if data, err := levels.ReadRaw(levelName); err == nil {
		r.digests.Changed(r.levelFile(), data)
	}
	return r
}

func (r *Reloader) levelFile() string {
	name := filepath.Base(r.levelName)
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

// Apply reloads content when change touches a file the scene depends on. It
// reports false when nothing needs rebuilding. On error the caller should
// keep running the current content.
func (r *Reloader) Apply(change prefabs.Change) (Content, bool, error) {
	name := change.Name()
	var (
		data []byte
		err  error
	)
	switch change.Kind {
	case prefabs.KindLevel:
		if name != r.levelFile() {
			return Content{}, false, nil
		}
		data, err = levels.ReadRaw(r.levelName)
	default:
		data, err = prefabs.Load(name)
	}
	if err != nil {
		return Content{}, false, fmt.Errorf("scene: reload %s: %w", name, err)
	}
	if !r.digests.Changed(name, data) {
		r.log.WithField("file", name).Debug("content unchanged, skipping reload")
		return Content{}, false, nil
	}

	c, err := LoadContent(r.levelName)
	if err != nil {
		return Content{}, false, err
	}
	r.log.WithFields(logrus.Fields{"file": name, "kind": change.Kind}).Info("content reloaded")
	return c, true, nil
}

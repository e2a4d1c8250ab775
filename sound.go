package main

import (
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

// EbitenSound plays the synthesized effects through an ebiten audio context.
// One player per sound is kept and rewound on every play.
type EbitenSound struct {
	players map[fx.Sound]*audio.Player
	volume  float64
	muted   bool
	log     logrus.FieldLogger
}

func NewEbitenSound(ctx *audio.Context, volume float64, logger logrus.FieldLogger) *EbitenSound {
	e := &EbitenSound{
		players: make(map[fx.Sound]*audio.Player, len(sfx.Tones)),
		volume:  volume,
		log:     common.LoggerOrDiscard(logger).WithField("sink", "ebiten_audio"),
	}
	for sound := range sfx.Tones {
		pcm := sfx.EncodePCM16(sfx.Render(sound, ctx.SampleRate()))
		e.players[sound] = ctx.NewPlayerFromBytes(pcm)
	}
	return e
}

func (e *EbitenSound) PlaySound(sound fx.Sound) {
	if e == nil || e.muted {
		return
	}
	p, ok := e.players[sound]
	if !ok {
		e.log.WithField("sound", sound).Warn("no clip for sound")
		return
	}
	p.SetVolume(e.volume)
	if err := p.Rewind(); err != nil {
		e.log.WithError(err).WithField("sound", sound).Warn("rewind failed")
		return
	}
	p.Play()
}

func (e *EbitenSound) SetMuted(muted bool) {
	e.muted = muted
}

func (e *EbitenSound) Close() {
	for _, p := range e.players {
		_ = p.Close()
	}
}

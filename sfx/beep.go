package sfx

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/sirupsen/logrus"
)

// Beep plays the synthesized effects through the beep speaker. Every sound is
// mixed into a single always-running mixer.
type Beep struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	clips       map[fx.Sound][]float64
	volume      float64
	initialized bool
	log         logrus.FieldLogger
}

// NewBeep prepares the clips. volume is in beep's log2 scale, 0 is unchanged.
func NewBeep(volume float64, logger logrus.FieldLogger) *Beep {
	b := &Beep{
		rate:   beep.SampleRate(SampleRate),
		mixer:  &beep.Mixer{},
		clips:  make(map[fx.Sound][]float64, len(Tones)),
		volume: volume,
		log:    common.LoggerOrDiscard(logger).WithField("sink", "beep"),
	}
	for sound := range Tones {
		b.clips[sound] = Render(sound, SampleRate)
	}
	return b
}

// Init opens the speaker. Sounds played before Init are dropped.
func (b *Beep) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

func (b *Beep) PlaySound(sound fx.Sound) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	clip, ok := b.clips[sound]
	if !ok {
		b.log.WithField("sound", sound).Warn("no clip for sound")
		return
	}
	streamer := &effects.Volume{Streamer: NewClipStreamer(clip), Base: 2, Volume: b.volume}
	speaker.Lock()
	b.mixer.Add(streamer)
	speaker.Unlock()
}

func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.initialized = false
}

// clipStreamer streams prerendered mono samples to both channels.
type clipStreamer struct {
	samples []float64
	pos     int
}

func NewClipStreamer(samples []float64) beep.Streamer {
	return &clipStreamer{samples: samples}
}

func (c *clipStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	for i := range samples {
		if c.pos >= len(c.samples) {
			return i, true
		}
		v := c.samples[c.pos]
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *clipStreamer) Err() error { return nil }

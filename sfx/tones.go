package sfx

import (
	"math"
	"time"

	"github.com/guilhermepo2/JumpyJump/fx"
)

// SampleRate is shared by every backend.
const SampleRate = 44100

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Tone is one note of a sound effect. The pitch slides linearly from Freq to
// EndFreq; a zero EndFreq holds Freq.
type Tone struct {
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Wave     Wave
	Volume   float64
}

// attack and release keep notes from clicking at their edges.
const (
	attack  = 4 * time.Millisecond
	release = 20 * time.Millisecond
)

// Tones are played back to back for each sound.
var Tones = map[fx.Sound][]Tone{
	fx.SoundJump: {
		{Freq: 320, EndFreq: 640, Duration: 120 * time.Millisecond, Wave: WaveSquare, Volume: 0.35},
	},
	fx.SoundCoin: {
		{Freq: 988, Duration: 70 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
		{Freq: 1319, Duration: 220 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	},
	fx.SoundDeath: {
		{Freq: 440, EndFreq: 110, Duration: 450 * time.Millisecond, Wave: WaveTriangle, Volume: 0.5},
	},
}

func samplesFor(d time.Duration, rate int) int {
	return int(math.Round(d.Seconds() * float64(rate)))
}

// Render synthesizes a sound as mono samples in [-1, 1]. Unknown sounds render
// to nothing.
func Render(sound fx.Sound, rate int) []float64 {
	var out []float64
	for _, t := range Tones[sound] {
		out = appendTone(out, t, rate)
	}
	return out
}

func appendTone(out []float64, t Tone, rate int) []float64 {
	n := samplesFor(t.Duration, rate)
	att := samplesFor(attack, rate)
	rel := samplesFor(release, rate)
	end := t.EndFreq
	if end == 0 {
		end = t.Freq
	}

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*progress

		v := oscillate(t.Wave, phase) * t.Volume
		switch {
		case i < att:
			v *= float64(i) / float64(att)
		case i >= n-rel:
			v *= float64(n-i) / float64(rel)
		}
		out = append(out, v)

		phase += freq / float64(rate)
		phase -= math.Floor(phase)
	}
	return out
}

func oscillate(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// EncodePCM16 converts mono samples to the 16-bit little-endian stereo layout
// ebiten's audio players expect.
func EncodePCM16(samples []float64) []byte {
	out := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		v := int16(math.Round(s * math.MaxInt16))
		lo, hi := byte(v), byte(uint16(v)>>8)
		out = append(out, lo, hi, lo, hi)
	}
	return out
}

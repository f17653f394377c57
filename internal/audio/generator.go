package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// RewindGenerator produces the looping tape-rewind sweep: a tone gliding from
// high to low pitch with a slow amplitude wobble, restarting every cycle.
type RewindGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewRewindGenerator creates the rewind sweep generator.
func NewRewindGenerator(sr beep.SampleRate) *RewindGenerator {
	return &RewindGenerator{
		sr:      sr,
		samples: sr.N(time.Millisecond * 500),
	}
}

func (g *RewindGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)

		// Pitch falls from 1200Hz to 300Hz over each cycle
		freq := 1200 - 900*cyclePos
		amplitude := 0.12 * (0.6 + 0.4*math.Sin(cyclePos*math.Pi))
		sample := amplitude * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RewindGenerator) Err() error {
	return nil
}

// ChirpGenerator produces the short rising eat chirp.
type ChirpGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewChirpGenerator creates the eat chirp generator.
func NewChirpGenerator(sr beep.SampleRate) *ChirpGenerator {
	return &ChirpGenerator{sr: sr}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch climbs from 600Hz at roughly an octave per 100ms
		freq := 600 * (1 + t*10)
		envelope := math.Min(t/0.01, 1.0) * math.Exp(-t*12)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// BuzzGenerator produces the low game-over buzz: a fundamental with two
// harmonics and a fading envelope.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz generator at the given fundamental.
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0) * math.Exp(-t*4)
		sample *= envelope * 0.8

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

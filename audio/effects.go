package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// glide is an endless sine whose pitch moves geometrically from one frequency
// to another over n samples, then holds; the ear hears a constant-rate rise or fall
type glide struct {
	rate  float64
	from  float64
	ratio float64
	n     int
	pos   int
	phase float64
}

// NewSweep returns a sine tone gliding from one pitch to another, cut at duration
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(duration)
	g := &glide{rate: float64(rate), from: from, ratio: 1, n: n}
	if from > 0 && to > 0 {
		g.ratio = to / from
	}
	return beep.Take(n, g)
}

func (g *glide) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := 1.0
		if g.n > 0 {
			t = min(float64(g.pos)/float64(g.n), 1)
		}
		v := math.Sin(2 * math.Pi * g.phase)
		samples[i] = [2]float64{v, v}

		g.phase += g.from * math.Pow(g.ratio, t) / g.rate
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *glide) Err() error { return nil }

// gate applies a linear attack and release to a fixed-length stream
type gate struct {
	s       beep.Streamer
	attack  int
	release int
	total   int
	pos     int
}

// NewEnvelope shapes s with linear attack and release ramps inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &gate{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(duration),
	}
}

func (e *gate) gain() float64 {
	switch {
	case e.pos >= e.total:
		return 0
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.total-e.release:
		return float64(e.total-e.pos) / float64(e.release)
	default:
		return 1
	}
}

func (e *gate) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := range samples[:n] {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *gate) Err() error { return e.s.Err() }

// newVolume scales s by a linear gain through effects.Volume (base 2)
// Zero gain would be log2(0) = -Inf, so it is marked silent instead
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Package audio plays short cues when a focus transition settles.
package audio

import (
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/transition"
	"github.com/lixenwraith/chromasphere/vmath"
)

// Config holds audio settings
type Config struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // linear, 0-1
}

// DefaultConfig returns audio enabled at the default volume
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: parameter.DefaultVolume}
}

// Player mixes cues into the speaker
// Every method is safe to call before Initialize or after Cleanup; they do nothing
type Player struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	output      func(beep.Streamer)
	initialized bool
	played      map[Cue]int
	logger      *slog.Logger
}

// Option configures a Player
type Option func(*Player)

// WithOutput replaces the speaker; Initialize then skips device setup
func WithOutput(fn func(beep.Streamer)) Option {
	return func(p *Player) { p.output = fn }
}

// WithLogger sets the logger; default slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPlayer creates an uninitialized player
func NewPlayer(cfg Config, opts ...Option) *Player {
	cfg.Volume = vmath.Clamp01(cfg.Volume)
	p := &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		played: make(map[Cue]int),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize opens the speaker; disabled players stay silent without error
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if p.output == nil {
		if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
			return err
		}
		speaker.Play(p.mixer)
		p.output = func(s beep.Streamer) {
			speaker.Lock()
			p.mixer.Add(s)
			speaker.Unlock()
		}
	}
	p.initialized = true
	return nil
}

// Cleanup stops all sounds
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues cue c
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || c == CueNone {
		return
	}
	s := CreateCue(c, p.rate, p.cfg.Volume)
	if s == nil {
		return
	}
	p.output(s)
	p.played[c]++
	p.logger.Debug("cue played", "cue", c)
}

// PhaseChanged plays the cue for a phase change; register with Controller.OnPhaseChange
func (p *Player) PhaseChanged(from, to transition.Phase, _ transition.Token) {
	p.Play(CueFor(from, to))
}

// Played returns how many times c was queued
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}

package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Focus Cue
// Rising sweep when a focus settles, falling sweep when the overview returns
const (
	CueDuration   = 180 * time.Millisecond
	CueAttack     = 10 * time.Millisecond
	CueRelease    = 90 * time.Millisecond
	CueFocusFrom  = 440.0
	CueFocusTo    = 880.0
	CueOverviewTo = 330.0
	CueAmplitude  = 0.2
)

// DefaultVolume is the linear master volume in [0, 1]
const DefaultVolume = 0.6

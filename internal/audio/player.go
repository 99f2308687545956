// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/echorift/internal/core"
)

const sampleRate = beep.SampleRate(44100)

const cueVolume = 0.25

// cues maps events to the notes they play. Events without an entry are silent.
var cues = map[core.EventKind][]Note{
	core.EventShardCollected: {
		{Freq: 880, Duration: 60 * time.Millisecond, Wave: WaveSine},
		{Freq: 1320, Duration: 90 * time.Millisecond, Wave: WaveSine},
	},
	core.EventShieldGranted: {
		{Freq: 660, Duration: 80 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 990, Duration: 120 * time.Millisecond, Wave: WaveTriangle},
	},
	core.EventShieldConsumed: {
		{Freq: 220, Duration: 140 * time.Millisecond, Wave: WaveSquare},
	},
	core.EventShieldLost: {
		{Freq: 330, Duration: 90 * time.Millisecond, Wave: WaveSquare},
		{Freq: 196, Duration: 140 * time.Millisecond, Wave: WaveSquare},
	},
	core.EventStageAdvanced: {
		{Freq: 440, Duration: 90 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 554, Duration: 90 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 659, Duration: 90 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 880, Duration: 200 * time.Millisecond, Wave: WaveTriangle},
	},
	core.EventGameOver: {
		{Freq: 330, Duration: 180 * time.Millisecond, Wave: WaveSquare},
		{Freq: 247, Duration: 180 * time.Millisecond, Wave: WaveSquare},
		{Freq: 165, Duration: 400 * time.Millisecond, Wave: WaveSquare},
	},
}

// CueNotes returns the notes played for an event kind, or nil.
func CueNotes(kind core.EventKind) []Note {
	return cues[kind]
}

// Player mixes event cues onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player. It is silent until Init succeeds.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, logger: logger}
}

// Init opens the speaker. Without an audio device the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio initialized", "rate", int(sampleRate))
	return nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues the cue of every event that has one. Safe on a nil Player.
func (p *Player) Play(events []core.Event) {
	if p == nil || len(events) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	// One cue per kind per frame keeps multi-score frames from stacking up
	seen := make(map[core.EventKind]bool, len(events))
	var streams []beep.Streamer
	for _, e := range events {
		notes := cues[e.Kind]
		if notes == nil || seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		streams = append(streams, Melody(sampleRate, cueVolume, notes...))
	}
	if len(streams) == 0 {
		return
	}

	speaker.Lock()
	p.mixer.Add(streams...)
	speaker.Unlock()
}

// Close silences pending cues.
func (p *Player) Close() {
	if p == nil {
		return
	}
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

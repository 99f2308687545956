package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a single decaying note.
type tone struct {
	freq   float64
	phase  float64
	pos    int
	total  int
	attack int
	volume float64
	wave   Wave
	rate   beep.SampleRate
}

// NewTone returns a streamer playing one note with a short attack and exponential decay.
func NewTone(freq float64, d time.Duration, wave Wave, volume float64, rate beep.SampleRate) beep.Streamer {
	total := max(rate.N(d), 1)
	return &tone{
		freq:   freq,
		total:  total,
		attack: max(total/20, 1),
		volume: volume,
		wave:   wave,
		rate:   rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		}

		env := 1.0
		if t.pos < t.attack {
			env = float64(t.pos) / float64(t.attack)
		} else {
			env = math.Exp(-4 * float64(t.pos-t.attack) / float64(t.total))
		}
		val *= env * t.volume

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Note is one step of a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// Melody chains notes into a single streamer.
func Melody(rate beep.SampleRate, volume float64, notes ...Note) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, NewTone(n.Freq, n.Duration, n.Wave, volume, rate))
	}
	return beep.Seq(streamers...)
}

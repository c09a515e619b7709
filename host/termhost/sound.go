package termhost

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cue plays short tones; a terminal has no other way to get attention.
type cue struct {
	ready bool
}

func newCue() (*cue, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &cue{}, err
	}
	return &cue{ready: true}, nil
}

func (c *cue) tone(freq int, d time.Duration) {
	if c == nil || !c.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// failure sounds when a behavior is deactivated.
func (c *cue) failure() {
	c.tone(220, 120*time.Millisecond)
}

func (c *cue) close() {
	if c != nil && c.ready {
		speaker.Close()
	}
}

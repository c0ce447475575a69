package term

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	enterTone = 660
	dropTone  = 880
	toneLen   = 50 * time.Millisecond
)

// Tones plays short cues. A nil Tones is silent.
type Tones interface {
	Tone(freq float64, d time.Duration)
}

// Speaker plays tones through the default audio device.
type Speaker struct {
	rate beep.SampleRate
}

// NewSpeaker initializes the audio device.
func NewSpeaker() (*Speaker, error) {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{rate: rate}, nil
}

// Tone plays a sine tone of freq Hz for d.
func (s *Speaker) Tone(freq float64, d time.Duration) {
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

// Close releases the audio device.
func (s *Speaker) Close() {
	speaker.Close()
}

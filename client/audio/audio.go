package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BeepSounds plays short sine tones through the system speaker.
type BeepSounds struct {
	lock sync.Mutex
}

// NewBeepSounds initializes the speaker. Close must be called on exit.
func NewBeepSounds() (*BeepSounds, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %v", err)
	}
	return &BeepSounds{}, nil
}

func (s *BeepSounds) Eat() {
	s.tone(880, 50*time.Millisecond)
}

func (s *BeepSounds) GameOver() {
	s.tone(220, 300*time.Millisecond)
}

func (s *BeepSounds) tone(freq float64, duration time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(duration), sine))
}

func (s *BeepSounds) Close() {
	speaker.Close()
}

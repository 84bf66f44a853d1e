package feedback

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Speaker plays cues on the local audio device.
type Speaker struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// NewSpeaker initializes the audio device. The device can only be opened
// once per process.
func NewSpeaker(volume float64) (*Speaker, error) {
	s := &Speaker{volume: volume}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Speaker) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("feedback: init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// Play implements Player. The sound is mixed in by the speaker goroutine.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	ok := s.initialized
	s.mu.Unlock()
	if !ok {
		return
	}
	speaker.Play(Stream(c, s.volume))
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

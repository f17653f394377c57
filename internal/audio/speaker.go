package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// One-shot sound lengths; a channel counts as busy for this long after Play.
const (
	chirpDuration = 150 * time.Millisecond
	buzzDuration  = 400 * time.Millisecond
)

// Speaker is the beep-backed Sink. All sounds are synthesized, so there are
// no assets to load. Loop sounds hold a beep.Ctrl per channel and are paused
// on Stop; one-shots run to completion and track a busy deadline instead.
type Speaker struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	loops     map[Channel]*beep.Ctrl
	busyUntil map[Channel]time.Time
}

// NewSpeaker initializes the audio device and returns a playing Sink.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	s := &Speaker{
		mixer:     &beep.Mixer{},
		loops:     make(map[Channel]*beep.Ctrl),
		busyUntil: make(map[Channel]time.Time),
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play implements Sink.
func (s *Speaker) Play(ch Channel, snd Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch snd {
	case SoundRewind:
		s.playLoop(ch, func() beep.Streamer { return NewRewindGenerator(sampleRate) })
	case SoundEat:
		s.playOneShot(ch, NewChirpGenerator(sampleRate), chirpDuration)
	case SoundFail:
		s.playOneShot(ch, NewBuzzGenerator(sampleRate, 110), buzzDuration)
	}
}

func (s *Speaker) playLoop(ch Channel, newStreamer func() beep.Streamer) {
	if ctrl, ok := s.loops[ch]; ok {
		speaker.Lock()
		ctrl.Paused = false
		speaker.Unlock()
		return
	}

	// The loop generators stream forever, so no loop wrapper is needed.
	ctrl := &beep.Ctrl{Streamer: newStreamer()}
	s.loops[ch] = ctrl
	speaker.Lock()
	s.mixer.Add(ctrl)
	speaker.Unlock()
}

func (s *Speaker) playOneShot(ch Channel, streamer beep.Streamer, d time.Duration) {
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(d), streamer))
	speaker.Unlock()
	s.busyUntil[ch] = time.Now().Add(d)
}

// Stop implements Sink.
func (s *Speaker) Stop(ch Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.loops[ch]; ok {
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
	}
	delete(s.busyUntil, ch)
}

// IsBusy implements Sink.
func (s *Speaker) IsBusy(ch Channel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.loops[ch]; ok {
		speaker.Lock()
		paused := ctrl.Paused
		speaker.Unlock()
		if !paused {
			return true
		}
	}
	return time.Now().Before(s.busyUntil[ch])
}

// Close pauses every loop and clears the mixer. The speaker device itself
// stays open; beep exposes no close.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	for _, ctrl := range s.loops {
		ctrl.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()
}

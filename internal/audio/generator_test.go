package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	if !ok || got != n {
		t.Fatalf("Stream() = (%d, %v), expected (%d, true)", got, ok, n)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return buf
}

func TestGeneratorsStayInRange(t *testing.T) {
	generators := map[string]beep.Streamer{
		"rewind": NewRewindGenerator(sampleRate),
		"chirp":  NewChirpGenerator(sampleRate),
		"buzz":   NewBuzzGenerator(sampleRate, 110),
	}

	for name, gen := range generators {
		t.Run(name, func(t *testing.T) {
			// Two full seconds, streamed in chunks like the speaker does
			var peak float64
			for i := 0; i < 20; i++ {
				for _, frame := range drain(t, gen, sampleRate.N(100*time.Millisecond)) {
					if frame[0] != frame[1] {
						t.Fatal("expected identical left and right channels")
					}
					peak = math.Max(peak, math.Abs(frame[0]))
				}
			}
			if peak > 1.0 {
				t.Errorf("peak amplitude %f clips", peak)
			}
			if peak == 0 {
				t.Error("generator produced silence")
			}
		})
	}
}

func TestNopSink(t *testing.T) {
	var sink Sink = Nop{}
	sink.Play(5, SoundRewind)
	if sink.IsBusy(5) {
		t.Error("Nop sink should never report busy")
	}
	sink.Stop(5)
}

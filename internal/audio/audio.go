// Package audio defines the narrow playback interface the simulation core
// consumes, plus a beep-backed implementation with synthesized sounds.
// The session only ever talks to Sink, so the engine stays free of any audio
// engine dependency.
package audio

// Channel identifies a named mixer channel. Loop sounds own a channel so the
// caller can check busy state and stop them; one-shots share their channel's
// busy window.
type Channel int

// Sound identifies one of the synthesized game sounds.
type Sound int

const (
	// SoundRewind is the looping tape-rewind sweep played while time runs
	// backward.
	SoundRewind Sound = iota
	// SoundEat is the short chirp played when food is consumed.
	SoundEat
	// SoundFail is the low buzz played when the round ends in a collision.
	SoundFail
)

// Sink is a named-channel audio output. Implementations must tolerate
// arbitrary channel ids and repeated Stop calls.
type Sink interface {
	// Play starts the sound on the given channel. Loop sounds keep playing
	// until Stop; one-shots end on their own.
	Play(ch Channel, snd Sound)
	// Stop silences the channel.
	Stop(ch Channel)
	// IsBusy reports whether the channel is currently playing.
	IsBusy(ch Channel) bool
}

// Nop is a Sink that discards everything. Used when audio is disabled and
// in tests.
type Nop struct{}

// Play implements Sink.
func (Nop) Play(Channel, Sound) {}

// Stop implements Sink.
func (Nop) Stop(Channel) {}

// IsBusy implements Sink.
func (Nop) IsBusy(Channel) bool { return false }

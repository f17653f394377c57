package game

import "github.com/EliasCampos/snake-of-time/internal/core"

// HistoryCapacity is the maximum rewind depth in ticks. It also sets the
// recharge window after the buffer has been fully drained.
const HistoryCapacity = 25

// Snapshot is an immutable record of the simulation state at the start of a
// forward tick: the snake's direction, its segment positions head-first, and
// the food position. Popping one undoes that tick completely.
type Snapshot struct {
	Direction Direction
	Parts     []core.Point
	Food      core.Point
}

// History is a bounded ring buffer of snapshots. Forward ticks push the
// newest state, evicting the oldest once the buffer is full; backward ticks
// pop newest-first.
type History struct {
	buf   []Snapshot
	start int
	count int
}

// NewHistory creates a history buffer with the given capacity.
func NewHistory(capacity int) *History {
	return &History{buf: make([]Snapshot, capacity)}
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.count
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Push appends a snapshot, dropping the oldest one when full.
func (h *History) Push(s Snapshot) {
	h.buf[(h.start+h.count)%len(h.buf)] = s
	if h.count == len(h.buf) {
		h.start = (h.start + 1) % len(h.buf)
	} else {
		h.count++
	}
}

// Pop removes and returns the most recent snapshot.
// The second return value is false when the buffer is empty.
func (h *History) Pop() (Snapshot, bool) {
	if h.count == 0 {
		return Snapshot{}, false
	}
	h.count--
	return h.buf[(h.start+h.count)%len(h.buf)], true
}

package game

import "github.com/EliasCampos/snake-of-time/internal/core"

// SegmentSize is the side length of one snake body segment.
const SegmentSize = 15

// Snake is an ordered chain of fixed-size body segments with a current
// movement direction. The head is at index 0; the rest is the tail.
type Snake struct {
	direction Direction
	parts     []core.Rect
}

// NewSnake creates a snake with its head at (startX, startY) and the given
// number of tail segments, all initially coinciding with the head. The
// initial direction is left.
func NewSnake(startX, startY, tailLength int) *Snake {
	s := &Snake{
		direction: DirLeft,
		parts:     []core.Rect{core.NewRect(startX, startY, SegmentSize, SegmentSize)},
	}
	for i := 0; i < tailLength; i++ {
		s.Grow()
	}
	return s
}

// Head returns the head segment.
func (s *Snake) Head() core.Rect {
	return s.parts[0]
}

// Tail returns the tail segments (everything but the head).
func (s *Snake) Tail() []core.Rect {
	return s.parts[1:]
}

// Len returns the total number of segments.
func (s *Snake) Len() int {
	return len(s.parts)
}

// Direction returns the current movement direction.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Segments returns a copy of all segments, head first.
func (s *Snake) Segments() []core.Rect {
	out := make([]core.Rect, len(s.parts))
	copy(out, s.parts)
	return out
}

// Move advances the snake one step: every tail segment takes the position of
// its predecessor, then the head is translated one segment in the current
// direction. Tail segments are updated last-to-second so each copies the
// pre-move position of the segment ahead of it.
func (s *Snake) Move() {
	for i := len(s.parts) - 1; i >= 1; i-- {
		s.parts[i].X = s.parts[i-1].X
		s.parts[i].Y = s.parts[i-1].Y
	}

	dx, dy := s.direction.Vector()
	s.parts[0].X += dx * SegmentSize
	s.parts[0].Y += dy * SegmentSize
}

// Grow appends a new segment at the current position of the last segment.
// The new tail coincides with the old one until the next Move separates them,
// so growth never jumps visually.
func (s *Snake) Grow() {
	last := s.parts[len(s.parts)-1]
	s.parts = append(s.parts, core.NewRect(last.X, last.Y, SegmentSize, SegmentSize))
}

// HasCollisions reports whether the head left the area on any side or
// overlaps a tail segment.
func (s *Snake) HasCollisions(area core.Rect) bool {
	head := s.Head()
	if head.X < area.X || head.Right() > area.Right() ||
		head.Y < area.Y || head.Bottom() > area.Bottom() {
		return true
	}
	for _, part := range s.Tail() {
		if head.Intersects(part) {
			return true
		}
	}
	return false
}

// TurnUp points the snake up unless it currently moves down.
func (s *Snake) TurnUp() { s.turn(DirUp) }

// TurnDown points the snake down unless it currently moves up.
func (s *Snake) TurnDown() { s.turn(DirDown) }

// TurnLeft points the snake left unless it currently moves right.
func (s *Snake) TurnLeft() { s.turn(DirLeft) }

// TurnRight points the snake right unless it currently moves left.
func (s *Snake) TurnRight() { s.turn(DirRight) }

// turn applies a direction change, ignoring exact reversals so the snake can
// never fold onto its own neck in a single tick.
func (s *Snake) turn(d Direction) {
	if s.direction != d.Opposite() {
		s.direction = d
	}
}

// restore rewrites the snake's direction and segment positions from a
// snapshot. Used by the session's backward step.
func (s *Snake) restore(dir Direction, positions []core.Point) {
	s.direction = dir
	s.parts = make([]core.Rect, len(positions))
	for i, p := range positions {
		s.parts[i] = core.NewRect(p.X, p.Y, SegmentSize, SegmentSize)
	}
}

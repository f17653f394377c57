package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/EliasCampos/snake-of-time/internal/audio"
	"github.com/EliasCampos/snake-of-time/internal/core"
)

const (
	// FoodSize is the side length of a food square. Deliberately different
	// from SegmentSize so the two entity types are visually distinct.
	FoodSize = 20

	// StartLength is the number of segments a fresh snake has.
	StartLength = 3
)

// Mixer channels used by the session's sound routing.
const (
	ChannelRewind audio.Channel = 5
	ChannelEat    audio.Channel = 6
	ChannelFail   audio.Channel = 7
)

// KeyEvent is an abstract input event delivered to the session. Direction
// keys arrive at most once per tick; the rewind pair is a level signal.
type KeyEvent int

const (
	KeyUp KeyEvent = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRewindHeld
	KeyRewindReleased
)

// TickResult reports what happened during one tick. Ate and Collided are
// edge-triggered (fire on the tick the event happens); Reversed is
// level-triggered (true for every backward tick).
type TickResult struct {
	Ate      bool
	Collided bool
	Reversed bool
}

// Config carries everything needed to construct a Session.
// Clock, Audio and Rand are optional; nil selects the system clock, a silent
// sink and a time-seeded generator.
type Config struct {
	// Area is the bounding rectangle the snake head must stay within.
	Area core.Rect

	// FrameTime is the duration of one simulation tick.
	FrameTime time.Duration

	// PredictableFuture makes food positions displaced by rewind replay
	// deterministically instead of being re-randomized.
	PredictableFuture bool

	Clock core.Clock
	Audio audio.Sink
	Rand  *rand.Rand
}

// Session orchestrates one round of the game. It owns the snake, the food,
// the rewind history and the deferred-food queue exclusively; no other
// component mutates them. All methods must be called from a single
// goroutine, one Tick per external clock pulse.
type Session struct {
	area        core.Rect
	frameTime   time.Duration
	predictable bool

	clock core.Clock
	sound audio.Sink
	rng   *rand.Rand

	running        bool
	reversed       bool
	rewindHeld     bool
	lastFullRevert time.Duration

	snake     *Snake
	food      core.Rect
	history   *History
	nextFoods []core.Point // LIFO queue of food displaced by rewind
}

// NewSession validates the configuration and creates a ready-to-run round.
// The snake starts centered in the area, snapped to the segment grid, moving
// left. Rewind is unavailable until one full recharge window has passed.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Area.W <= 0 || cfg.Area.H <= 0 {
		return nil, fmt.Errorf("game: area must have positive dimensions, got %dx%d", cfg.Area.W, cfg.Area.H)
	}
	// The spawn margin subtracts FoodSize*2 from the usable span; anything
	// smaller leaves no room to place food.
	if cfg.Area.W <= FoodSize*2 || cfg.Area.H <= FoodSize*2 {
		return nil, fmt.Errorf("game: area %dx%d too small for food placement (need > %d per side)",
			cfg.Area.W, cfg.Area.H, FoodSize*2)
	}
	if cfg.FrameTime <= 0 {
		return nil, fmt.Errorf("game: frame time must be positive, got %v", cfg.FrameTime)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = core.NewSystemClock()
	}
	sound := cfg.Audio
	if sound == nil {
		sound = audio.Nop{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		area:           cfg.Area,
		frameTime:      cfg.FrameTime,
		predictable:    cfg.PredictableFuture,
		clock:          clock,
		sound:          sound,
		rng:            rng,
		running:        true,
		lastFullRevert: clock.Now(),
		history:        NewHistory(HistoryCapacity),
	}

	startX := cfg.Area.X + ((cfg.Area.W/2)/SegmentSize)*SegmentSize
	startY := cfg.Area.Y + ((cfg.Area.H/2)/SegmentSize)*SegmentSize
	s.snake = NewSnake(startX, startY, StartLength-1)
	s.food = s.generateFood()

	return s, nil
}

// HandleKey routes an input event. Turn keys take effect on the next tick;
// only the most recent one before the tick wins. The rewind pair toggles the
// held level signal.
func (s *Session) HandleKey(ev KeyEvent) {
	switch ev {
	case KeyUp:
		s.snake.TurnUp()
	case KeyDown:
		s.snake.TurnDown()
	case KeyLeft:
		s.snake.TurnLeft()
	case KeyRight:
		s.snake.TurnRight()
	case KeyRewindHeld:
		s.rewindHeld = true
	case KeyRewindReleased:
		s.rewindHeld = false
	}
}

// Tick advances the simulation one step. The mode is picked fresh each tick:
// backward while the rewind key is held, history remains, and the charge is
// not exhausted; forward otherwise. After a collision the session is
// terminal and Tick does nothing.
func (s *Session) Tick() TickResult {
	if !s.running {
		return TickResult{}
	}

	s.reversed = s.rewindHeld && s.history.Len() > 0 && !s.IsFullReversed()

	var res TickResult
	if s.reversed {
		if s.moveBackward() {
			res.Reversed = true
			if !s.sound.IsBusy(ChannelRewind) {
				s.sound.Play(ChannelRewind, audio.SoundRewind)
			}
			return res
		}
		// History was unexpectedly empty; fall through to a forward step.
		s.reversed = false
	}

	if s.sound.IsBusy(ChannelRewind) {
		s.sound.Stop(ChannelRewind)
	}
	s.moveForward(&res)
	return res
}

// moveForward runs one forward step: record, move, collide, eat.
// The snapshot is taken at the start of the tick so that popping it undoes
// the whole tick, including growth and food regeneration; a backward tick is
// the exact inverse of a forward one.
func (s *Session) moveForward(res *TickResult) {
	snap := s.snapshot()

	s.snake.Move()

	if s.snake.HasCollisions(s.area) {
		s.running = false
		res.Collided = true
		if !s.sound.IsBusy(ChannelFail) {
			s.sound.Play(ChannelFail, audio.SoundFail)
		}
		// Game over: no food check, no history append.
		return
	}

	if s.snake.Head().Intersects(s.food) {
		s.snake.Grow()
		s.food = s.generateFood()
		res.Ate = true
		if !s.sound.IsBusy(ChannelEat) {
			s.sound.Play(ChannelEat, audio.SoundEat)
		}
	}

	s.history.Push(snap)
}

// moveBackward pops the most recent snapshot and restores it verbatim.
// Returns false when history is empty (the caller then falls back to a
// forward step). No collision or food checks happen while rewinding.
func (s *Session) moveBackward() bool {
	snap, ok := s.history.Pop()
	if !ok {
		return false
	}
	if s.history.Len() == 0 {
		// Rewind charge is fully spent; start the recharge window.
		s.lastFullRevert = s.clock.Now()
	}

	s.snake.restore(snap.Direction, snap.Parts)

	restored := core.NewRect(snap.Food.X, snap.Food.Y, FoodSize, FoodSize)
	if s.predictable && restored.Position() != s.food.Position() {
		// The current food is displaced by this rewind; queue it so a later
		// forward spawn re-serves it in LIFO order.
		s.nextFoods = append(s.nextFoods, s.food.Position())
	}
	s.food = restored
	return true
}

// generateFood produces the next food rectangle. In predictable-future mode
// any food displaced by an earlier rewind is replayed first; otherwise the
// position is drawn uniformly with a FoodSize*2 margin subtracted from the
// usable span on each axis.
func (s *Session) generateFood() core.Rect {
	if s.predictable && len(s.nextFoods) > 0 {
		p := s.nextFoods[len(s.nextFoods)-1]
		s.nextFoods = s.nextFoods[:len(s.nextFoods)-1]
		return core.NewRect(p.X, p.Y, FoodSize, FoodSize)
	}

	x := s.area.X + s.rng.Intn(s.area.W-FoodSize*2)
	y := s.area.Y + s.rng.Intn(s.area.H-FoodSize*2)
	return core.NewRect(x, y, FoodSize, FoodSize)
}

// snapshot captures the state at the start of the current forward tick.
func (s *Session) snapshot() Snapshot {
	parts := make([]core.Point, s.snake.Len())
	for i, part := range s.snake.Segments() {
		parts[i] = part.Position()
	}
	return Snapshot{
		Direction: s.snake.Direction(),
		Parts:     parts,
		Food:      s.food.Position(),
	}
}

// IsRunning reports whether the round is still live. It turns false on the
// tick a collision is detected and never turns true again.
func (s *Session) IsRunning() bool {
	return s.running
}

// IsReversed reports whether the last tick ran backward.
func (s *Session) IsReversed() bool {
	return s.reversed
}

// IsFullReversed reports whether rewinding is blocked because the history
// buffer was recently drained. The cooldown lasts one full buffer worth of
// real time: HistoryCapacity ticks at the configured frame time.
func (s *Session) IsFullReversed() bool {
	return s.clock.Now()-s.lastFullRevert <= time.Duration(HistoryCapacity)*s.frameTime
}

// ReversePercent returns the remaining rewind charge as a 0-100 gauge.
func (s *Session) ReversePercent() int {
	return int(math.Round(float64(s.history.Len()) / HistoryCapacity * 100))
}

// Score returns the number of food items eaten this round.
func (s *Session) Score() int {
	return s.snake.Len() - StartLength
}

// Segments returns the snake's segment rectangles, head first.
func (s *Session) Segments() []core.Rect {
	return s.snake.Segments()
}

// Food returns the current food rectangle.
func (s *Session) Food() core.Rect {
	return s.food
}

// Area returns the session's bounding rectangle.
func (s *Session) Area() core.Rect {
	return s.area
}

// FrameTime returns the configured tick duration.
func (s *Session) FrameTime() time.Duration {
	return s.frameTime
}

// HistoryLen returns the number of buffered rewind snapshots.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

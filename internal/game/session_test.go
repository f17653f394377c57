package game

import (
	"math/rand"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/EliasCampos/snake-of-time/internal/audio"
	"github.com/EliasCampos/snake-of-time/internal/core"
)

// manualClock lets tests drive session time by hand.
type manualClock struct {
	now time.Duration
}

func (c *manualClock) Now() time.Duration { return c.now }

type playCall struct {
	ch  audio.Channel
	snd audio.Sound
}

// recorderSink records Play/Stop calls. A played channel stays busy until
// Stop, which is enough for routing assertions.
type recorderSink struct {
	plays []playCall
	stops []audio.Channel
	busy  map[audio.Channel]bool
}

func newRecorderSink() *recorderSink {
	return &recorderSink{busy: make(map[audio.Channel]bool)}
}

func (r *recorderSink) Play(ch audio.Channel, snd audio.Sound) {
	r.plays = append(r.plays, playCall{ch, snd})
	r.busy[ch] = true
}

func (r *recorderSink) Stop(ch audio.Channel) {
	r.stops = append(r.stops, ch)
	r.busy[ch] = false
}

func (r *recorderSink) IsBusy(ch audio.Channel) bool { return r.busy[ch] }

func (r *recorderSink) playsOn(ch audio.Channel) []playCall {
	var out []playCall
	for _, p := range r.plays {
		if p.ch == ch {
			out = append(out, p)
		}
	}
	return out
}

const testFrameTime = 40 * time.Millisecond

// cooldown elapsed; rewind charge available
const afterCooldown = time.Duration(HistoryCapacity)*testFrameTime + time.Millisecond

func newTestSession(t *testing.T, cfg Config) (*Session, *manualClock) {
	t.Helper()
	clk := &manualClock{}
	if cfg.Area == (core.Rect{}) {
		cfg.Area = core.NewRect(0, 0, 800, 600)
	}
	if cfg.FrameTime == 0 {
		cfg.FrameTime = testFrameTime
	}
	if cfg.Clock == nil {
		cfg.Clock = clk
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, clk
}

// plantFood pins the food so ticks behave deterministically.
func plantFood(s *Session, x, y int) {
	s.food = core.NewRect(x, y, FoodSize, FoodSize)
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Area: core.NewRect(0, 0, 0, 600), FrameTime: testFrameTime}},
		{"negative height", Config{Area: core.NewRect(0, 0, 800, -5), FrameTime: testFrameTime}},
		{"width too small for food margin", Config{Area: core.NewRect(0, 0, FoodSize * 2, 600), FrameTime: testFrameTime}},
		{"height too small for food margin", Config{Area: core.NewRect(0, 0, 800, FoodSize * 2), FrameTime: testFrameTime}},
		{"zero frame time", Config{Area: core.NewRect(0, 0, 800, 600)}},
		{"negative frame time", Config{Area: core.NewRect(0, 0, 800, 600), FrameTime: -time.Millisecond}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.cfg); err == nil {
				t.Error("expected a construction error")
			}
		})
	}
}

func TestNewSessionStart(t *testing.T) {
	s, _ := newTestSession(t, Config{})

	if !s.IsRunning() {
		t.Error("fresh session should be running")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
	if s.HistoryLen() != 0 || s.ReversePercent() != 0 {
		t.Errorf("HistoryLen() = %d, ReversePercent() = %d, expected 0/0",
			s.HistoryLen(), s.ReversePercent())
	}

	// Centered on the segment grid: (800/2)/15*15 = 390, (600/2)/15*15 = 300
	head := s.Segments()[0]
	if head.X != 390 || head.Y != 300 {
		t.Errorf("head at (%d, %d), expected (390, 300)", head.X, head.Y)
	}
	if len(s.Segments()) != StartLength {
		t.Errorf("segment count = %d, expected %d", len(s.Segments()), StartLength)
	}

	// Rewind is unavailable until one full recharge window passes
	if !s.IsFullReversed() {
		t.Error("fresh session should start with the rewind charge on cooldown")
	}
}

func TestTickForwardThenBackward(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	plantFood(s, 500, 500)
	before := s.Segments()
	beforeFood := s.Food()

	res := s.Tick()
	if res.Ate || res.Collided || res.Reversed {
		t.Fatalf("forward tick result = %+v, expected all false", res)
	}
	if head := s.Segments()[0]; head.X != 375 || head.Y != 300 {
		t.Fatalf("head at (%d, %d) after forward tick, expected (375, 300)", head.X, head.Y)
	}
	if s.HistoryLen() != 1 {
		t.Fatalf("HistoryLen() = %d after forward tick, expected 1", s.HistoryLen())
	}

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	res = s.Tick()

	if !res.Reversed {
		t.Fatal("expected a backward tick")
	}
	if !s.IsReversed() {
		t.Error("IsReversed() should report the backward tick")
	}
	if s.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d after backward tick, expected 0", s.HistoryLen())
	}

	after := s.Segments()
	if len(after) != len(before) {
		t.Fatalf("segment count changed across rewind: %d != %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Position() != before[i].Position() {
			t.Errorf("segment %d at %v after rewind, expected %v",
				i, after[i].Position(), before[i].Position())
		}
	}
	if s.Food().Position() != beforeFood.Position() {
		t.Errorf("food at %v after rewind, expected %v", s.Food().Position(), beforeFood.Position())
	}
}

func TestRewindBlockedDuringCooldown(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	plantFood(s, 500, 500)
	s.Tick()

	// Still inside the initial recharge window: held rewind must not engage
	clk.now = afterCooldown / 2
	s.HandleKey(KeyRewindHeld)
	res := s.Tick()
	if res.Reversed {
		t.Fatal("rewind engaged during cooldown")
	}
	if s.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, expected the blocked tick to run forward", s.HistoryLen())
	}

	clk.now = afterCooldown
	if res := s.Tick(); !res.Reversed {
		t.Error("rewind should engage once the cooldown has elapsed")
	}
}

func TestCooldownBoundary(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	window := time.Duration(HistoryCapacity) * testFrameTime

	clk.now = window
	if !s.IsFullReversed() {
		t.Error("charge should still be on cooldown at exactly the window length")
	}
	clk.now = window + time.Millisecond
	if s.IsFullReversed() {
		t.Error("charge should be available past the window length")
	}
}

func TestDrainRestartsCooldown(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	plantFood(s, 500, 500)
	for i := 0; i < 3; i++ {
		s.Tick()
	}

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	for i := 0; i < 3; i++ {
		if res := s.Tick(); !res.Reversed {
			t.Fatalf("backward tick %d did not engage", i)
		}
	}
	if s.HistoryLen() != 0 {
		t.Fatalf("HistoryLen() = %d after draining, expected 0", s.HistoryLen())
	}

	// Draining the buffer starts a fresh recharge window
	if !s.IsFullReversed() {
		t.Error("charge should be on cooldown right after a full drain")
	}
	if res := s.Tick(); res.Reversed {
		t.Error("held rewind should fall back to a forward step after a drain")
	}

	clk.now += time.Duration(HistoryCapacity) * testFrameTime
	if !s.IsFullReversed() {
		t.Error("charge should still be on cooldown at the window boundary")
	}
	clk.now += time.Millisecond
	if s.IsFullReversed() {
		t.Error("charge should recover after the window")
	}
}

func TestRewindFallsBackWhenHistoryEmpty(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	plantFood(s, 500, 500)

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	res := s.Tick()

	if res.Reversed {
		t.Error("rewind with empty history should not engage")
	}
	if head := s.Segments()[0]; head.X != 375 {
		t.Errorf("head.X = %d, expected the tick to run forward to 375", head.X)
	}
}

func TestEatGrowsAndScores(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	plantFood(s, 360, 300)

	res := s.Tick()
	if !res.Ate {
		t.Fatal("expected the tick to eat the food in the head's path")
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	if len(s.Segments()) != StartLength+1 {
		t.Errorf("segment count = %d, expected %d", len(s.Segments()), StartLength+1)
	}
	if s.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, the eat tick must still be rewindable", s.HistoryLen())
	}
}

func TestCollisionEndsRound(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	plantFood(s, 500, 500)

	var res TickResult
	ticks := 0
	for s.IsRunning() {
		res = s.Tick()
		if ticks++; ticks > 100 {
			t.Fatal("session never collided")
		}
	}

	// Head starts at x=390 moving left: 26 in-bounds steps, then the wall
	if ticks != 27 {
		t.Errorf("collided after %d ticks, expected 27", ticks)
	}
	if !res.Collided {
		t.Error("final tick should report the collision")
	}
	if s.HistoryLen() != HistoryCapacity {
		t.Errorf("HistoryLen() = %d, the colliding tick must not push a snapshot", s.HistoryLen())
	}

	// Terminal state: further input and ticks are ignored
	segs := s.Segments()
	s.HandleKey(KeyDown)
	if res := s.Tick(); res != (TickResult{}) {
		t.Errorf("tick after game over = %+v, expected zero result", res)
	}
	if s.IsRunning() {
		t.Error("session must stay terminal")
	}
	for i, seg := range s.Segments() {
		if seg.Position() != segs[i].Position() {
			t.Errorf("segment %d moved after game over", i)
		}
	}
}

func TestReversePercent(t *testing.T) {
	s, clk := newTestSession(t, Config{Area: core.NewRect(0, 0, 1500, 600)})
	plantFood(s, 0, 0)

	for i := 0; i < 13; i++ {
		s.Tick()
	}
	if got := s.ReversePercent(); got != 52 {
		t.Errorf("ReversePercent() = %d after 13 ticks, expected 52", got)
	}

	for i := 13; i < 30; i++ {
		s.Tick()
	}
	if got := s.ReversePercent(); got != 100 {
		t.Errorf("ReversePercent() = %d after 30 ticks, expected 100 (buffer full)", got)
	}

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if got := s.ReversePercent(); got != 80 {
		t.Errorf("ReversePercent() = %d after 5 backward ticks, expected 80", got)
	}
}

func TestPredictableFutureReplaysFood(t *testing.T) {
	s, clk := newTestSession(t, Config{PredictableFuture: true})
	plantFood(s, 350, 300)

	s.Tick() // head to 375, no eat yet
	res := s.Tick()
	if !res.Ate {
		t.Fatal("expected the second tick to eat")
	}
	displaced := s.Food()

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	if res := s.Tick(); !res.Reversed {
		t.Fatal("expected a backward tick")
	}
	if s.Food().Position() != (core.Point{X: 350, Y: 300}) {
		t.Fatalf("food at %v after rewinding the eat, expected the pre-eat position", s.Food().Position())
	}
	if s.Score() != 0 {
		t.Fatalf("Score() = %d after rewinding the eat, expected 0", s.Score())
	}

	// Replaying forward re-eats the restored food and must re-serve the
	// displaced position instead of a fresh random one
	s.HandleKey(KeyRewindReleased)
	res = s.Tick()
	if !res.Ate {
		t.Fatal("expected the replayed tick to eat again")
	}
	if s.Food().Position() != displaced.Position() {
		t.Errorf("food at %v after replay, expected the displaced position %v",
			s.Food().Position(), displaced.Position())
	}
}

func TestRewindWithoutPredictableDropsDisplacedFood(t *testing.T) {
	s, clk := newTestSession(t, Config{})
	plantFood(s, 350, 300)

	s.Tick()
	if res := s.Tick(); !res.Ate {
		t.Fatal("expected the second tick to eat")
	}

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	if res := s.Tick(); !res.Reversed {
		t.Fatal("expected a backward tick")
	}

	if s.Food().Position() != (core.Point{X: 350, Y: 300}) {
		t.Errorf("food at %v after rewind, expected the pre-eat position", s.Food().Position())
	}
	if len(s.nextFoods) != 0 {
		t.Errorf("displaced food queued without predictable mode: %v", s.nextFoods)
	}
}

func TestSoundRouting(t *testing.T) {
	sink := newRecorderSink()
	s, clk := newTestSession(t, Config{Audio: sink})
	plantFood(s, 500, 500)

	s.Tick()
	s.Tick()
	if len(sink.plays) != 0 {
		t.Fatalf("unexpected sounds during plain forward ticks: %v", sink.plays)
	}

	clk.now = afterCooldown
	s.HandleKey(KeyRewindHeld)
	s.Tick()
	s.Tick()

	// The rewind loop starts once and keeps playing across backward ticks
	rewinds := sink.playsOn(ChannelRewind)
	if len(rewinds) != 1 || rewinds[0].snd != audio.SoundRewind {
		t.Fatalf("rewind channel plays = %v, expected one SoundRewind", rewinds)
	}

	// History drained: the next tick runs forward and stops the loop.
	// The drain put the charge on cooldown, so held rewind stays inert.
	s.Tick()
	if len(sink.stops) != 1 || sink.stops[0] != ChannelRewind {
		t.Fatalf("stops = %v, expected the rewind channel stopped once", sink.stops)
	}

	s.HandleKey(KeyRewindReleased)
	plantFood(s, 360, 300)
	if res := s.Tick(); !res.Ate {
		t.Fatal("expected an eat tick")
	}
	eats := sink.playsOn(ChannelEat)
	if len(eats) != 1 || eats[0].snd != audio.SoundEat {
		t.Fatalf("eat channel plays = %v, expected one SoundEat", eats)
	}

	plantFood(s, 500, 500)
	for s.IsRunning() {
		s.Tick()
	}
	fails := sink.playsOn(ChannelFail)
	if len(fails) != 1 || fails[0].snd != audio.SoundFail {
		t.Fatalf("fail channel plays = %v, expected one SoundFail", fails)
	}
}

// Rewinding n ticks restores the exact pre-sequence state, for any tick count
// up to the history depth and any mix of turns along the way.
func TestRewindInverseProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		clk := &manualClock{}
		s, err := NewSession(Config{
			// Large enough that HistoryCapacity steps from the center can
			// reach neither a wall nor the pinned food
			Area:      core.NewRect(0, 0, 1500, 900),
			FrameTime: testFrameTime,
			Clock:     clk,
			Rand:      rand.New(rand.NewSource(rapid.Int64().Draw(rt, "seed"))),
		})
		if err != nil {
			rt.Fatalf("NewSession: %v", err)
		}
		plantFood(s, 0, 0)

		wantDir := s.snake.Direction()
		wantSegs := s.Segments()
		wantFood := s.Food()

		n := rapid.IntRange(1, HistoryCapacity).Draw(rt, "ticks")
		for i := 0; i < n; i++ {
			if i > 0 {
				// 0..3 map onto the turn events; 4 means no turn this tick
				if turn := rapid.IntRange(0, 4).Draw(rt, "turn"); turn < 4 {
					s.HandleKey(KeyEvent(turn))
				}
			}
			res := s.Tick()
			if res.Ate || res.Collided {
				rt.Fatalf("forward tick %d produced an event: %+v", i, res)
			}
		}
		if s.HistoryLen() != n {
			rt.Fatalf("HistoryLen() = %d after %d ticks, expected %d", s.HistoryLen(), n, n)
		}

		clk.now = afterCooldown
		s.HandleKey(KeyRewindHeld)
		for i := 0; i < n; i++ {
			if res := s.Tick(); !res.Reversed {
				rt.Fatalf("backward tick %d did not engage", i)
			}
		}

		if s.HistoryLen() != 0 {
			rt.Errorf("HistoryLen() = %d after full rewind, expected 0", s.HistoryLen())
		}
		if got := s.snake.Direction(); got != wantDir {
			rt.Errorf("direction = %s after full rewind, expected %s", got, wantDir)
		}
		gotSegs := s.Segments()
		if len(gotSegs) != len(wantSegs) {
			rt.Fatalf("segment count = %d after full rewind, expected %d", len(gotSegs), len(wantSegs))
		}
		for i := range wantSegs {
			if gotSegs[i].Position() != wantSegs[i].Position() {
				rt.Errorf("segment %d at %v after full rewind, expected %v",
					i, gotSegs[i].Position(), wantSegs[i].Position())
			}
		}
		if s.Food().Position() != wantFood.Position() {
			rt.Errorf("food at %v after full rewind, expected %v",
				s.Food().Position(), wantFood.Position())
		}
	})
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EliasCampos/snake-of-time/internal/config"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressMenu(t *testing.T, m MenuModel, keys ...string) MenuModel {
	t.Helper()
	for _, k := range keys {
		model, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = model.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T, expected MenuModel", model)
		}
	}
	return m
}

func TestMenuDifficultyCycles(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewMenuModel(cfg, 80, 24)

	// Move to the difficulty entry, then cycle right twice and wrap.
	m = pressMenu(t, m, "down", "right")
	if got := m.Config().Difficulty; got != config.DifficultyHard {
		t.Errorf("after one step right: difficulty = %q, expected hard", got)
	}
	m = pressMenu(t, m, "right")
	if got := m.Config().Difficulty; got != config.DifficultyEasy {
		t.Errorf("after wrap: difficulty = %q, expected easy", got)
	}
	m = pressMenu(t, m, "left")
	if got := m.Config().Difficulty; got != config.DifficultyHard {
		t.Errorf("after step left: difficulty = %q, expected hard", got)
	}
}

func TestMenuPredictableToggle(t *testing.T) {
	m := NewMenuModel(config.DefaultConfig(), 80, 24)

	m = pressMenu(t, m, "down", "down", "enter")
	if !m.Config().PredictableFuture {
		t.Error("expected predictable future toggled on")
	}
	m = pressMenu(t, m, "enter")
	if m.Config().PredictableFuture {
		t.Error("expected predictable future toggled back off")
	}
}

func TestMenuSelections(t *testing.T) {
	m := pressMenu(t, NewMenuModel(config.DefaultConfig(), 80, 24), "enter")
	if !m.WantsPlay() {
		t.Error("expected play selected from the first entry")
	}

	m = pressMenu(t, NewMenuModel(config.DefaultConfig(), 80, 24), "down", "down", "down", "enter")
	if !m.WantsScores() {
		t.Error("expected the scoreboard selected")
	}

	m = pressMenu(t, NewMenuModel(config.DefaultConfig(), 80, 24), "q")
	if !m.IsQuitting() {
		t.Error("expected quit")
	}
}

func TestMenuCursorStaysInBounds(t *testing.T) {
	m := NewMenuModel(config.DefaultConfig(), 80, 24)

	m = pressMenu(t, m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stop at the top", m.cursor)
	}

	m = pressMenu(t, m, "down", "down", "down", "down", "down", "down", "down")
	if m.cursor != menuItemCount-1 {
		t.Errorf("cursor = %d, expected to stop at the bottom", m.cursor)
	}
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EliasCampos/snake-of-time/internal/config"
)

// Menu entry indexes.
const (
	menuItemPlay = iota
	menuItemDifficulty
	menuItemPredictable
	menuItemScores
	menuItemQuit
	menuItemCount
)

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// MenuModel is the Bubble Tea model for the start menu. Settings toggled
// here are carried into the round via the returned config.
type MenuModel struct {
	cfg    config.GameConfig
	cursor int
	width  int
	height int

	play       bool
	openScores bool
	quitting   bool
}

// NewMenuModel creates a menu pre-filled with the given settings.
func NewMenuModel(cfg config.GameConfig, width, height int) MenuModel {
	return MenuModel{
		cfg:    cfg,
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch mapMenuKey(msg.String()) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuItemCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.toggle(-1)

	case MenuActionRight:
		m.toggle(1)

	case MenuActionSelect:
		switch m.cursor {
		case menuItemPlay:
			m.play = true
			return m, tea.Quit
		case menuItemDifficulty, menuItemPredictable:
			m.toggle(1)
		case menuItemScores:
			m.openScores = true
			return m, tea.Quit
		case menuItemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// toggle cycles the setting under the cursor.
func (m *MenuModel) toggle(dir int) {
	switch m.cursor {
	case menuItemDifficulty:
		order := []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard}
		idx := 1
		for i, d := range order {
			if d == m.cfg.Difficulty {
				idx = i
			}
		}
		m.cfg.Difficulty = order[(idx+dir+len(order))%len(order)]
	case menuItemPredictable:
		m.cfg.PredictableFuture = !m.cfg.PredictableFuture
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("S N A K E   O F   T I M E", m.width)))
	b.WriteString("\n\n")

	predictable := "off"
	if m.cfg.PredictableFuture {
		predictable = "on"
	}
	items := []string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", m.cfg.Difficulty),
		fmt.Sprintf("Predictable future: < %s >", predictable),
		"High scores",
		"Quit",
	}

	for i, item := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Config returns the settings as toggled by the user.
func (m MenuModel) Config() config.GameConfig {
	return m.cfg
}

// WantsPlay returns true if the user chose to start a round.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// WantsScores returns true if the user opened the scoreboard.
func (m MenuModel) WantsScores() bool {
	return m.openScores
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EliasCampos/snake-of-time/internal/audio"
	"github.com/EliasCampos/snake-of-time/internal/config"
	"github.com/EliasCampos/snake-of-time/internal/core"
	"github.com/EliasCampos/snake-of-time/internal/game"
	"github.com/EliasCampos/snake-of-time/internal/storage"
)

// rewindHoldWindow synthesizes the key-up event terminals cannot deliver:
// each rewind keypress re-arms the hold, and a tick this long after the last
// press counts as releasing the key. Must exceed the terminal's initial
// autorepeat delay or holding the key stutters.
const rewindHoldWindow = 550 * time.Millisecond

var (
	hudLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudScoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudRewindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// GameModel is the Bubble Tea model for one running round.
type GameModel struct {
	session *game.Session
	screen  *core.Screen
	store   *storage.Store
	cfg     config.GameConfig
	sink    audio.Sink
	keys    GameKeyMap
	help    help.Model
	charge  progress.Model

	width  int
	height int
	seed   int64

	rewindArmed bool
	lastRewind  time.Time
	scoreSaved  bool
	quitting    bool
	backToMenu  bool
	// Standalone runs (no surrounding menu flow) quit on back
	exitOnBack bool
}

// NewGameModel creates a model with a fresh round sized from the config,
// falling back to the terminal dimensions when the configured area is zero.
func NewGameModel(store *storage.Store, cfg config.GameConfig, sink audio.Sink, width, height int, seed int64) (GameModel, error) {
	m := GameModel{
		store:  store,
		cfg:    cfg,
		sink:   sink,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		charge: progress.New(progress.WithSolidFill("205"), progress.WithWidth(24), progress.WithoutPercentage()),
		width:  width,
		height: height,
		seed:   seed,
	}

	if err := m.resetSession(); err != nil {
		return m, err
	}
	return m, nil
}

// sessionArea picks the play area: the configured one, or the largest area
// that fits the terminal once the border, HUD and help rows are taken.
func (m *GameModel) sessionArea() core.Rect {
	if m.cfg.Area.Width > 0 && m.cfg.Area.Height > 0 {
		return core.NewRect(m.cfg.Area.Left, m.cfg.Area.Top, m.cfg.Area.Width, m.cfg.Area.Height)
	}
	// A 4x4 grid is the smallest area the food spawn margin allows.
	gridW := core.Max(m.width-2, 4)
	gridH := core.Max(m.height-4, 4)
	return core.NewRect(0, 0, gridW*game.SegmentSize, gridH*game.SegmentSize)
}

// resetSession starts a new round, reseeding when no fixed seed was given.
func (m *GameModel) resetSession() error {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	area := m.sessionArea()
	session, err := game.NewSession(game.Config{
		Area:              area,
		FrameTime:         config.FrameTimeForPreset(m.cfg.Difficulty),
		PredictableFuture: m.cfg.PredictableFuture,
		Audio:             m.sink,
		Rand:              rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return fmt.Errorf("tui: cannot start round: %w", err)
	}

	m.session = session
	gridW, gridH := area.W/game.SegmentSize+2, area.H/game.SegmentSize+2
	if m.screen == nil {
		m.screen = core.NewScreen(gridW, gridH)
	} else {
		m.screen.Resize(gridW, gridH)
	}
	m.scoreSaved = false
	m.rewindArmed = false
	return nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.session.FrameTime())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sink.Stop(game.ChannelRewind)
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if !m.session.IsRunning() {
			m.backToMenu = true
			if m.exitOnBack {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if !m.session.IsRunning() {
			if err := m.resetSession(); err != nil {
				return m, nil
			}
			return m, tickCmd(m.session.FrameTime())
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.session.HandleKey(game.KeyUp)
	case key.Matches(msg, m.keys.Down):
		m.session.HandleKey(game.KeyDown)
	case key.Matches(msg, m.keys.Left):
		m.session.HandleKey(game.KeyLeft)
	case key.Matches(msg, m.keys.Right):
		m.session.HandleKey(game.KeyRight)

	case key.Matches(msg, m.keys.Rewind):
		// Autorepeat keeps re-arming the hold while the key is down
		m.session.HandleKey(game.KeyRewindHeld)
		m.rewindArmed = true
		m.lastRewind = time.Now()
	}

	return m, nil
}

// handleResize refits the round to the new terminal size. An active round is
// restarted, matching how the play field itself changes under it.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	fitsTerminal := m.cfg.Area.Width == 0 || m.cfg.Area.Height == 0
	if fitsTerminal && m.session.IsRunning() {
		// Keep the old round if the new size cannot host one
		//nolint:errcheck
		m.resetSession()
	}
	return m, nil
}

// handleTick advances the simulation one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.session.IsRunning() {
		m.saveScoreOnce()
		return m, tickCmd(m.session.FrameTime())
	}

	if m.rewindArmed && time.Since(m.lastRewind) > rewindHoldWindow {
		m.session.HandleKey(game.KeyRewindReleased)
		m.rewindArmed = false
	}

	m.session.Tick()
	if !m.session.IsRunning() {
		m.saveScoreOnce()
	}

	return m, tickCmd(m.session.FrameTime())
}

// saveScoreOnce records the finished round, once per round.
func (m *GameModel) saveScoreOnce() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.session.Score() == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the round result is still shown
	m.store.SaveScore(m.session.Score(), string(m.cfg.Difficulty), m.cfg.PredictableFuture)
}

// View renders the HUD, the play field and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	renderSession(m.session, m.screen)
	if !m.session.IsRunning() {
		drawGameOver(m.session, m.screen)
	}

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderHUD composes the score and the rewind charge gauge.
func (m GameModel) renderHUD() string {
	score := hudLabelStyle.Render("score ") + hudScoreStyle.Render(fmt.Sprintf("%d", m.session.Score()))

	var gauge string
	switch {
	case m.session.IsReversed():
		gauge = hudRewindStyle.Render("<< rewinding ") + m.charge.ViewAs(float64(m.session.ReversePercent())/100)
	case m.session.IsFullReversed():
		gauge = hudLabelStyle.Render("recharging   ") + m.charge.ViewAs(float64(m.session.ReversePercent())/100)
	default:
		gauge = hudLabelStyle.Render("rewind       ") + m.charge.ViewAs(float64(m.session.ReversePercent())/100)
	}

	return score + "   " + gauge
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs one standalone round (plus any restarts) until the user
// leaves.
func RunGame(store *storage.Store, cfg config.GameConfig, sink audio.Sink, width, height int, seed int64) error {
	model, err := NewGameModel(store, cfg, sink, width, height, seed)
	if err != nil {
		return err
	}
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// screenModel is a mode that can hand control back to the menu.
type screenModel interface {
	tea.Model
	IsQuitting() bool
	BackToMenu() bool
}

// SessionModel manages the full session flow: menu -> mode -> menu.
// It is the top-level model of the interactive CLI and of SSH sessions.
type SessionModel struct {
	cfg        config.Config
	store      *storage.Store
	config     core.RuntimeConfig
	playerName string
	menu       MenuModel
	active     screenModel
	scores     *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(cfg config.Config, store *storage.Store, rt core.RuntimeConfig, playerName string) SessionModel {
	return SessionModel{
		cfg:        cfg,
		store:      store,
		config:     rt,
		playerName: playerName,
		menu:       NewMenuModel(DefaultSettings(cfg.Game.Speed, cfg.Versus.CPUDifficulty), rt),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.scores != nil:
		return m.updateScores(msg)
	case m.active != nil:
		return m.updateActive(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	choice := m.menu.Selected()
	if choice == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	if choice.Kind == MenuScoreboard {
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scores = &sb
		return m, sb.Init()
	}

	active, err := m.start(*choice)
	if err != nil {
		// Only registered modes are offered, so this is a programming error.
		m.menu = NewMenuModel(m.menu.Settings(), m.config)
		return m, nil
	}
	m.active = active
	return m, active.Init()
}

// start builds the model of the chosen mode.
func (m SessionModel) start(choice MenuChoice) (screenModel, error) {
	cfg := m.cfg
	s := choice.Settings

	switch choice.Kind {
	case MenuVersusCPU, MenuVersusLocal:
		lineup := s.Lineup(choice.Kind)
		lineup.Names = []string{m.playerName}
		match := NewMatch(cfg, m.store, lineup, string(s.Difficulty), m.config.Seed)
		return NewVersusModel(match, m.config), nil
	}

	id := "marathon"
	if choice.Kind == MenuAutoplay {
		id = "autoplay"
		cfg.Game.AutoplayDifficulty = string(s.Difficulty)
	} else {
		cfg.Game.Speed = s.Speed
	}
	game, err := registry.Create(id, cfg)
	if err != nil {
		return nil, err
	}
	return NewGameModel(game, m.store, m.config, m.playerName), nil
}

// updateActive forwards messages to the running mode.
func (m SessionModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.active.Update(msg)
	if sm, ok := next.(screenModel); ok {
		m.active = sm
	}

	if m.active.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.active.BackToMenu() {
		m.active = nil
		m.menu = NewMenuModel(m.menu.Settings(), m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateScores forwards messages to the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.scores = nil
		m.menu = NewMenuModel(m.menu.Settings(), m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.scores != nil:
		return m.scores.View()
	case m.active != nil:
		return m.active.View()
	}
	return m.menu.View()
}

// IsQuitting returns true if user requested to quit.
func (m SessionModel) IsQuitting() bool { return m.quitting }

// RunSession runs the menu-driven session in the local terminal.
func RunSession(cfg config.Config, store *storage.Store, rt core.RuntimeConfig, playerName string) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, store, rt, playerName),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

var (
	_ screenModel = GameModel{}
	_ screenModel = VersusModel{}
)

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// GameModel is the Bubble Tea model for a solo board.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	playerName string
	input      core.MultiInputFrame
	softDrop   *softDropTracker
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the result of the current game over was handled
	saveErr    error
}

// NewGameModel creates a model for the given game. Finished ranked games
// are saved to store under playerName; store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, playerName string) GameModel {
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		playerName: playerName,
		input:      core.NewMultiInputFrame(),
		softDrop:   newSoftDropTracker(cfg.TickRate),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
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
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	_, action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when nothing is running
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
		return m, nil
	}

	m.keyMapper.MapKeyToMultiFrame(msg, &m.input)
	return m, nil
}

// handleResize processes window resize events. Resizable modes keep their
// state; anything else restarts unless it is already over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	m.softDrop.Observe(&m.input)
	wasOver := m.gameState.GameOver
	result := m.game.Step(m.input.Player(core.Player1))
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		// Restarted
		m.scoreSaved = false
		m.saveErr = nil
		m.softDrop.Reset()
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records a finished ranked game once. Games without points
// are not recorded.
func (m *GameModel) saveResult() {
	m.scoreSaved = true
	ranked, ok := m.game.(registry.Ranked)
	if !ok || !ranked.Leaderboard() || m.store == nil {
		return
	}
	r := ranked.Result()
	if r.Score <= 0 {
		return
	}
	_, m.saveErr = m.store.SaveSolo(storage.SoloScore{
		Name:  storage.SafeName(m.playerName),
		Score: r.Score,
		Speed: r.Speed,
		Level: r.Level,
		Lines: r.Lines,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.saveErr != nil {
		m.screen.DrawTextColored(0, m.screen.Height()-1, "Score not saved: "+m.saveErr.Error(), core.ColorRed)
	}
	return RenderScreen(m.screen)
}

// State returns the last reported game state.
func (m GameModel) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// SaveErr returns the error of the last leaderboard write, if any.
func (m GameModel) SaveErr() error { return m.saveErr }

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, playerName string) error {
	p := tea.NewProgram(
		NewGameModel(game, store, cfg, playerName),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

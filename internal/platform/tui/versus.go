package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/solo"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/versus"
)

// boardGap is the blank columns between two versus boards.
const boardGap = 2

// boardColors tells the seats apart.
var boardColors = []core.Color{core.ColorCyan, core.ColorOrange, core.ColorGreen}

// VersusModel is the Bubble Tea model for a local match on one keyboard.
type VersusModel struct {
	match      *versus.Match
	screen     *core.Screen
	config     core.RuntimeConfig
	input      core.MultiInputFrame
	softDrop   *softDropTracker
	keyMapper  *KeyMapper
	paused     bool
	quitting   bool
	backToMenu bool
}

// NewMatch builds a match from the configuration. CPU seats use the named
// difficulty and, for the learned tier, the saved genome. Results go to
// store unless it is nil.
func NewMatch(cfg config.Config, store *storage.Store, lineup versus.Lineup, difficulty string, seed int64) *versus.Match {
	_, tier, _ := cfg.Tier(difficulty)
	opts := versus.Options{
		Lineup:         lineup,
		Seed:           seed,
		FallMillis:     cfg.Game.FallMillis,
		FastFallMillis: cfg.Game.FastFallMillis,
		Tier:           tier,
		Policy:         cfg.PolicyOptions(0, storage.NetworkLoader(cfg.AI.BestGenomeFile, cfg.AI.Topology())),
	}
	if store != nil {
		opts.Saver = store
	}
	return versus.New(opts)
}

// NewVersusModel creates a model driving match.
func NewVersusModel(match *versus.Match, cfg core.RuntimeConfig) VersusModel {
	return VersusModel{
		match:     match,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		input:     core.NewMultiInputFrame(),
		softDrop:  newSoftDropTracker(cfg.TickRate),
		keyMapper: NewVersusKeyMapper(),
	}
}

// Init starts the tick loop.
func (m VersusModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m VersusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m VersusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.match.Over() || m.paused {
			m.backToMenu = true
		}
		return m, nil
	case action == core.ActionPause:
		if !m.match.Over() {
			m.paused = !m.paused
		}
		return m, nil
	case action == core.ActionRestart:
		if m.match.Over() {
			m.match.Restart()
			m.softDrop.Reset()
			m.input.Clear()
		}
		return m, nil
	}

	m.keyMapper.MapKeyToMultiFrame(msg, &m.input)
	return m, nil
}

// handleTick processes simulation ticks.
func (m VersusModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	if !m.paused {
		m.softDrop.Observe(&m.input)
		m.match.Step(m.input, frameDuration(m.config.TickRate))
	}
	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// layoutWidth is the width of n boards side by side.
func layoutWidth(n int) int {
	return n*solo.FrameW + (n-1)*boardGap
}

// Render draws every board with its header and status line.
func (m VersusModel) Render(dst *core.Screen) {
	dst.Clear()
	boards := m.match.Boards()
	w := layoutWidth(len(boards))
	if dst.Width() < w || dst.Height() < solo.FrameH+2 {
		solo.DrawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, solo.FrameH+2))
		return
	}

	x := (dst.Width() - w) / 2
	y := (dst.Height() - solo.FrameH - 2) / 2
	for i, b := range boards {
		bx := x + i*(solo.FrameW+boardGap)
		color := boardColors[i%len(boardColors)]
		snap := b.Session.Snapshot()

		dst.DrawTextColored(bx, y, fitText(fmt.Sprintf("%s %d", b.Seat.Name, snap.Score), solo.FrameW), color)
		frame := color
		if snap.GameOver {
			frame = core.ColorDim
		}
		solo.DrawBoard(dst, bx, y+1, snap, frame)

		status := fmt.Sprintf("Lines %d Lv %d", snap.Lines, snap.Level)
		if snap.GameOver {
			status = "OUT"
		}
		dst.DrawText(bx, y+1+solo.FrameH, fitText(status, solo.FrameW))
	}

	if res, ok := m.match.Result(); ok {
		solo.DrawOverlay(dst, resultLine(res), "R restart - B menu")
		if err := m.match.SaveErr(); err != nil {
			dst.DrawTextColored(0, dst.Height()-1, "Result not saved: "+err.Error(), core.ColorRed)
		}
	} else if m.paused {
		solo.DrawOverlay(dst, "Paused", "P continue - B menu")
	}
}

// resultLine names the winner, or every board sharing the top score.
func resultLine(res versus.MatchResult) string {
	names := lo.Map(res.Winners(), func(b versus.BoardResult, _ int) string { return b.Name })
	if res.Draw {
		return "Draw: " + strings.Join(names, ", ")
	}
	return "Winner: " + strings.Join(names, ", ")
}

// fitText cuts text to at most n runes.
func fitText(text string, n int) string {
	if r := []rune(text); len(r) > n {
		return string(r[:n])
	}
	return text
}

// View renders the match.
func (m VersusModel) View() string {
	if m.quitting {
		return ""
	}
	m.Render(m.screen)
	return RenderScreen(m.screen)
}

// Match returns the running match.
func (m VersusModel) Match() *versus.Match { return m.match }

// IsQuitting returns true if user requested to quit entirely.
func (m VersusModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m VersusModel) BackToMenu() bool { return m.backToMenu }

// RunVersus starts a standalone Bubble Tea program for one match.
func RunVersus(match *versus.Match, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewVersusModel(match, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

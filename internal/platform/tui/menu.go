package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
	"github.com/vovakirdan/tui-tetris/internal/versus"
)

// MenuKind identifies a menu entry.
type MenuKind int

const (
	MenuMarathon MenuKind = iota
	MenuAutoplay
	MenuVersusCPU
	MenuVersusLocal
	MenuDifficulty
	MenuScoreboard
)

// MenuItem is one line of the menu.
type MenuItem struct {
	Kind  MenuKind
	Title string
}

var menuItems = []MenuItem{
	{MenuMarathon, "Marathon"},
	{MenuAutoplay, "Autoplay"},
	{MenuVersusCPU, "Versus vs CPU"},
	{MenuVersusLocal, "Versus local"},
	{MenuDifficulty, "CPU difficulty"},
	{MenuScoreboard, "Scoreboard"},
}

// cpuLineups are the seatings offered against the computer.
var cpuLineups = []versus.Lineup{
	{Players: 2, CPUs: 1},
	{Players: 3, CPUs: 2},
	{Players: 3, CPUs: 1},
}

// Settings are the options adjusted with left and right in the menu.
type Settings struct {
	Speed      int
	Difficulty ai.Difficulty
	CPULineup  int // Index into the vs CPU seatings
	Players    int // Boards of a local match without CPUs
}

// DefaultSettings returns the menu settings for a speed and CPU difficulty.
func DefaultSettings(speed int, difficulty string) Settings {
	d, _ := ai.ParseDifficulty(difficulty)
	return Settings{
		Speed:      tetris.ClampSpeed(speed),
		Difficulty: d,
		Players:    versus.MinBoards,
	}
}

// Lineup returns the seating of the chosen versus entry.
func (s Settings) Lineup(kind MenuKind) versus.Lineup {
	if kind == MenuVersusCPU {
		return cpuLineups[s.CPULineup]
	}
	return versus.Lineup{Players: s.Players}
}

// MenuChoice is what the player picked.
type MenuChoice struct {
	Kind     MenuKind
	Settings Settings
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(core.ColorCyan.RGB().Hex()))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(core.ColorYellow.RGB().Hex()))
	menuHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	settings  Settings
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(settings Settings, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		settings:  settings,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionScoreboard:
		m.selected = &MenuChoice{Kind: MenuScoreboard, Settings: m.settings}
		return m, tea.Quit

	case MenuActionSelect:
		item := menuItems[m.cursor]
		if item.Kind == MenuDifficulty {
			m.adjust(1)
			return m, nil
		}
		m.selected = &MenuChoice{Kind: item.Kind, Settings: m.settings}
		return m, tea.Quit
	}

	return m, nil
}

// adjust changes the setting of the highlighted entry.
func (m *MenuModel) adjust(delta int) {
	s := &m.settings
	switch menuItems[m.cursor].Kind {
	case MenuMarathon:
		s.Speed = tetris.ClampSpeed(s.Speed + delta)
	case MenuVersusCPU:
		s.CPULineup = wrap(s.CPULineup+delta, len(cpuLineups))
	case MenuVersusLocal:
		s.Players = core.Clamp(s.Players+delta, versus.MinBoards, versus.MaxBoards)
	case MenuAutoplay, MenuDifficulty:
		i := slices.Index(ai.Difficulties, s.Difficulty)
		s.Difficulty = ai.Difficulties[wrap(i+delta, len(ai.Difficulties))]
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// option describes the setting shown next to an entry.
func (m MenuModel) option(kind MenuKind) string {
	s := m.settings
	switch kind {
	case MenuMarathon:
		return fmt.Sprintf("speed %d", s.Speed)
	case MenuAutoplay, MenuDifficulty:
		return string(s.Difficulty)
	case MenuVersusCPU:
		l := cpuLineups[s.CPULineup]
		return fmt.Sprintf("%dP + %d CPU", l.Humans(), l.CPUs)
	case MenuVersusLocal:
		return fmt.Sprintf("%d players", s.Players)
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  T E T R I S  "), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := fmt.Sprintf("%-16s", item.Title)
		if opt := m.option(item.Kind); opt != "" {
			line += fmt.Sprintf("< %s >", opt)
		}
		line = fmt.Sprintf("%-34s", line)
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Adjust  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or nil if none was chosen.
func (m MenuModel) Selected() *MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Settings returns the current menu settings.
func (m MenuModel) Settings() Settings {
	return m.settings
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Package solo adapts a single tetris session to the platform: a marathon
// mode driven by the player and an autoplay mode driven by a CPU agent.
package solo

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Mode selects who drives the board.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeAutoplay Mode = "autoplay"
)

// BannerFrames is how long a clear banner stays up.
const BannerFrames = 90

// Game is one solo board.
type Game struct {
	mode Mode
	cfg  config.Config

	session *tetris.Session
	clock   tetris.Clock
	agent   *ai.Agent
	frame   time.Duration
	rate    int

	seed     int64
	fixed    bool
	tick     uint64
	paused   bool
	tooSmall bool

	bannerSeq   int
	bannerTicks int

	difficulty ai.Difficulty
	policyErr  error

	screenW int
	screenH int
}

// New creates a marathon game.
func New(cfg config.Config) *Game {
	return &Game{mode: ModeMarathon, cfg: cfg}
}

// NewAutoplay creates a game whose moves are chosen by the configured
// autoplay tier.
func NewAutoplay(cfg config.Config) *Game {
	return &Game{mode: ModeAutoplay, cfg: cfg}
}

func init() {
	registry.Register(string(ModeMarathon), "Classic solo play, scores go on the leaderboard", func(cfg config.Config) registry.Game {
		return New(cfg)
	})
	registry.Register(string(ModeAutoplay), "Watch a CPU agent play a solo board", func(cfg config.Config) registry.Game {
		return NewAutoplay(cfg)
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAutoplay {
		return "Tetris (Autoplay)"
	}
	return "Tetris"
}

// Reset starts a new session. A zero seed draws a fresh one on every reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.fixed = cfg.Seed != 0
	g.seed = core.ResolveSeed(cfg.Seed)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.rate = cfg.TickRate
	if g.rate <= 0 {
		g.rate = g.cfg.Game.TickRate
	}
	g.frame = time.Second / time.Duration(max(g.rate, 1))

	g.tick = 0
	g.paused = false
	g.bannerSeq = 0
	g.bannerTicks = 0
	g.clock.Reset()
	g.session = tetris.NewSession(tetris.Options{
		Mode:           tetris.ModeSolo,
		Speed:          g.cfg.Game.Speed,
		Seed:           g.seed,
		FallMillis:     g.cfg.Game.FallMillis,
		FastFallMillis: g.cfg.Game.FastFallMillis,
	})

	g.agent = nil
	g.policyErr = nil
	if g.mode == ModeAutoplay {
		g.setupAgent()
	}
}

// Resize records the terminal size. A board that does not fit is frozen
// until the terminal grows.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < FrameW+PreviewW+8 || height < FrameH+1
}

func (g *Game) setupAgent() {
	d, tier, _ := g.cfg.Tier(g.cfg.Game.AutoplayDifficulty)
	loader := storage.NetworkLoader(g.cfg.AI.BestGenomeFile, g.cfg.AI.Topology())
	policy, err := ai.BuildPolicy(tier.Policy, g.cfg.PolicyOptions(uint64(g.seed), loader))
	g.difficulty = d
	g.policyErr = err
	g.agent = ai.NewAgent(policy, g.cfg.AI.AIMoveDelay)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.session.GameOver() {
		seed := int64(0)
		if g.fixed {
			seed = g.seed
		}
		g.Reset(core.RuntimeConfig{
			Seed:     seed,
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.rate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	if g.session.GameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	before := g.session.Lines()
	if g.agent != nil {
		g.agent.Step(g.session)
	} else {
		g.session.HandleInput(in)
	}
	g.clock.Advance(g.session, g.frame)

	if c := g.session.LastClear(); c.Lines > 0 && c.Seq != g.bannerSeq {
		g.bannerSeq = c.Seq
		g.bannerTicks = BannerFrames
	}

	return core.StepResult{State: g.State(), Cleared: g.session.Lines() - before}
}

// Render draws the board, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		DrawOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	snap := g.session.Snapshot()
	x := (dst.Width() - FrameW - PreviewW - 6) / 2
	y := max((dst.Height()-FrameH)/2, 0)
	DrawBoard(dst, x, y, snap, core.ColorWhite)

	px := x + FrameW + 3
	dst.DrawTextColored(px, y, "NEXT", core.ColorWhite)
	DrawPreview(dst, px, y+2, snap.Next)

	lines := []string{
		fmt.Sprintf("Score %d", snap.Score),
		fmt.Sprintf("Lines %d", snap.Lines),
		fmt.Sprintf("Level %d", snap.Level),
		fmt.Sprintf("Speed %d", snap.Speed),
	}
	if g.agent != nil {
		lines = append(lines, "", "CPU "+string(g.difficulty), g.agent.Policy().Name())
	}
	for i, l := range lines {
		dst.DrawText(px, y+PreviewH+3+i, l)
	}
	if g.bannerTicks > 0 {
		dst.DrawTextColored(px, y+FrameH-2, Banner(snap.Clear), core.ColorYellow)
	}

	switch {
	case snap.GameOver:
		DrawOverlay(dst, "Game Over", fmt.Sprintf("Score %d - press R to restart", snap.Score))
	case g.paused:
		DrawOverlay(dst, "Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.State()
	st.Paused = g.paused
	return st
}

// Snapshot returns the session state for rendering and determinism tests.
func (g *Game) Snapshot() tetris.Snapshot {
	return g.session.Snapshot()
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 { return g.seed }

// Leaderboard reports whether finished runs are recorded. Autoplay runs
// are not.
func (g *Game) Leaderboard() bool { return g.mode == ModeMarathon }

// Result returns the leaderboard fields of the current session.
func (g *Game) Result() tetris.SoloResult { return g.session.Result() }

// PolicyErr describes why autoplay fell back to a weaker policy.
func (g *Game) PolicyErr() error { return g.policyErr }

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Ranked    = (*Game)(nil)
	_ registry.Resizable = (*Game)(nil)
)

package versus

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Options configures a match.
type Options struct {
	Lineup Lineup

	// Seed drives every board's piece sequence, so all boards see the
	// same pieces. 0 picks a fresh seed.
	Seed           int64
	FallMillis     int
	FastFallMillis int

	// Tier is the CPU behaviour. A zero MoveDelay uses DefaultCPUMoveDelay.
	Tier ai.Tier
	// Policy carries the heuristic weights and genome loader for CPU seats.
	Policy ai.Options

	// Saver receives the result once when the match ends. May be nil.
	Saver ResultSaver
}

// DefaultCPUMoveDelay is the frames between CPU moves when the tier sets none.
const DefaultCPUMoveDelay = 20

// Board is one seat's session with its fall clock and optional agent.
type Board struct {
	Seat    Seat
	Session *tetris.Session
	Agent   *ai.Agent // nil for human seats

	clock tetris.Clock
}

// Match is a local multi-board game. It is driven frame by frame from the
// platform's tick loop and is not safe for concurrent use.
type Match struct {
	id     string
	opts   Options
	seed   int64
	boards []*Board

	frames  uint64
	elapsed time.Duration

	result    *MatchResult
	saved     bool
	saveErr   error
	policyErr error
	agentErr  error
}

// New creates a match. Every board is usable even when a CPU policy had to
// fall back to a weaker one; PolicyErr reports why.
func New(opts Options) *Match {
	m := &Match{
		id:   newMatchID(),
		opts: opts,
		seed: core.ResolveSeed(opts.Seed),
	}
	m.setup()
	return m
}

func (m *Match) setup() {
	delay := m.opts.Tier.MoveDelay
	if delay <= 0 {
		delay = DefaultCPUMoveDelay
	}

	var errs []error
	m.boards = m.boards[:0]
	for i, seat := range m.opts.Lineup.Seats() {
		b := &Board{
			Seat: seat,
			Session: tetris.NewSession(tetris.Options{
				Mode:           tetris.ModeVersus,
				Seed:           m.seed,
				FallMillis:     m.opts.FallMillis,
				FastFallMillis: m.opts.FastFallMillis,
			}),
		}
		if seat.CPU {
			po := m.opts.Policy
			po.Seed = uint64(m.seed) + uint64(i)
			policy, err := ai.BuildPolicy(m.opts.Tier.Policy, po)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", seat.Name, err))
			}
			b.Agent = ai.NewAgent(policy, delay)
		}
		m.boards = append(m.boards, b)
	}
	m.policyErr = errors.Join(errs...)
}

func newMatchID() string {
	return hex.EncodeToString(frand.Bytes(8))
}

// ID returns the match identifier stored with the result.
func (m *Match) ID() string { return m.id }

// Seed returns the resolved piece seed.
func (m *Match) Seed() int64 { return m.seed }

// Boards returns the boards in seat order.
func (m *Match) Boards() []*Board { return m.boards }

// Frames returns how many frames have been stepped.
func (m *Match) Frames() uint64 { return m.frames }

// PolicyErr describes CPU policies that fell back at creation.
func (m *Match) PolicyErr() error { return m.policyErr }

// Step advances every live board by one frame: human input first, then the
// CPU agents, then gravity. Returns true once every board is over.
func (m *Match) Step(input core.MultiInputFrame, frame time.Duration) bool {
	if m.result != nil {
		return true
	}

	for _, b := range m.boards {
		if b.Session.GameOver() {
			continue
		}
		if b.Agent != nil {
			// A policy that finds no move passes; the clock still drops the piece.
			if _, err := b.Agent.Step(b.Session); err != nil && m.agentErr == nil {
				m.agentErr = fmt.Errorf("%s: %w", b.Seat.Name, err)
			}
		} else {
			b.Session.HandleInput(input.Player(b.Seat.Player))
		}
		b.clock.Advance(b.Session, frame)
	}
	m.frames++
	m.elapsed += frame

	if m.Over() {
		m.finish()
		return true
	}
	return false
}

// Over reports whether every board has finished.
func (m *Match) Over() bool {
	return lo.EveryBy(m.boards, func(b *Board) bool { return b.Session.GameOver() })
}

// finish resolves winners and saves the result exactly once.
func (m *Match) finish() {
	if m.result != nil {
		return
	}
	top := lo.Max(lo.Map(m.boards, func(b *Board, _ int) int { return b.Session.Score() }))

	res := MatchResult{
		MatchID:  m.id,
		Frames:   m.frames,
		Duration: m.elapsed,
	}
	for _, b := range m.boards {
		res.Boards = append(res.Boards, BoardResult{
			Player: b.Seat.Player,
			Name:   b.Seat.Name,
			Score:  b.Session.Score(),
			Lines:  b.Session.Lines(),
			Level:  b.Session.Level(),
			IsCPU:  b.Seat.CPU,
			Winner: b.Session.Score() == top,
		})
	}
	res.Draw = len(res.Winners()) > 1
	m.result = &res

	if m.opts.Saver != nil && !m.saved {
		m.saved = true
		m.saveErr = m.opts.Saver.SaveMatchResult(res)
	}
}

// Result returns the outcome once the match is over.
func (m *Match) Result() (MatchResult, bool) {
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// SaveErr returns the error from saving the result, if any.
func (m *Match) SaveErr() error { return m.saveErr }

// AgentErr returns the first error a CPU policy reported while playing.
// The board keeps falling without that move.
func (m *Match) AgentErr() error { return m.agentErr }

// Restart starts a fresh match with the same lineup and a new id. A fixed
// seed replays the same pieces.
func (m *Match) Restart() {
	m.id = newMatchID()
	m.seed = core.ResolveSeed(m.opts.Seed)
	m.frames = 0
	m.elapsed = 0
	m.result = nil
	m.saved = false
	m.saveErr = nil
	m.agentErr = nil
	m.setup()
}

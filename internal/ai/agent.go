package ai

import (
	"errors"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Agent drives a session with a policy, placing one piece every Delay frames.
type Agent struct {
	policy Policy
	delay  int
	timer  int
	moves  int
}

// NewAgent creates an agent. Delays below 1 act every frame.
func NewAgent(p Policy, delay int) *Agent {
	return &Agent{policy: p, delay: max(delay, 1)}
}

// Policy returns the policy the agent plays with.
func (a *Agent) Policy() Policy { return a.policy }

// Delay returns the frames between placements.
func (a *Agent) Delay() int { return a.delay }

// Moves returns the number of placements made so far.
func (a *Agent) Moves() int { return a.moves }

// Step advances one frame. When the cadence is due it chooses and plays a
// move and reports true. An empty move list is a pass.
func (a *Agent) Step(s *tetris.Session) (bool, error) {
	if s.GameOver() {
		return false, nil
	}
	a.timer++
	if a.timer < a.delay {
		return false, nil
	}
	a.timer = 0
	m, err := a.policy.Choose(s)
	if errors.Is(err, ErrNoMoves) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	Apply(s, m)
	a.moves++
	return true, nil
}

// Reset restarts the cadence.
func (a *Agent) Reset() {
	a.timer = 0
	a.moves = 0
}

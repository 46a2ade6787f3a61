package versus

import (
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// BoardResult is the final state of one board.
type BoardResult struct {
	Player core.PlayerID
	Name   string
	Score  int
	Lines  int
	Level  int
	IsCPU  bool
	Winner bool
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID  string
	Boards   []BoardResult
	Draw     bool // More than one board shares the top score
	Frames   uint64
	Duration time.Duration
}

// Winners returns the boards with the top score.
func (r MatchResult) Winners() []BoardResult {
	return lo.Filter(r.Boards, func(b BoardResult, _ int) bool { return b.Winner })
}

// HasCPU reports whether any board was computer controlled.
func (r MatchResult) HasCPU() bool {
	return lo.SomeBy(r.Boards, func(b BoardResult) bool { return b.IsCPU })
}

// ResultSaver persists finished matches.
// This lets a match save itself without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(result MatchResult) error
}

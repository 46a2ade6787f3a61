// Package ai searches placements for the falling piece and scores the
// resulting boards with hand-tuned or learned evaluators.
package ai

import (
	"errors"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// ErrNoMoves is returned by a Policy when the enumerator finds nothing to play.
var ErrNoMoves = errors.New("ai: no legal moves")

// Move is a placement: rotate the falling piece Rotations times, slide its
// pivot to Column, then hard-drop.
type Move struct {
	Rotations int
	Column    int
}

// Candidate is a legal move together with where the piece comes to rest.
type Candidate struct {
	Move    Move
	Landing tetris.Piece
}

// Enumerate lists every placement reachable by rotating in place, sliding
// straight to a column and dropping. Order is rotation-major, column-minor.
// A finished session has no moves.
func Enumerate(s *tetris.Session) []Candidate {
	if s.GameOver() {
		return nil
	}
	var out []Candidate
	for rot := 0; rot < 4; rot++ {
		rotated := s.Clone()
		for i := 0; i < rot; i++ {
			rotated.Rotate()
		}
		for col := 0; col < tetris.Width; col++ {
			sim := rotated.Clone()
			if !sim.SlideToward(col) {
				continue
			}
			landing := sim.Ghost()
			if !landing.InBounds() {
				continue
			}
			out = append(out, Candidate{Move: Move{Rotations: rot, Column: col}, Landing: landing})
		}
	}
	return out
}

// Moves is Enumerate without the landing positions.
func Moves(s *tetris.Session) []Move {
	cands := Enumerate(s)
	moves := make([]Move, len(cands))
	for i, c := range cands {
		moves[i] = c.Move
	}
	return moves
}

// Apply plays m on s and returns the rows it cleared.
func Apply(s *tetris.Session, m Move) int {
	return s.Place(m.Rotations, m.Column)
}

// Outcome plays the candidate on a clone of s and returns the board it
// leaves behind, full rows already cleared.
func (c Candidate) Outcome(s *tetris.Session) tetris.Grid {
	sim := s.Clone()
	Apply(sim, c.Move)
	return sim.Board().Grid()
}

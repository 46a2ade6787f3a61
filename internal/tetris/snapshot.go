package tetris

// Snapshot captures the complete session state for rendering and
// determinism tests.
type Snapshot struct {
	Board    Grid
	Current  Piece
	Next     Piece
	Ghost    Piece
	Score    int
	Lines    int
	Level    int
	Speed    int
	Locks    int
	GameOver bool
	FastDrop bool
	Clear    Clear
}

// Snapshot returns a read-only copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:    s.board.grid,
		Current:  s.current,
		Next:     s.next,
		Ghost:    s.Ghost(),
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		Speed:    s.speed,
		Locks:    s.locks,
		GameOver: s.gameOver,
		FastDrop: s.fastDrop,
		Clear:    s.lastClear,
	}
}

// SoloResult is what a finished solo session hands to a leaderboard.
type SoloResult struct {
	Score int
	Speed int
	Level int
	Lines int
}

// Result returns the leaderboard fields of the session.
func (s *Session) Result() SoloResult {
	return SoloResult{
		Score: s.score,
		Speed: s.speed,
		Level: s.level,
		Lines: s.lines,
	}
}

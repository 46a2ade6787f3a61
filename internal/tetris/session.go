package tetris

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Mode selects how a session scores.
type Mode int

const (
	// ModeSolo applies the manual speed multiplier to line points.
	ModeSolo Mode = iota
	// ModeVersus is one board of a local match; points are unscaled.
	ModeVersus
	// ModeSimulation is used by AI search and training; points are unscaled.
	ModeSimulation
)

// Options configures a new session.
type Options struct {
	Mode           Mode
	Speed          int   // Manual speed tier 1..5, 0 means DefaultSpeed
	Seed           int64 // Seed for the piece sequence
	FallMillis     int   // Base normal fall interval, 0 means DefaultFallMillis
	FastFallMillis int   // Soft drop interval, 0 means DefaultFastFallMillis
}

// Clear describes the most recent lock that removed rows.
type Clear struct {
	Lines  int
	Points int
	Name   string
	Seq    int // Lock counter value when the clear happened
}

// Session owns one board with its falling and preview pieces and runs the
// fall, lock, clear, score and promote cycle.
//
// A session is not safe for concurrent use. Clone it for parallel search.
type Session struct {
	mode  Mode
	board Board

	current Piece
	next    Piece

	src *rand.PCG
	rng *rand.Rand

	score        int
	lines        int
	level        int
	speed        int
	pendingLines int
	locks        int

	fallMillis int
	fastMillis int
	interval   time.Duration

	gameOver bool
	fastDrop bool
	landing  bool

	lastClear Clear
}

// NewSession creates a session with an empty board, a falling piece at the
// spawn anchor and a preview piece, both drawn from the seeded source.
func NewSession(opts Options) *Session {
	if opts.Speed == 0 {
		opts.Speed = DefaultSpeed
	}
	if opts.FallMillis <= 0 {
		opts.FallMillis = DefaultFallMillis
	}
	if opts.FastFallMillis <= 0 {
		opts.FastFallMillis = DefaultFastFallMillis
	}

	src := rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)^0x9e3779b97f4a7c15)
	s := &Session{
		mode:       opts.Mode,
		src:        src,
		rng:        rand.New(src),
		level:      LevelStart,
		speed:      ClampSpeed(opts.Speed),
		fallMillis: opts.FallMillis,
		fastMillis: opts.FastFallMillis,
	}
	s.interval = FallInterval(s.fallMillis, s.fastMillis, s.speed, s.level)
	s.current = NewPiece(s.randomShape(), SpawnAnchor)
	s.next = NewPiece(s.randomShape(), PreviewAnchor)
	return s
}

// NewSessionFrom is NewSession starting on a prepared stack with the given
// falling shape at the spawn anchor. The preview is still drawn from the seed.
func NewSessionFrom(opts Options, g Grid, current Shape) *Session {
	s := NewSession(opts)
	s.board = Board{grid: g}
	s.current = NewPiece(current, SpawnAnchor)
	return s
}

func (s *Session) randomShape() Shape {
	return Shapes[s.rng.IntN(len(Shapes))]
}

// Tick advances the falling piece one row if fast matches the active
// cadence: normal ticks only act without soft drop, fast ticks only with
// it. Returns true if the tick was applied.
func (s *Session) Tick(fast bool) bool {
	if s.gameOver || fast != s.fastDrop {
		return false
	}
	s.step()
	return true
}

// step moves the piece down once and locks it if it landed.
func (s *Session) step() bool {
	moved, landed := s.current.Move(&s.board, Down)
	if landed {
		s.landing = true
		s.land()
	}
	return moved
}

// land locks the falling piece and runs the post-lock sequence.
func (s *Session) land() {
	cells := s.current.Cells[:]
	blocked := s.board.SpawnBlocked(cells)
	s.board.Lock(cells)
	s.locks++
	if blocked {
		s.gameOver = true
		s.landing = false
		return
	}

	s.pendingLines = s.board.ClearFullLines()
	s.award(s.pendingLines)
	s.pendingLines = 0

	s.fastDrop = false
	s.promote()
}

func (s *Session) award(n int) {
	if n == 0 {
		return
	}
	multiplier := 1.0
	if s.mode == ModeSolo {
		multiplier = SpeedMultiplier(s.speed)
	}
	points := Points(n, multiplier)
	s.score += points
	s.lines += n
	s.lastClear = Clear{Lines: n, Points: points, Name: ClearName(n), Seq: s.locks}

	if level := LevelFor(s.lines); level != s.level {
		s.level = level
		s.interval = FallInterval(s.fallMillis, s.fastMillis, s.speed, s.level)
	}
}

// promote moves the preview piece to the spawn anchor and draws a new preview.
func (s *Session) promote() {
	s.current = s.next.Translated(SpawnAnchor.Sub(PreviewAnchor))
	s.next = NewPiece(s.randomShape(), PreviewAnchor)
	s.landing = false
}

// Move shifts the falling piece. A blocked downward move lands and locks it.
func (s *Session) Move(dir Direction) bool {
	if s.gameOver {
		return false
	}
	if dir == Down {
		return s.step()
	}
	moved, _ := s.current.Move(&s.board, dir)
	return moved
}

// Rotate turns the falling piece if the rotation is free.
func (s *Session) Rotate() bool {
	if s.gameOver {
		return false
	}
	return s.current.Rotate(&s.board)
}

// SetSoftDrop toggles the fast fall cadence.
func (s *Session) SetSoftDrop(on bool) {
	if s.gameOver {
		return
	}
	s.fastDrop = on
}

// Ghost returns the falling piece moved straight down until blocked,
// without changing the session.
func (s *Session) Ghost() Piece {
	p := s.current
	for {
		if moved, _ := p.Move(&s.board, Down); !moved {
			return p
		}
	}
}

// HardDrop drops the falling piece until it lands and locks it.
// Returns the number of rows cleared by the lock.
func (s *Session) HardDrop() int {
	if s.gameOver {
		return 0
	}
	before := s.lines
	s.current = s.Ghost()
	s.landing = true
	s.land()
	return s.lines - before
}

// Place rotates the falling piece n times, slides its pivot toward column
// until blocked, then hard-drops it. Returns the rows cleared.
func (s *Session) Place(rotations, column int) int {
	if s.gameOver {
		return 0
	}
	for i := 0; i < rotations; i++ {
		s.current.Rotate(&s.board)
	}
	s.SlideToward(column)
	return s.HardDrop()
}

// SlideToward shifts the falling piece one cell at a time until its pivot
// reaches column or a shift is blocked. Returns true if the column was reached.
func (s *Session) SlideToward(column int) bool {
	for s.current.Pivot().X != column {
		dir := Right
		if column < s.current.Pivot().X {
			dir = Left
		}
		if moved, _ := s.current.Move(&s.board, dir); !moved {
			return false
		}
	}
	return true
}

// Clone returns an independent copy that shares no mutable state with s.
// The random source is copied too, so the clone draws the same future pieces.
func (s *Session) Clone() *Session {
	c := *s
	src := *s.src
	c.src = &src
	c.rng = rand.New(c.src)
	return &c
}

// Board returns the locked cells. The pointer stays valid for the session's lifetime.
func (s *Session) Board() *Board { return &s.board }

// Current returns the falling piece.
func (s *Session) Current() Piece { return s.current }

// Next returns the preview piece.
func (s *Session) Next() Piece { return s.next }

// Score returns the accumulated points.
func (s *Session) Score() int { return s.score }

// Lines returns the cumulative number of cleared rows.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Speed returns the manual speed tier.
func (s *Session) Speed() int { return s.speed }

// Mode returns the scoring mode.
func (s *Session) Mode() Mode { return s.mode }

// Locks returns how many pieces have been locked.
func (s *Session) Locks() int { return s.locks }

// GameOver reports whether the session reached its terminal state.
func (s *Session) GameOver() bool { return s.gameOver }

// FastDrop reports whether the soft drop cadence is active.
func (s *Session) FastDrop() bool { return s.fastDrop }

// LastClear returns the most recent line clear.
func (s *Session) LastClear() Clear { return s.lastClear }

// FallInterval returns the normal cadence for the current level and speed.
func (s *Session) FallInterval() time.Duration { return s.interval }

// FastInterval returns the soft drop cadence.
func (s *Session) FastInterval() time.Duration {
	return time.Duration(s.fastMillis) * time.Millisecond
}

// Grid returns the locked cells plus the in-range cells of the falling piece.
func (s *Session) Grid() Grid {
	return s.board.grid.With(s.current.Cells[:])
}

// State summarises the session for the platform layer.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		GameOver: s.gameOver,
	}
}

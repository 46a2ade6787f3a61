package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Anchors for newly created pieces.
var (
	SpawnAnchor   = core.Pt(Width/2-1, 0)
	PreviewAnchor = core.Pt(Width+1, 3)
)

// Direction is a unit translation for Piece.Move.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) delta() core.Point {
	switch d {
	case Left:
		return core.Pt(-1, 0)
	case Right:
		return core.Pt(1, 0)
	default:
		return core.Pt(0, 1)
	}
}

// Piece is a shape placed on the grid as four absolute cells.
// Cells[0] is the rotation pivot.
type Piece struct {
	Shape Shape
	Cells [4]core.Point
}

// NewPiece places shape's offsets around anchor.
func NewPiece(shape Shape, anchor core.Point) Piece {
	p := Piece{Shape: shape}
	for i, off := range shape.Offsets() {
		p.Cells[i] = anchor.Add(off)
	}
	return p
}

// Pivot returns the reference cell used for rotation and column targeting.
func (p Piece) Pivot() core.Point {
	return p.Cells[0]
}

// Translated returns the piece shifted by d.
func (p Piece) Translated(d core.Point) Piece {
	for i := range p.Cells {
		p.Cells[i] = p.Cells[i].Add(d)
	}
	return p
}

// Rotated returns the piece turned a quarter around its pivot.
func (p Piece) Rotated() Piece {
	pivot := p.Pivot()
	for i := range p.Cells {
		p.Cells[i] = p.Cells[i].Sub(pivot).Rotate90().Add(pivot)
	}
	return p
}

// Collides reports whether any cell hits the board or its walls.
func (p Piece) Collides(b *Board) bool {
	for _, c := range p.Cells {
		if b.IsOccupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// InBounds reports whether all four cells lie inside the visible grid.
func (p Piece) InBounds() bool {
	for _, c := range p.Cells {
		if !inside(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Rotate turns the piece in place if the result is free.
// A blocked rotation leaves the piece untouched and returns false.
// There are no wall kicks.
func (p *Piece) Rotate(b *Board) bool {
	next := p.Rotated()
	if next.Collides(b) {
		return false
	}
	*p = next
	return true
}

// Move translates the piece one cell if the result is free. The second
// result is true only when a downward move was blocked, which means the
// piece has landed.
func (p *Piece) Move(b *Board, dir Direction) (moved, landed bool) {
	next := p.Translated(dir.delta())
	if next.Collides(b) {
		return false, dir == Down
	}
	*p = next
	return true, false
}

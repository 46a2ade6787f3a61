package tetris

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestNewPieceAtSpawn(t *testing.T) {
	p := NewPiece(ShapeT, SpawnAnchor)
	expected := [4]core.Point{{X: 4, Y: 0}, {X: 3, Y: 0}, {X: 5, Y: 0}, {X: 4, Y: -1}}
	if p.Cells != expected {
		t.Errorf("NewPiece(T) cells = %v, expected %v", p.Cells, expected)
	}
	if p.Pivot() != SpawnAnchor {
		t.Errorf("Pivot() = %v, expected %v", p.Pivot(), SpawnAnchor)
	}
}

func TestPieceRotate(t *testing.T) {
	b := &Board{}
	p := NewPiece(ShapeT, SpawnAnchor)

	if !p.Rotate(b) {
		t.Fatal("Rotate() on an empty board should succeed")
	}
	expected := [4]core.Point{{X: 4, Y: 0}, {X: 4, Y: -1}, {X: 4, Y: 1}, {X: 5, Y: 0}}
	if p.Cells != expected {
		t.Errorf("Rotate() cells = %v, expected %v", p.Cells, expected)
	}

	// Four quarter turns return to the start.
	for i := 0; i < 3; i++ {
		p.Rotate(b)
	}
	if p != NewPiece(ShapeT, SpawnAnchor) {
		t.Errorf("four rotations = %v, expected the spawn layout", p.Cells)
	}
}

func TestPieceRotateBlockedAtWall(t *testing.T) {
	b := &Board{}
	p := NewPiece(ShapeI, core.Pt(0, 5))
	before := p

	if p.Rotate(b) {
		t.Fatal("Rotate() of a vertical I against the left wall should be rejected")
	}
	if p != before {
		t.Errorf("rejected Rotate() changed the piece: %v", p.Cells)
	}
}

func TestPieceRotateAtomic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for trial := 0; trial < 500; trial++ {
		var g Grid
		for y := 4; y < Height; y++ {
			for x := 0; x < Width; x++ {
				g[y][x] = rng.IntN(3) == 0
			}
		}
		b := NewBoardFromGrid(g)
		p := NewPiece(Shapes[rng.IntN(len(Shapes))], core.Pt(rng.IntN(Width), rng.IntN(Height)))
		before := p
		blocked := p.Rotated().Collides(b)

		ok := p.Rotate(b)
		if ok == blocked {
			t.Fatalf("trial %d: Rotate() = %v but rotated collides = %v", trial, ok, blocked)
		}
		if blocked && p != before {
			t.Fatalf("trial %d: blocked rotation changed cells %v -> %v", trial, before.Cells, p.Cells)
		}
	}
}

func TestPieceMove(t *testing.T) {
	b := NewBoardFromGrid(GridFromRows("##########"))

	tests := []struct {
		name       string
		piece      Piece
		dir        Direction
		wantMoved  bool
		wantLanded bool
	}{
		{"left free", NewPiece(ShapeO, core.Pt(4, 5)), Left, true, false},
		{"left wall", NewPiece(ShapeO, core.Pt(0, 5)), Left, false, false},
		{"right wall", NewPiece(ShapeO, core.Pt(8, 5)), Right, false, false},
		{"down free", NewPiece(ShapeO, core.Pt(4, 5)), Down, true, false},
		{"down onto stack", NewPiece(ShapeO, core.Pt(4, 18)), Down, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.piece
			moved, landed := p.Move(b, tc.dir)
			if moved != tc.wantMoved || landed != tc.wantLanded {
				t.Errorf("Move(%d) = (%v, %v), expected (%v, %v)", tc.dir, moved, landed, tc.wantMoved, tc.wantLanded)
			}
			if !moved && p != tc.piece {
				t.Errorf("blocked Move() changed the piece")
			}
		})
	}
}

func TestShapeColors(t *testing.T) {
	if ShapeL.Color() != core.ColorOrange {
		t.Errorf("L colour = %v, expected orange", ShapeL.Color())
	}
	if Shape(42).Color() != core.ColorGray {
		t.Errorf("unknown shape colour = %v, expected gray", Shape(42).Color())
	}
}

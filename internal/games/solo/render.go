package solo

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// CellWidth is the number of screen columns per board cell.
const CellWidth = 2

// Screen footprint of a framed board.
const (
	FrameW = tetris.Width*CellWidth + 2
	FrameH = tetris.Height + 2
)

// PreviewW and PreviewH bound the next-piece box contents.
const (
	PreviewW = 4 * CellWidth
	PreviewH = 4
)

var (
	blockGlyph = []rune("██")
	ghostGlyph = []rune("░░")
	emptyGlyph = []rune(" .")
)

func drawCell(dst *core.Screen, x, y int, glyph []rune, c core.Color) {
	for i, r := range glyph {
		dst.SetColored(x+i, y, r, c)
	}
}

// DrawBoard draws a framed board with its locked cells, ghost and falling
// piece. (x, y) is the top-left corner of the frame.
func DrawBoard(dst *core.Screen, x, y int, snap tetris.Snapshot, frame core.Color) {
	dst.DrawBox(core.NewRect(x, y, FrameW, FrameH), frame)

	ox, oy := x+1, y+1
	for row := range tetris.Height {
		for col := range tetris.Width {
			glyph, c := emptyGlyph, core.ColorDim
			if snap.Board[row][col] {
				glyph, c = blockGlyph, core.ColorGray
			}
			drawCell(dst, ox+col*CellWidth, oy+row, glyph, c)
		}
	}

	if snap.GameOver {
		return
	}
	for _, p := range snap.Ghost.Cells {
		if p.Y >= 0 && !snap.Board[p.Y][p.X] {
			drawCell(dst, ox+p.X*CellWidth, oy+p.Y, ghostGlyph, core.ColorDim)
		}
	}
	color := snap.Current.Shape.Color()
	for _, p := range snap.Current.Cells {
		if p.Y >= 0 && p.X >= 0 && p.X < tetris.Width && p.Y < tetris.Height {
			drawCell(dst, ox+p.X*CellWidth, oy+p.Y, blockGlyph, color)
		}
	}
}

// DrawPreview draws the next piece inside a PreviewW x PreviewH area at (x, y).
func DrawPreview(dst *core.Screen, x, y int, next tetris.Piece) {
	color := next.Shape.Color()
	for _, p := range next.Cells {
		// Offsets span -1..2 across and -2..1 down from the preview anchor.
		px := p.X - tetris.PreviewAnchor.X + 1
		py := p.Y - tetris.PreviewAnchor.Y + 2
		if px < 0 || py < 0 || px >= PreviewW/CellWidth || py >= PreviewH {
			continue
		}
		drawCell(dst, x+px*CellWidth, y+py, blockGlyph, color)
	}
}

// Banner formats the clear banner, e.g. "TETRIS +1500".
func Banner(c tetris.Clear) string {
	if c.Lines == 0 {
		return ""
	}
	return fmt.Sprintf("%s +%d", c.Name, c.Points)
}

// DrawOverlay draws a centered two-line message box.
func DrawOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	for yy := r.Y + 1; yy < r.Bottom()-1; yy++ {
		for xx := r.X + 1; xx < r.Right()-1; xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorWhite)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorGray)
}

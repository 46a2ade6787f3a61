// Package tetris implements the falling-block rules: the shape catalog, the
// board grid, pieces with pivot rotation and the session state machine that
// drives falling, locking, line clears, scoring and game over.
//
// Everything here is render-agnostic and deterministic for a given seed.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape identifies one of the seven tetromino types.
type Shape int

const (
	ShapeT Shape = iota
	ShapeO
	ShapeJ
	ShapeL
	ShapeI
	ShapeS
	ShapeZ
)

// Shapes lists the catalog in draw order.
var Shapes = []Shape{ShapeT, ShapeO, ShapeJ, ShapeL, ShapeI, ShapeS, ShapeZ}

// shapeOffsets holds the cell offsets relative to the pivot (always first).
var shapeOffsets = map[Shape][4]core.Point{
	ShapeT: {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}},
	ShapeO: {{X: 0, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: -1}},
	ShapeJ: {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: -2}},
	ShapeL: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: -2}},
	ShapeI: {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 0, Y: -2}},
	ShapeS: {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: -1}},
	ShapeZ: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}},
}

var shapeColors = map[Shape]core.Color{
	ShapeT: core.ColorMagenta,
	ShapeO: core.ColorYellow,
	ShapeJ: core.ColorBlue,
	ShapeL: core.ColorOrange,
	ShapeI: core.ColorCyan,
	ShapeS: core.ColorGreen,
	ShapeZ: core.ColorRed,
}

// Offsets returns the unrotated cell offsets of the shape.
func (s Shape) Offsets() [4]core.Point {
	return shapeOffsets[s]
}

// Color returns the display colour of the shape. Unknown shapes are gray.
func (s Shape) Color() core.Color {
	if c, ok := shapeColors[s]; ok {
		return c
	}
	return core.ColorGray
}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeT:
		return "T"
	case ShapeO:
		return "O"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeI:
		return "I"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}

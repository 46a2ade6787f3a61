package core

import "fmt"

// Color identifies a foreground colour for a screen cell.
// The platform layer resolves it to a terminal style.
type Color uint8

// Palette entries used by boards and HUD text.
const (
	ColorDefault Color = iota
	ColorMagenta
	ColorYellow
	ColorBlue
	ColorOrange
	ColorCyan
	ColorGreen
	ColorRed
	ColorGray
	ColorWhite
	ColorDim
)

// RGB is a 24-bit colour value.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var palette = map[Color]RGB{
	ColorMagenta: {255, 0, 255},
	ColorYellow:  {255, 255, 0},
	ColorBlue:    {0, 0, 255},
	ColorOrange:  {255, 165, 0},
	ColorCyan:    {0, 255, 255},
	ColorGreen:   {0, 255, 0},
	ColorRed:     {255, 0, 0},
	ColorGray:    {200, 200, 200},
	ColorWhite:   {255, 255, 255},
	ColorDim:     {90, 90, 90},
}

// RGB returns the palette value for c. ColorDefault and unknown
// values resolve to gray.
func (c Color) RGB() RGB {
	if rgb, ok := palette[c]; ok {
		return rgb
	}
	return palette[ColorGray]
}

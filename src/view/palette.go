package view

import (
	"github.com/logrusorgru/aurora"

	"emberlife/src/universe"
)

//lingerRamp maps linger to xterm-256 background colors:
//black, dark reds, red, flame, orange, amber, yellow, light yellow
var lingerRamp = [universe.MaxLinger + 1]uint8{16, 52, 88, 124, 196, 202, 208, 214, 226, 229}

const (
	liveGlyph = "*"
	deadGlyph = " "
)

//LingerColor returns the background color index for the linger value
func LingerColor(linger uint8) uint8 {
	if int(linger) >= len(lingerRamp) {
		linger = universe.MaxLinger
	}
	return lingerRamp[linger]
}

//CellGlyph renders one cell, only the background is colored so that the escape
//sequence stays a single 256-color attribute
func CellGlyph(c universe.Cell) string {
	glyph := deadGlyph
	if c.Alive {
		glyph = liveGlyph
	}
	return aurora.BgIndex(LingerColor(c.Linger), glyph).String()
}

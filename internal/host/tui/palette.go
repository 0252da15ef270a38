// Package tui is a minimal Bubble Tea spectator/player host for a
// session.GameSession: it renders the board to a core.Screen and
// translates keyboard input into Select/Rotate/EndSession/NewGame
// actions. It has no opinion on game rules; it only draws what the
// session reports and forwards what the player presses.
package tui

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/core"
)

// regularPalette maps a regular tile's color index to a terminal color,
// cycling through the teacher's bright ANSI set.
var regularPalette = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
}

// cellGlyph returns the rune and color used to draw one board cell.
func cellGlyph(cell board.Cell) (rune, core.Color) {
	switch cell.Special {
	case board.SpecialStarflower:
		return '*', core.ColorBrightWhite
	case board.SpecialBlackPearl:
		return '@', core.ColorGray
	case board.SpecialBomb:
		return bombDigit(cell.BombTimer), core.ColorOrange
	case board.SpecialMultiplier:
		return 'x', regularPalette[cell.Color%len(regularPalette)]
	default:
		return 'o', regularPalette[cell.Color%len(regularPalette)]
	}
}

// bombDigit renders a live bomb's remaining timer as a single digit,
// clamped to 0-9 so it always fits one cell.
func bombDigit(timer int) rune {
	if timer < 0 {
		timer = 0
	}
	if timer > 9 {
		timer = 9
	}
	return rune('0' + timer)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mjrix/hexic-engine/internal/core"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/session"
)

// colorStyles maps core.Color to a lipgloss style, the same lookup table
// shape as the teacher's platform/tui/render.go.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
}

// RenderBoard draws the session's board into a character buffer, each
// hex cell offset by column parity the way an odd-q grid lays out
// visually, and converts it to a styled string.
func RenderBoard(sess *session.GameSession, cursor hexcore.Coord) string {
	b := sess.Board
	screen := core.NewScreen(b.Cols*3+2, b.Rows*2+2)

	for _, c := range b.AllCoords() {
		cell, ok := b.Get(c)
		if !ok {
			continue
		}
		x, y := boardCellPos(c)
		r, color := cellGlyph(cell)

		if c == cursor {
			screen.SetColored(x-1, y, '[', core.ColorBrightWhite)
			screen.SetColored(x, y, r, core.ColorBrightWhite)
			screen.SetColored(x+1, y, ']', core.ColorBrightWhite)
			continue
		}
		screen.SetColored(x, y, r, color)
	}

	if sess.Phase == session.PhaseGameOver {
		drawGameOverBanner(screen, "GAME OVER", fmt.Sprintf("score %d", sess.Score.Score))
	}

	return renderScreen(screen)
}

// drawGameOverBanner overlays a centered, bordered message box on the
// board, the same technique the platform's other games use for their own
// end-of-game screens: a filled rect to blank out whatever was drawn
// underneath, a box outline, then two centered lines of text.
func drawGameOverBanner(screen *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (screen.Width() - boxW) / 2
	boxY := (screen.Height() - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	screen.DrawRect(rect, ' ')
	screen.DrawBox(rect)

	screen.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	screen.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// boardCellPos maps a board coordinate to its character-grid position,
// staggering odd columns down one row for the familiar hex-brick look.
func boardCellPos(c hexcore.Coord) (x, y int) {
	x = c.Col*3 + 1
	y = c.Row*2 + 1
	if c.Col&1 == 1 {
		y++
	}
	return x, y
}

// renderScreen converts a Screen buffer to a styled string, grouping
// consecutive same-color cells into one lipgloss.Render call to minimize
// ANSI escape sequences, grounded on the teacher's RenderScreen.
func renderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

package special

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// TickBombs decrements every live bomb's timer by one, returning the
// positions of any bombs that reached 0 this tick. A timer reaching 0
// signals game-over in modes where that's enabled; chill-mode sessions
// never call TickBombs at all, since chill mode has no bomb game-over.
func TickBombs(b *board.Board) (expired []hexcore.Coord) {
	for _, c := range b.AllCoords() {
		cell, ok := b.Get(c)
		if !ok || cell.Special != board.SpecialBomb {
			continue
		}
		cell.BombTimer--
		if cell.BombTimer <= 0 {
			expired = append(expired, c)
		}
		b.Set(c, cell)
	}

	return expired
}

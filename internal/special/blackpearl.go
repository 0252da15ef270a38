package special

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// BlackPearlBirth describes one black-pearl birth: the center that became
// a pearl and the six starflowers it absorbed.
type BlackPearlBirth struct {
	Center   hexcore.Coord
	Absorbed [6]hexcore.Coord
}

// DetectBlackPearls scans for cells whose six in-bounds neighbors are all
// starflowers. Each match converts the center to a black pearl and
// absorbs (clears) the six ring starflowers. A starflower already
// absorbed earlier in this same call cannot be absorbed again, so two
// candidate centers can never double-consume the same ring member.
// Callers must run gravity after this, since absorption leaves gaps.
func DetectBlackPearls(b *board.Board) []BlackPearlBirth {
	var births []BlackPearlBirth
	bounds := b.Bounds()

	for _, c := range b.AllCoords() {
		center, ok := b.Get(c)
		if !ok || center.IsBlackPearl() {
			continue
		}

		neighbors := hexcore.Neighbors(c)
		allStarflowers := true
		for _, n := range neighbors {
			if !bounds.InBounds(n) {
				allStarflowers = false
				break
			}
			cell, present := b.Get(n)
			if !present || !cell.IsStarflower() {
				allStarflowers = false
				break
			}
		}
		if !allStarflowers {
			continue
		}

		b.Set(c, board.NewBlackPearl())
		for _, n := range neighbors {
			b.Clear(n)
		}
		births = append(births, BlackPearlBirth{Center: c, Absorbed: neighbors})
	}

	return births
}

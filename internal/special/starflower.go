// Package special implements starflower and black-pearl births,
// multiplier-cluster detection, and bomb ticking/spawning.
package special

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// StarflowerBirth describes one starflower birth event: the center that
// became a starflower, its ring of six neighbors, and the common color
// that ring shared.
type StarflowerBirth struct {
	Center    hexcore.Coord
	Ring      [6]hexcore.Coord
	RingColor int
}

// DetectStarflowers scans the whole board for cells whose six in-bounds
// neighbors are all present, non-blocker, and share an identical color
// different from the center's own color. Each match's center cell is
// converted in place to a starflower; the ring is not cleared here, and
// neither the cascade resolver nor the rotation loop clears it afterwards,
// so the six ring cells stay on the board. Returns one descriptor per
// birth.
func DetectStarflowers(b *board.Board) []StarflowerBirth {
	var births []StarflowerBirth
	bounds := b.Bounds()

	for _, c := range b.AllCoords() {
		center, ok := b.Get(c)
		if !ok || center.IsBlocker() {
			continue
		}

		ring, ringColor, ok := sameColorRing(b, c, bounds)
		if !ok || ringColor < 0 || ringColor == center.Color {
			continue
		}

		b.Set(c, board.NewStarflower())
		births = append(births, StarflowerBirth{Center: c, Ring: ring, RingColor: ringColor})
	}

	return births
}

// DetectStarflowersAtCleared checks each just-cleared position (now
// empty) for the at-cleared-gap birth rule: all six in-bounds neighbors
// present, non-starflower, not themselves in the cleared set, and sharing
// a common non-negative color. On a match, a fresh starflower is placed
// into the gap. Returns one descriptor per birth, in the same shape as
// DetectStarflowers.
func DetectStarflowersAtCleared(b *board.Board, cleared cellset.Set) []StarflowerBirth {
	var births []StarflowerBirth
	bounds := b.Bounds()

	for gap := range cleared {
		if b.Occupied(gap) {
			continue
		}

		neighbors := hexcore.Neighbors(gap)
		color := -1
		valid := true
		for _, n := range neighbors {
			if !bounds.InBounds(n) {
				valid = false
				break
			}
			if cleared.Has(n) {
				valid = false
				break
			}
			cell, ok := b.Get(n)
			if !ok || cell.IsStarflower() {
				valid = false
				break
			}
			if cell.Color < 0 {
				valid = false
				break
			}
			if color == -1 {
				color = cell.Color
			} else if cell.Color != color {
				valid = false
				break
			}
		}
		if !valid || color < 0 {
			continue
		}

		b.Set(gap, board.NewStarflower())
		births = append(births, StarflowerBirth{Center: gap, Ring: neighbors, RingColor: color})
	}

	return births
}

// sameColorRing returns the six neighbors of c along with their shared
// color if all six are in bounds, non-blocker, and identically colored.
func sameColorRing(b *board.Board, c hexcore.Coord, bounds hexcore.Bounds) (ring [6]hexcore.Coord, color int, ok bool) {
	neighbors := hexcore.Neighbors(c)
	color = -1
	for i, n := range neighbors {
		if !bounds.InBounds(n) {
			return ring, 0, false
		}
		cell, present := b.Get(n)
		if !present || cell.IsBlocker() {
			return ring, 0, false
		}
		if i == 0 {
			color = cell.Color
		} else if cell.Color != color {
			return ring, 0, false
		}
		ring[i] = n
	}
	return ring, color, true
}

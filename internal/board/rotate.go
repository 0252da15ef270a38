package board

import "github.com/mjrix/hexic-engine/internal/hexcore"

// slot captures one position's full contents (including occupancy) so a
// rotation can move "nothing" around just as well as a cell.
type slot struct {
	cell     Cell
	occupied bool
}

func (b *Board) readSlot(c hexcore.Coord) slot {
	cell, ok := b.Get(c)
	return slot{cell: cell, occupied: ok}
}

func (b *Board) writeSlot(c hexcore.Coord, s slot) {
	if s.occupied {
		b.Set(c, s.cell)
	} else {
		b.Clear(c)
	}
}

// rotateSlots performs a cyclic rotation of the contents at positions in
// place: positions do not move, only the data at each position changes.
// CW: slot i receives the contents of slot (i-1) mod n. CCW reverses.
func (b *Board) rotateSlots(positions []hexcore.Coord, clockwise bool) {
	n := len(positions)
	if n == 0 {
		return
	}
	src := make([]slot, n)
	for i, c := range positions {
		src[i] = b.readSlot(c)
	}

	dst := make([]slot, n)
	for i := 0; i < n; i++ {
		var from int
		if clockwise {
			from = (i - 1 + n) % n
		} else {
			from = (i + 1) % n
		}
		dst[i] = src[from]
	}

	for i, c := range positions {
		b.writeSlot(c, dst[i])
	}
}

// RotateCluster rotates the data (color + special + bomb timer) among the
// three cluster slots in place. CW: slot i receives slot (i-1)%3.
func (b *Board) RotateCluster(cluster [3]hexcore.Coord, clockwise bool) {
	b.rotateSlots(cluster[:], clockwise)
}

// RotateRing applies the same cyclic shift among the six ring slots.
func (b *Board) RotateRing(ring [6]hexcore.Coord, clockwise bool) {
	b.rotateSlots(ring[:], clockwise)
}

// RotateY rotates the data among the three Y slots (alternating neighbors
// of a black pearl), reusing the same 3-cycle as RotateCluster.
func (b *Board) RotateY(y [3]hexcore.Coord, clockwise bool) {
	b.rotateSlots(y[:], clockwise)
}

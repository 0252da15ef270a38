package board

import (
	"math/rand"

	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// MultiplierSpawnP is the chance each freshly refilled cell becomes a
// multiplier tile.
const MultiplierSpawnP = 0.05

// ApplyGravity lets every column's cells drop into the lowest empty slot
// below them, preserving order within the column. Rows increase downward
// (row 0 is the top), so "down" is increasing row. Returns whether any
// cell moved.
//
// Fall reports, per column, the cells that moved and their (from,to) rows
// so callers (the cascade resolver) can emit a Gravity event.
type Fall struct {
	Col        int
	FromRow    int
	ToRow      int
	Cell       Cell
}

func (b *Board) ApplyGravity() (falls []Fall, moved bool) {
	for col := 0; col < b.Cols; col++ {
		write := b.Rows - 1
		for row := b.Rows - 1; row >= 0; row-- {
			c := hexcore.Coord{Col: col, Row: row}
			cell, ok := b.Get(c)
			if !ok {
				continue
			}
			if row != write {
				b.Clear(c)
				dst := hexcore.Coord{Col: col, Row: write}
				b.Set(dst, cell)
				falls = append(falls, Fall{Col: col, FromRow: row, ToRow: write, Cell: cell})
				moved = true
			}
			write--
		}
	}
	return falls, moved
}

// FillEmpty fills every empty slot with a fresh random-color cell. Each
// new cell has an independent MultiplierSpawnP chance of being tagged a
// multiplier. If spawnBomb is true and at least one cell was filled, one
// uniformly-random filled position is promoted to a bomb with the given
// initial timer. Returns the positions that were filled.
func (b *Board) FillEmpty(rng *rand.Rand, paletteSize int, spawnBomb bool, bombInitialTimer int) []hexcore.Coord {
	var filled []hexcore.Coord
	for _, c := range b.AllCoords() {
		if b.Occupied(c) {
			continue
		}
		cell := NewRegular(rng.Intn(paletteSize))
		if rng.Float64() < MultiplierSpawnP {
			cell = cell.WithMultiplier()
		}
		b.Set(c, cell)
		filled = append(filled, c)
	}

	if spawnBomb && len(filled) > 0 {
		pick := filled[rng.Intn(len(filled))]
		cell, _ := b.Get(pick)
		b.Set(pick, cell.WithBomb(bombInitialTimer))
	}

	return filled
}

package board

import (
	"math/rand"

	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// maxRerollPasses bounds the fixpoint iteration NewBoard uses to remove
// initial 3+ runs so a pathological RNG seed can't loop forever.
const maxRerollPasses = 100

// axialDirections are the three axes line matches run along: (1,0),
// (0,1), (1,-1) in axial space.
var axialDirections = [3]hexcore.Axial{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: 1, R: -1},
}

// Board is a mapping from (col,row) in [0,Cols)x[0,Rows) to an optional
// Cell, stored as a flat row-major slice plus an occupied bitmap so empty
// slots (which only exist transiently during cascades) don't need a
// sentinel Cell value.
type Board struct {
	Cols, Rows int
	cells      []Cell
	occupied   []bool
}

// New allocates an all-empty board of the given dimensions.
func New(cols, rows int) *Board {
	return &Board{
		Cols:     cols,
		Rows:     rows,
		cells:    make([]Cell, cols*rows),
		occupied: make([]bool, cols*rows),
	}
}

// Bounds returns the board's extent for use with hexcore geometry calls.
func (b *Board) Bounds() hexcore.Bounds {
	return hexcore.Bounds{Cols: b.Cols, Rows: b.Rows}
}

func (b *Board) index(c hexcore.Coord) int {
	return c.Row*b.Cols + c.Col
}

// InBounds reports whether c is a valid grid position.
func (b *Board) InBounds(c hexcore.Coord) bool {
	return b.Bounds().InBounds(c)
}

// Get returns the cell at c and whether the slot is occupied. Returns the
// zero Cell and false for out-of-bounds or empty positions.
func (b *Board) Get(c hexcore.Coord) (Cell, bool) {
	if !b.InBounds(c) {
		return Cell{}, false
	}
	i := b.index(c)
	if !b.occupied[i] {
		return Cell{}, false
	}
	return b.cells[i], true
}

// Set places cell at c, marking the slot occupied. Out-of-bounds calls are
// silently ignored; board access never panics.
func (b *Board) Set(c hexcore.Coord, cell Cell) {
	if !b.InBounds(c) {
		return
	}
	i := b.index(c)
	b.cells[i] = cell
	b.occupied[i] = true
}

// Clear empties the slot at c.
func (b *Board) Clear(c hexcore.Coord) {
	if !b.InBounds(c) {
		return
	}
	i := b.index(c)
	b.occupied[i] = false
	b.cells[i] = Cell{}
}

// Occupied reports whether c holds a cell.
func (b *Board) Occupied(c hexcore.Coord) bool {
	if !b.InBounds(c) {
		return false
	}
	return b.occupied[b.index(c)]
}

// Each visits every occupied cell in row-major order.
func (b *Board) Each(fn func(c hexcore.Coord, cell Cell)) {
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			c := hexcore.Coord{Col: col, Row: row}
			i := b.index(c)
			if b.occupied[i] {
				fn(c, b.cells[i])
			}
		}
	}
}

// AllCoords returns every (col,row) position in row-major order,
// regardless of occupancy.
func (b *Board) AllCoords() []hexcore.Coord {
	out := make([]hexcore.Coord, 0, b.Cols*b.Rows)
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			out = append(out, hexcore.Coord{Col: col, Row: row})
		}
	}
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		Cols:     b.Cols,
		Rows:     b.Rows,
		cells:    make([]Cell, len(b.cells)),
		occupied: make([]bool, len(b.occupied)),
	}
	copy(out.cells, b.cells)
	copy(out.occupied, b.occupied)
	return out
}

// NewBoard allocates a full grid of random regular tiles drawn from
// [0,paletteSize), then re-rolls any cell participating in an initial 3+
// run along any of the three axial directions. The re-roll is fixpoint
// iterated up to 100 passes so turn-one boards never start mid-cascade.
func NewBoard(rng *rand.Rand, cols, rows, paletteSize int) *Board {
	b := New(cols, rows)
	for _, c := range b.AllCoords() {
		b.Set(c, NewRegular(rng.Intn(paletteSize)))
	}

	for pass := 0; pass < maxRerollPasses; pass++ {
		offenders := initialRunMembers(b)
		if len(offenders) == 0 {
			break
		}
		for c := range offenders {
			b.Set(c, NewRegular(rng.Intn(paletteSize)))
		}
	}

	return b
}

// initialRunMembers scans the three axial directions for runs of length
// >= 3 of identical colors (all cells here are regular tiles by
// construction, so no blocker check is needed) and returns the set of
// member coordinates.
func initialRunMembers(b *Board) map[hexcore.Coord]struct{} {
	offenders := make(map[hexcore.Coord]struct{})
	bounds := b.Bounds()

	for _, dir := range axialDirections {
		for _, start := range b.AllCoords() {
			// Only start a run scan at the head of a run: the cell
			// immediately behind start along -dir must not match, or be
			// out of bounds.
			startAxial := hexcore.OffsetToAxial(start)
			prev := hexcore.AxialToOffset(hexcore.Axial{Q: startAxial.Q - dir.Q, R: startAxial.R - dir.R})

			startCell, ok := b.Get(start)
			if !ok {
				continue
			}
			if bounds.InBounds(prev) {
				if prevCell, ok := b.Get(prev); ok && prevCell.Color == startCell.Color {
					continue
				}
			}

			run := []hexcore.Coord{start}
			cur := startAxial
			for {
				cur = hexcore.Axial{Q: cur.Q + dir.Q, R: cur.R + dir.R}
				next := hexcore.AxialToOffset(cur)
				nextCell, ok := b.Get(next)
				if !ok || nextCell.Color != startCell.Color {
					break
				}
				run = append(run, next)
			}

			if len(run) >= 3 {
				for _, c := range run {
					offenders[c] = struct{}{}
				}
			}
		}
	}

	return offenders
}

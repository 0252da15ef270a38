// Package match implements the two pattern scanners: colinear line runs
// and mutually-adjacent triangles. Both return sets of cell keys for the
// cascade resolver to act on.
package match

import (
	"fmt"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// Mode selects which scanner is active: line runs or triangle clusters.
type Mode int

const (
	ModeLine Mode = iota
	ModeTriangle
)

// String renders the mode the way the combined mode id expects it.
func (m Mode) String() string {
	if m == ModeTriangle {
		return "triangle"
	}
	return "line"
}

// ParseMode parses the mode id fragment produced by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "line":
		return ModeLine, nil
	case "triangle":
		return ModeTriangle, nil
	default:
		return 0, fmt.Errorf("match: unknown match mode %q", s)
	}
}

// Set is a set of cell coordinates, used as both input and output of the
// matchers.
type Set = cellset.Set

// lineDirections are the three axes a run can travel along: (1,0),
// (0,1), (1,-1) in axial space.
var lineDirections = [3]hexcore.Axial{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: 1, R: -1},
}

// FindLineMatches scans every non-empty, non-blocker cell and, for each
// of the three axial directions, walks forward collecting the run of
// same-color non-blocker cells. Any run of length >= 3 contributes all
// its cells to the result. Starflowers and black pearls are never part
// of a line match.
func FindLineMatches(b *board.Board) Set {
	result := make(Set)

	for _, dir := range lineDirections {
		for _, start := range b.AllCoords() {
			startCell, ok := b.Get(start)
			if !ok || startCell.IsBlocker() {
				continue
			}

			startAxial := hexcore.OffsetToAxial(start)
			prev := hexcore.AxialToOffset(hexcore.Axial{Q: startAxial.Q - dir.Q, R: startAxial.R - dir.R})
			if prevCell, ok := b.Get(prev); ok && !prevCell.IsBlocker() && prevCell.Color == startCell.Color {
				// start is mid-run, not its head; the head's scan will
				// cover it.
				continue
			}

			run := []hexcore.Coord{start}
			cur := startAxial
			for {
				cur = hexcore.Axial{Q: cur.Q + dir.Q, R: cur.R + dir.R}
				next := hexcore.AxialToOffset(cur)
				nextCell, ok := b.Get(next)
				if !ok || nextCell.IsBlocker() || nextCell.Color != startCell.Color {
					break
				}
				run = append(run, next)
			}

			if len(run) >= 3 {
				for _, c := range run {
					result.Add(c)
				}
			}
		}
	}

	return result
}

// FindTriangleMatches scans every non-empty, non-blocker cell C; for each
// i in 0..5, if neighbor i (B) and neighbor (i+1)%6 (D) are both in
// bounds, both non-blocker, and all three share the same color, adds
// {C,B,D} to the result. The fixed clockwise neighbor ordering guarantees
// B and D are mutually adjacent, so {C,B,D} is a genuine triangle.
func FindTriangleMatches(b *board.Board) Set {
	result := make(Set)
	bounds := b.Bounds()

	for _, c := range b.AllCoords() {
		center, ok := b.Get(c)
		if !ok || center.IsBlocker() {
			continue
		}

		neighbors := hexcore.Neighbors(c)
		for i := 0; i < 6; i++ {
			nb := neighbors[i]
			nd := neighbors[(i+1)%6]
			if !bounds.InBounds(nb) || !bounds.InBounds(nd) {
				continue
			}

			bCell, ok := b.Get(nb)
			if !ok || bCell.IsBlocker() || bCell.Color != center.Color {
				continue
			}
			dCell, ok := b.Get(nd)
			if !ok || dCell.IsBlocker() || dCell.Color != center.Color {
				continue
			}

			result.Add(c)
			result.Add(nb)
			result.Add(nd)
		}
	}

	return result
}

// FindMatchesForMode dispatches to the scanner selected by the active
// match mode.
func FindMatchesForMode(b *board.Board, mode Mode) Set {
	switch mode {
	case ModeTriangle:
		return FindTriangleMatches(b)
	default:
		return FindLineMatches(b)
	}
}

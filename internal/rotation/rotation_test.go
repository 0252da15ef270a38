package rotation

import (
	"testing"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
)

// uniqueColorBoard assigns every cell a color that appears nowhere else on
// the board. No two cells can ever compare equal, so no rotation
// permutation of any subset of cells can create a match, starflower, or
// black-pearl condition — useful for isolating the rotation loop's
// step-counting from match/special detection.
func uniqueColorBoard() *board.Board {
	b := board.New(9, 9)
	for _, c := range b.AllCoords() {
		b.Set(c, board.NewRegular(c.Col*9+c.Row))
	}
	return b
}

func TestNoOpRotationFullCycle(t *testing.T) {
	b := uniqueColorBoard()
	before := b.Clone()

	sel := NewClusterSelection(
		hexcore.Coord{Col: 4, Row: 4},
		hexcore.Coord{Col: 5, Row: 4},
		hexcore.Coord{Col: 5, Row: 3},
	)

	result := Rotate(b, sel, true, match.ModeLine)
	if !result.FullCycle {
		t.Fatalf("expected a full cycle with no hit when all colors are unique")
	}
	if result.StepsTaken != 3 {
		t.Errorf("expected 3 steps taken, got %d", result.StepsTaken)
	}

	for _, c := range b.AllCoords() {
		got, _ := b.Get(c)
		want, _ := before.Get(c)
		if got != want {
			t.Fatalf("board must be unchanged after a full no-op cycle, cell %v: got %v want %v", c, got, want)
		}
	}
}

func TestRotationRingMaxStepsIsSix(t *testing.T) {
	b := uniqueColorBoard()
	center := hexcore.Coord{Col: 4, Row: 4}
	ring := hexcore.Neighbors(center)
	sel := NewRingSelection(center, ring)

	result := Rotate(b, sel, true, match.ModeLine)
	if !result.FullCycle || result.StepsTaken != 6 {
		t.Errorf("expected a full 6-step cycle for a ring of unique colors, got steps=%d full=%v", result.StepsTaken, result.FullCycle)
	}
}

func TestRotationYMaxStepsIsThree(t *testing.T) {
	b := uniqueColorBoard()
	center := hexcore.Coord{Col: 4, Row: 4}
	all := hexcore.Neighbors(center)
	y := [3]hexcore.Coord{all[0], all[2], all[4]}
	sel := NewYSelection(center, y)

	result := Rotate(b, sel, true, match.ModeLine)
	if !result.FullCycle || result.StepsTaken != 3 {
		t.Errorf("expected a full 3-step cycle for a Y of unique colors, got steps=%d full=%v", result.StepsTaken, result.FullCycle)
	}
}

func TestRotationFullCycleIsIdentityRegardlessOfDirection(t *testing.T) {
	for _, cw := range []bool{true, false} {
		b := uniqueColorBoard()
		before := b.Clone()
		sel := NewClusterSelection(
			hexcore.Coord{Col: 2, Row: 2},
			hexcore.Coord{Col: 3, Row: 2},
			hexcore.Coord{Col: 3, Row: 1},
		)
		Rotate(b, sel, cw, match.ModeLine)
		for _, c := range b.AllCoords() {
			got, _ := b.Get(c)
			want, _ := before.Get(c)
			if got != want {
				t.Fatalf("cw=%v: board must return to its original contents, cell %v", cw, c)
			}
		}
	}
}

// TestRotationStopsEarlyOnMatch builds a cluster whose CW rotation feeds a
// third value into a two-cell run at (4,2)/(4,4), completing a 3-run at
// (4,3) on the very first step. Every other cell keeps a globally unique
// color, so this is the only match the loop can possibly find.
func TestRotationStopsEarlyOnMatch(t *testing.T) {
	b := uniqueColorBoard()

	const runColor = 100
	b.Set(hexcore.Coord{Col: 4, Row: 2}, board.NewRegular(runColor))
	b.Set(hexcore.Coord{Col: 4, Row: 4}, board.NewRegular(runColor))

	p0 := hexcore.Coord{Col: 4, Row: 3} // receives p2's color on a CW step
	p1 := hexcore.Coord{Col: 5, Row: 3}
	p2 := hexcore.Coord{Col: 5, Row: 2}
	b.Set(p0, board.NewRegular(7))
	b.Set(p1, board.NewRegular(1))
	b.Set(p2, board.NewRegular(runColor))

	sel := NewClusterSelection(p0, p1, p2)
	result := Rotate(b, sel, true, match.ModeLine)

	if result.FullCycle {
		t.Fatalf("expected the rotation to stop early on the completed run")
	}
	if result.StepsTaken != 1 {
		t.Errorf("expected the match to complete on step 1, got %d", result.StepsTaken)
	}
	want := []hexcore.Coord{{Col: 4, Row: 2}, {Col: 4, Row: 3}, {Col: 4, Row: 4}}
	for _, c := range want {
		if !result.Matches.Has(c) {
			t.Errorf("expected %v in the matched set, got %v", c, result.Matches)
		}
	}
}

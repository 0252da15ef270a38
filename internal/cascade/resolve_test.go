package cascade

import (
	"math/rand"
	"testing"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/score"
)

// fillerBoard mirrors the match package's scenario board: a 9x9 grid
// striped (col+row)%5 so no accidental runs of 3+ appear by construction.
func fillerBoard() *board.Board {
	b := board.New(9, 9)
	for _, c := range b.AllCoords() {
		b.Set(c, board.NewRegular((c.Col+c.Row)%5))
	}
	return b
}

func testConfig() Config {
	return Config{PaletteSize: 5, BombInitialTimer: 3}
}

func TestResolveSimpleLineMatchAwardsAndSettles(t *testing.T) {
	b := fillerBoard()
	col4 := hexcore.Coord{Col: 4, Row: 2}
	for i := 0; i < 3; i++ {
		b.Set(hexcore.Coord{Col: 4, Row: 2 + i}, board.NewRegular(3))
	}
	initial := cellset.New(col4, hexcore.Coord{Col: 4, Row: 3}, hexcore.Coord{Col: 4, Row: 4})

	sc := &score.Counter{}
	rng := rand.New(rand.NewSource(1))
	events := Resolve(b, rng, sc, match.ModeLine, initial, testConfig(), nil)

	if len(events) == 0 {
		t.Fatalf("expected a non-empty event transcript")
	}
	if _, ok := events[0].(event.Matched); !ok {
		t.Errorf("first event should be Matched, got %T", events[0])
	}
	if sc.Score <= 0 {
		t.Errorf("expected positive score, got %d", sc.Score)
	}
	if sc.ChainLevel != 0 {
		t.Errorf("chain level should reset to 0 once the cascade settles, got %d", sc.ChainLevel)
	}

	for _, c := range b.AllCoords() {
		if !b.Occupied(c) {
			t.Errorf("cell %v left empty after resolve, refill must fill every gap", c)
		}
	}

	last := events[len(events)-1]
	if _, ok := last.(event.ChainAdvanced); !ok {
		t.Errorf("last event should be ChainAdvanced, got %T", last)
	}
}

func TestResolveEventOrderPerLevel(t *testing.T) {
	b := fillerBoard()
	for i := 0; i < 3; i++ {
		b.Set(hexcore.Coord{Col: 4, Row: 2 + i}, board.NewRegular(3))
	}
	initial := cellset.New(
		hexcore.Coord{Col: 4, Row: 2},
		hexcore.Coord{Col: 4, Row: 3},
		hexcore.Coord{Col: 4, Row: 4},
	)

	sc := &score.Counter{}
	rng := rand.New(rand.NewSource(7))
	events := Resolve(b, rng, sc, match.ModeLine, initial, testConfig(), nil)

	// Within the first level, Matched and ScoreChanged must precede
	// Cleared: emission order is fixed, never reordered.
	var matchedIdx, scoreIdx, clearedIdx = -1, -1, -1
	for i, e := range events {
		switch e.(type) {
		case event.Matched:
			if matchedIdx == -1 {
				matchedIdx = i
			}
		case event.ScoreChanged:
			if scoreIdx == -1 {
				scoreIdx = i
			}
		case event.Cleared:
			if clearedIdx == -1 {
				clearedIdx = i
			}
		}
	}
	if !(matchedIdx < scoreIdx && scoreIdx < clearedIdx) {
		t.Errorf("expected Matched < ScoreChanged < Cleared, got indices %d,%d,%d", matchedIdx, scoreIdx, clearedIdx)
	}
}

func TestResolveConsumesBombQueuedOnce(t *testing.T) {
	b := fillerBoard()
	for i := 0; i < 3; i++ {
		b.Set(hexcore.Coord{Col: 4, Row: i}, board.NewRegular(3))
	}
	initial := cellset.New(
		hexcore.Coord{Col: 4, Row: 0},
		hexcore.Coord{Col: 4, Row: 1},
		hexcore.Coord{Col: 4, Row: 2},
	)

	// Seed 1 refills column 4 without creating a new match, so the cascade
	// settles after one level and the spawned bomb is still in place when
	// Resolve returns. (With other seeds a follow-on match can clear the
	// bomb, which defuses it.)
	sc := &score.Counter{}
	rng := rand.New(rand.NewSource(1))
	bombQueued := true
	events := Resolve(b, rng, sc, match.ModeLine, initial, testConfig(), &bombQueued)

	if bombQueued {
		t.Errorf("bombQueued flag should be cleared once a bomb has spawned")
	}

	var spawned *event.BombSpawned
	for _, e := range events {
		if bs, ok := e.(event.BombSpawned); ok {
			spawned = &bs
			break
		}
	}
	if spawned == nil {
		t.Fatalf("expected a BombSpawned event when bombQueued was set and a refill occurred")
	}
	cell, ok := b.Get(spawned.Pos)
	if !ok || cell.Special != board.SpecialBomb {
		t.Errorf("position %v reported by BombSpawned should hold a live bomb", spawned.Pos)
	}
	if cell.BombTimer != testConfig().BombInitialTimer {
		t.Errorf("bomb timer = %d, want %d", cell.BombTimer, testConfig().BombInitialTimer)
	}
}

func TestResolveMonochromeMultiplierClusterTriggersColorNuke(t *testing.T) {
	b := fillerBoard()
	// Build a mono-color multiplier cluster of color 3 away from the match.
	// (0,1)'s neighbors 0 and 1 are (1,1) and (1,0), both on the board, so
	// all three multipliers are placed and form one connected cluster.
	origin := hexcore.Coord{Col: 0, Row: 1}
	neighbors := hexcore.Neighbors(origin)
	cluster := []hexcore.Coord{origin, neighbors[0], neighbors[1]}
	for _, c := range cluster {
		b.Set(c, board.NewRegular(3).WithMultiplier())
	}

	// Place another color-3 regular tile far away that the nuke should
	// also sweep up.
	farC3 := hexcore.Coord{Col: 8, Row: 8}
	b.Set(farC3, board.NewRegular(3))

	// The triggering match, unrelated to the cluster.
	for i := 0; i < 3; i++ {
		b.Set(hexcore.Coord{Col: 4, Row: 2 + i}, board.NewRegular(1))
	}
	initial := cellset.New(
		hexcore.Coord{Col: 4, Row: 2},
		hexcore.Coord{Col: 4, Row: 3},
		hexcore.Coord{Col: 4, Row: 4},
	)

	sc := &score.Counter{}
	rng := rand.New(rand.NewSource(11))
	Resolve(b, rng, sc, match.ModeLine, initial, testConfig(), nil)

	// Both the cluster and the far color-3 tile were swept into the first
	// level's pending set and cleared/refilled; their cells are no longer
	// color 3 leftovers from before the nuke (refilled cells may coincidentally
	// roll color 3 again, so we only assert the multiplier tag is gone).
	for _, c := range cluster {
		cell, ok := b.Get(c)
		if ok && cell.Special == board.SpecialMultiplier {
			t.Errorf("multiplier cell %v should have been consumed by the nuke it triggered", c)
		}
	}
}

func TestResolveNoMatchProducesNoEvents(t *testing.T) {
	b := fillerBoard()
	sc := &score.Counter{}
	rng := rand.New(rand.NewSource(5))
	events := Resolve(b, rng, sc, match.ModeLine, cellset.New(), testConfig(), nil)

	if len(events) != 0 {
		t.Errorf("expected no events for an empty initial match set, got %d", len(events))
	}
	if sc.Score != 0 {
		t.Errorf("expected no score change, got %d", sc.Score)
	}
}

package session

import (
	"testing"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/config"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/storage"
)

func testConfig() config.RulesConfig {
	return config.RulesConfig{
		Board:   config.BoardConfig{Cols: 9, Rows: 9},
		Palette: config.PaletteConfig{Size: 5},
		Bombs: config.BombsConfig{
			InitialTimer:         15,
			MinSpawnInterval:     4,
			BaseSpawnInterval:    15,
			ScorePerIntervalStep: 5000,
		},
	}
}

func uniformSession(t *testing.T, mode GameMode, mm match.Mode, color int) *GameSession {
	t.Helper()
	s := New(testConfig(), mode, mm, 1, nil)
	for _, c := range s.Board.AllCoords() {
		s.Board.Set(c, board.NewRegular(color))
	}
	return s
}

func lastPhase(events []event.Event) (event.Phase, bool) {
	var p event.Phase
	found := false
	for _, e := range events {
		if pc, ok := e.(event.PhaseChanged); ok {
			p = pc.New
			found = true
		}
	}
	return p, found
}

func TestSelectIdleToSelected(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeLine, 0)

	origin := hexcore.Point{}
	size := 1.0
	pixel := hexcore.HexToPixel(hexcore.Coord{Col: 4, Row: 4}, origin, size)

	events := s.Select(pixel, origin, size)
	if s.Phase != PhaseSelected {
		t.Fatalf("phase = %v, want Selected", s.Phase)
	}
	if s.Selection == nil {
		t.Fatal("expected a selection to be set")
	}
	if got, ok := lastPhase(events); !ok || got != PhaseSelected {
		t.Errorf("expected a PhaseChanged(Selected) event, got %v", events)
	}
}

func TestSelectSameSpotDeselects(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeLine, 0)
	origin := hexcore.Point{}
	size := 1.0
	pixel := hexcore.HexToPixel(hexcore.Coord{Col: 4, Row: 4}, origin, size)

	s.Select(pixel, origin, size)
	if s.Phase != PhaseSelected {
		t.Fatalf("setup: phase = %v, want Selected", s.Phase)
	}

	events := s.Select(pixel, origin, size)
	if s.Phase != PhaseIdle {
		t.Fatalf("phase after reselect = %v, want Idle", s.Phase)
	}
	if s.Selection != nil {
		t.Error("expected selection cleared on deselect")
	}
	if got, ok := lastPhase(events); !ok || got != PhaseIdle {
		t.Errorf("expected a PhaseChanged(Idle) event, got %v", events)
	}
}

func TestRotateRequiresSelected(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeLine, 0)
	if events := s.Rotate(true); events != nil {
		t.Errorf("Rotate() from Idle should be a no-op, got %v", events)
	}
}

func TestRotateFullCycleNoOpStillCountsMove(t *testing.T) {
	// On a board with no line anywhere, rotating a cluster whose three
	// cells share one color through its full cycle changes nothing, but
	// the move still counts and bombs still tick.
	s := uniformSession(t, GameModeArcade, match.ModeLine, 0)
	sel := struct {
		a, b, c hexcore.Coord
	}{hexcore.Coord{Col: 4, Row: 4}, hexcore.Coord{Col: 5, Row: 3}, hexcore.Coord{Col: 4, Row: 3}}
	// A uniform board is one big line match, so lay the (c+r)%5 pattern,
	// which has no run of three, and give the cluster hit-tested at the
	// center of (4,4) a color no other cell uses.
	for _, c := range s.Board.AllCoords() {
		s.Board.Set(c, board.NewRegular((c.Col+c.Row)%5))
	}
	for _, c := range []hexcore.Coord{sel.a, sel.b, sel.c} {
		s.Board.Set(c, board.NewRegular(7))
	}

	origin := hexcore.Point{}
	size := 1.0
	pixel := hexcore.HexToPixel(sel.a, origin, size)
	s.Select(pixel, origin, size)
	if s.Selection == nil {
		t.Fatal("setup: expected a selection")
	}

	before := s.Board.Clone()
	events := s.Rotate(true)

	if s.MoveCount != 1 {
		t.Errorf("move_count = %d, want 1", s.MoveCount)
	}
	if s.Phase != PhaseSelected {
		t.Errorf("phase after full-cycle rotation = %v, want Selected (still counted)", s.Phase)
	}
	for _, c := range before.AllCoords() {
		want, _ := before.Get(c)
		got, _ := s.Board.Get(c)
		if want != got {
			t.Fatalf("board changed at %v after full-cycle rotation: want %+v, got %+v", c, want, got)
		}
	}
	for _, e := range events {
		if _, ok := e.(event.Matched); ok {
			t.Error("full-cycle no-op rotation must not emit a Matched event")
		}
	}
}

func TestRotateLineMatchCascadesToIdle(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeLine, 0)
	for _, c := range s.Board.AllCoords() {
		s.Board.Set(c, board.NewRegular((c.Col+c.Row)%5))
	}
	s.Board.Set(hexcore.Coord{Col: 4, Row: 2}, board.NewRegular(3))
	s.Board.Set(hexcore.Coord{Col: 4, Row: 3}, board.NewRegular(3))
	s.Board.Set(hexcore.Coord{Col: 4, Row: 4}, board.NewRegular(3))

	// The rotation loop's match test scans the whole board on every
	// step, so a selection far away from the pre-placed line still
	// triggers the resolver on step 1.
	origin := hexcore.Point{}
	size := 1.0
	pixel := hexcore.HexToPixel(hexcore.Coord{Col: 0, Row: 0}, origin, size)
	s.Select(pixel, origin, size)
	if s.Selection == nil {
		t.Fatal("setup: expected a selection")
	}

	events := s.Rotate(true)

	gotIdle := false
	sawMatch := false
	for _, e := range events {
		if _, ok := e.(event.Matched); ok {
			sawMatch = true
		}
		if pc, ok := e.(event.PhaseChanged); ok && pc.New == PhaseIdle {
			gotIdle = true
		}
	}
	if !sawMatch {
		t.Fatal("expected a Matched event from the pre-placed line")
	}
	if !gotIdle || s.Phase != PhaseIdle {
		t.Errorf("expected phase Idle after a cascading rotation, got %v", s.Phase)
	}
	if s.Selection != nil {
		t.Error("selection should be cleared after a cascading rotation")
	}
}

func TestChillModeNeverTicksOrSpawnsBombs(t *testing.T) {
	s := uniformSession(t, GameModeChill, match.ModeLine, 0)
	// Same match-free board as the full-cycle test, so the rotation finds
	// nothing and no cascade moves another cell into the bomb's slot.
	for _, c := range s.Board.AllCoords() {
		s.Board.Set(c, board.NewRegular((c.Col+c.Row)%5))
	}
	for _, c := range []hexcore.Coord{{Col: 4, Row: 4}, {Col: 5, Row: 3}, {Col: 4, Row: 3}} {
		s.Board.Set(c, board.NewRegular(7))
	}
	bombCoord := hexcore.Coord{Col: 0, Row: 0}
	s.Board.Set(bombCoord, board.NewRegular(1).WithBomb(1))

	origin := hexcore.Point{}
	size := 1.0
	pixel := hexcore.HexToPixel(hexcore.Coord{Col: 4, Row: 4}, origin, size)
	s.Select(pixel, origin, size)
	events := s.Rotate(true)

	cell, _ := s.Board.Get(bombCoord)
	if cell.BombTimer != 1 {
		t.Errorf("chill mode must never tick bombs, timer = %d, want 1", cell.BombTimer)
	}
	for _, e := range events {
		if _, ok := e.(event.GameOver); ok {
			t.Error("chill mode must never emit GameOver from bomb expiry")
		}
	}
}

func TestEndSessionOnlyAllowedInChill(t *testing.T) {
	arcade := uniformSession(t, GameModeArcade, match.ModeLine, 0)
	if events := arcade.EndSession(); events != nil {
		t.Errorf("EndSession() in arcade mode should be a no-op, got %v", events)
	}

	chill := uniformSession(t, GameModeChill, match.ModeLine, 0)
	events := chill.EndSession()
	if chill.Phase != PhaseGameOver {
		t.Errorf("phase after EndSession = %v, want GameOver", chill.Phase)
	}
	sawGameOver := false
	for _, e := range events {
		if gameOver, ok := e.(event.GameOver); ok && gameOver.Reason == event.GameOverSessionEnded {
			sawGameOver = true
		}
	}
	if !sawGameOver {
		t.Error("expected a GameOver(SessionEnded) event")
	}
}

func TestModeIDConcatenation(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeTriangle, 0)
	if got, want := s.ModeID(), "arcade_triangle"; got != want {
		t.Errorf("ModeID() = %q, want %q", got, want)
	}
}

func TestSnapshotRoundTripsThroughRestore(t *testing.T) {
	s := uniformSession(t, GameModeArcade, match.ModeLine, 2)
	s.Score.Score = 150
	s.MoveCount = 4

	rec := s.Snapshot()
	restored, events := Restore(rec, testConfig(), GameModeArcade, match.ModeLine, nil)
	if events != nil {
		t.Fatalf("Restore() of a valid snapshot failed: %v", events)
	}
	if restored.Score.Score != 150 || restored.MoveCount != 4 {
		t.Errorf("restored session mismatch: score=%d move_count=%d", restored.Score.Score, restored.MoveCount)
	}
}

func TestRestoreRejectsBombWithoutTimer(t *testing.T) {
	rec := storage.SessionRecord{
		ID:   "bad",
		Cols: 2, Rows: 2,
		Grid: [][]storage.SavedCell{
			{{Color: 1, Special: int(board.SpecialBomb), BombTimer: 0}, {Color: 0}},
			{{Color: 0}, {Color: 0}},
		},
		ModeID: "arcade_line",
	}

	restored, events := Restore(rec, testConfig(), GameModeArcade, match.ModeLine, nil)
	if restored != nil {
		t.Fatal("Restore() must return nil session on corrupt state")
	}
	found := false
	for _, e := range events {
		if _, ok := e.(event.RestoreFailed); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected a RestoreFailed event")
	}
}

func TestRestoreIntoChillModeDefusesBombs(t *testing.T) {
	rec := storage.SessionRecord{
		ID:   "cross-mode",
		Cols: 2, Rows: 2,
		Grid: [][]storage.SavedCell{
			{{Color: 1, Special: int(board.SpecialBomb), BombTimer: 5}, {Color: 0}},
			{{Color: 0}, {Color: 0}},
		},
		ModeID: "chill_line",
	}

	restored, events := Restore(rec, testConfig(), GameModeChill, match.ModeLine, nil)
	if events != nil {
		t.Fatalf("Restore() failed: %v", events)
	}
	cell, _ := restored.Board.Get(hexcore.Coord{Col: 0, Row: 0})
	if cell.Special == board.SpecialBomb {
		t.Error("bomb cell restored into chill mode must be converted to a regular cell")
	}
}

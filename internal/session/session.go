// Package session implements GameSession, the top-level orchestrator: the
// Idle/Selected/Rotating/Cascading/GameOver state machine that turns a
// stream of player actions into board mutations and an event transcript.
// It owns the board, the session RNG, score, and mode configuration;
// every other package is a stateless service it calls into.
package session

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cascade"
	"github.com/mjrix/hexic-engine/internal/config"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/rotation"
	"github.com/mjrix/hexic-engine/internal/score"
	"github.com/mjrix/hexic-engine/internal/special"
	"github.com/mjrix/hexic-engine/internal/storage"
)

// GameMode selects the bomb/game-over policy, orthogonal to MatchMode.
type GameMode int

const (
	GameModeArcade GameMode = iota
	GameModeChill
)

// String renders the mode the way the combined mode id expects it.
func (m GameMode) String() string {
	if m == GameModeChill {
		return "chill"
	}
	return "arcade"
}

// ParseGameMode parses the mode id fragment produced by String.
func ParseGameMode(s string) (GameMode, error) {
	switch s {
	case "arcade":
		return GameModeArcade, nil
	case "chill":
		return GameModeChill, nil
	default:
		return 0, fmt.Errorf("session: unknown game mode %q", s)
	}
}

// HasBombs reports whether the mode ticks and spawns bombs.
func (m GameMode) HasBombs() bool { return m == GameModeArcade }

// HasGameOver reports whether a bomb reaching zero ends the session.
func (m GameMode) HasGameOver() bool { return m == GameModeArcade }

// AllowsEndSession reports whether the player can voluntarily end the
// session (chill mode only).
func (m GameMode) AllowsEndSession() bool { return m == GameModeChill }

// Phase mirrors event.Phase; the alias avoids a second parallel enum
// with manual conversion at every boundary.
type Phase = event.Phase

const (
	PhaseIdle      = event.PhaseIdle
	PhaseSelected  = event.PhaseSelected
	PhaseRotating  = event.PhaseRotating
	PhaseCascading = event.PhaseCascading
	PhaseGameOver  = event.PhaseGameOver
)

// GameSession is the engine's single stateful object: one board, one RNG,
// one score counter, one active selection, all owned exclusively by this
// session for the duration of a transition.
type GameSession struct {
	ID        string
	Mode      GameMode
	MatchMode match.Mode
	Cfg       config.RulesConfig

	Board *board.Board
	RNG   *rand.Rand
	Score score.Counter

	MoveCount  int
	BombQueued bool
	Phase      Phase
	Selection  *rotation.Selection

	seed   uint64
	logger *log.Logger
}

// New creates a fresh session with a newly generated board, seeded from
// seed so the same seed and action sequence always reproduce the same
// transcript.
func New(cfg config.RulesConfig, mode GameMode, matchMode match.Mode, seed uint64, logger *log.Logger) *GameSession {
	s := &GameSession{
		ID:        uuid.NewString(),
		Mode:      mode,
		MatchMode: matchMode,
		Cfg:       cfg,
		seed:      seed,
		logger:    logger,
	}
	s.newBoard()
	s.Phase = PhaseIdle
	return s
}

// ModeID returns the combined mode id used for high-score bucketing and
// saved-state keying: "{game}_{match}".
func (s *GameSession) ModeID() string {
	return fmt.Sprintf("%s_%s", s.Mode, s.MatchMode)
}

func (s *GameSession) newBoard() {
	s.RNG = rand.New(rand.NewSource(int64(s.seed)))
	s.Board = board.NewBoard(s.RNG, s.Cfg.Board.Cols, s.Cfg.Board.Rows, s.Cfg.Palette.EffectiveSize())
}

func (s *GameSession) cascadeConfig() cascade.Config {
	return cascade.Config{
		PaletteSize:      s.Cfg.Palette.EffectiveSize(),
		BombInitialTimer: s.Cfg.Bombs.InitialTimer,
	}
}

func (s *GameSession) transitionTo(p Phase) event.Event {
	s.Phase = p
	return event.PhaseChanged{New: p}
}

// Select resolves the Select(pixel) action: pearl first, then starflower,
// then 3-cluster, at the triangle the pixel hit tests to. origin and size
// are the caller's hex-to-pixel transform parameters — the engine has no
// opinion on screen layout, and pixel-to-hex conversion exists only for a
// host's hit-testing. A second Select on the same selection deselects
// back to Idle; selecting elsewhere while already Selected replaces the
// selection.
func (s *GameSession) Select(p, origin hexcore.Point, size float64) []event.Event {
	if s.Phase != PhaseIdle && s.Phase != PhaseSelected {
		return nil
	}

	tri, ok := hexcore.FindClusterAtPixel(p, origin, size, s.Board.Bounds())
	if !ok {
		return nil
	}

	sel, ok := s.buildSelectionAt(tri)
	if !ok {
		return nil
	}

	if s.Phase == PhaseSelected && s.Selection != nil && *s.Selection == sel {
		s.Selection = nil
		return []event.Event{s.transitionTo(PhaseIdle)}
	}

	s.Selection = &sel
	return []event.Event{s.transitionTo(PhaseSelected)}
}

// buildSelectionAt classifies the cell under the hit-tested triangle's
// center hex and builds the matching Selection kind.
func (s *GameSession) buildSelectionAt(tri hexcore.Triangle) (rotation.Selection, bool) {
	cell, ok := s.Board.Get(tri.A)
	if !ok {
		return rotation.Selection{}, false
	}

	switch {
	case cell.IsBlackPearl():
		n := hexcore.Neighbors(tri.A)
		return rotation.NewYSelection(tri.A, [3]hexcore.Coord{n[0], n[2], n[4]}), true
	case cell.IsStarflower():
		return rotation.NewRingSelection(tri.A, hexcore.Neighbors(tri.A)), true
	default:
		return rotation.NewClusterSelection(tri.A, tri.B, tri.C), true
	}
}

// Rotate applies the Rotate(dir) action: runs the
// rotate-until-something-happens loop, hands off to the cascade resolver
// on a match or settles specials-only on a pearl birth with no match,
// then applies per-move house-keeping (move count, bomb tick, bomb-queue
// scheduling) exactly once regardless of outcome, and finally decides the
// resting phase — a bomb expiry ends the session, a match returns to
// Idle, anything else (including a full no-op cycle) returns to Selected
// with the move still counted.
func (s *GameSession) Rotate(clockwise bool) []event.Event {
	if s.Phase != PhaseSelected || s.Selection == nil {
		return nil
	}

	var events []event.Event
	events = append(events, s.transitionTo(PhaseRotating))

	result := rotation.Rotate(s.Board, *s.Selection, clockwise, s.MatchMode)

	for _, sf := range result.StarflowerBirths {
		events = append(events, event.StarflowerBorn{Center: sf.Center, Ring: sf.Ring, RingColor: sf.RingColor})
	}
	for _, p := range result.BlackPearlBirths {
		events = append(events, event.BlackPearlBorn{Center: p.Center, Absorbed: p.Absorbed})
	}

	matched := len(result.Matches) > 0
	switch {
	case matched:
		events = append(events, s.transitionTo(PhaseCascading))
		events = append(events, cascade.Resolve(s.Board, s.RNG, &s.Score, s.MatchMode, result.Matches, s.cascadeConfig(), &s.BombQueued)...)
	case len(result.BlackPearlBirths) > 0:
		// A pearl absorbing its ring leaves gaps a starflower birth alone
		// never does; settle them before the move is considered done.
		events = append(events, cascade.SettleGravityAndRefill(s.Board, s.RNG, s.cascadeConfig(), &s.BombQueued)...)
		events = append(events, cascade.PostSettleSpecials(s.Board)...)
	}

	s.MoveCount++
	var expired []hexcore.Coord
	if s.Mode.HasBombs() {
		expired = special.TickBombs(s.Board)
		s.Board.Each(func(c hexcore.Coord, cell board.Cell) {
			if cell.Special == board.SpecialBomb {
				events = append(events, event.BombTicked{Pos: c, Remaining: cell.BombTimer})
			}
		})
		interval := s.Cfg.Bombs.SpawnInterval(s.Score.Score)
		if interval > 0 && s.MoveCount%interval == 0 {
			s.BombQueued = true
		}
	}

	switch {
	case s.Mode.HasGameOver() && len(expired) > 0:
		s.Selection = nil
		events = append(events, s.transitionTo(PhaseGameOver))
		events = append(events, event.GameOver{
			Reason:   event.GameOverBombExpired,
			Pos:      expired[0],
			Snapshot: s.Board.Clone(),
		})
	case matched:
		s.Selection = nil
		events = append(events, s.transitionTo(PhaseIdle))
	default:
		events = append(events, s.transitionTo(PhaseSelected))
	}

	if s.logger != nil {
		s.logger.Debug("rotate resolved", "matched", matched, "move_count", s.MoveCount, "phase", s.Phase, "bomb_queued", s.BombQueued)
	}

	return events
}

// EndSession implements the chill-mode-only EndSession action.
func (s *GameSession) EndSession() []event.Event {
	if !s.Mode.AllowsEndSession() {
		return nil
	}

	s.Selection = nil
	events := []event.Event{s.transitionTo(PhaseGameOver)}
	events = append(events, event.GameOver{Reason: event.GameOverSessionEnded, Snapshot: s.Board.Clone()})

	if s.logger != nil {
		s.logger.Info("session ended", "id", s.ID, "mode_id", s.ModeID(), "score", s.Score.Score)
	}

	return events
}

// NewGame implements the NewGame action, valid from any phase: it
// reseeds the RNG, deals a fresh board, and resets all per-session
// counters.
func (s *GameSession) NewGame(seed uint64) []event.Event {
	s.seed = seed
	s.newBoard()
	s.Score = score.Counter{}
	s.MoveCount = 0
	s.BombQueued = false
	s.Selection = nil
	return []event.Event{s.transitionTo(PhaseIdle)}
}

// Snapshot serializes the session into the persistent state layout.
// DisplayScore mirrors Score: the lag between the two is a host-side
// animation concern, not something the engine tracks a distinct value
// for.
func (s *GameSession) Snapshot() storage.SessionRecord {
	grid := make([][]storage.SavedCell, s.Board.Rows)
	for r := 0; r < s.Board.Rows; r++ {
		grid[r] = make([]storage.SavedCell, s.Board.Cols)
		for c := 0; c < s.Board.Cols; c++ {
			cell, _ := s.Board.Get(hexcore.Coord{Col: c, Row: r})
			grid[r][c] = storage.SavedCell{
				Color:     cell.Color,
				Special:   int(cell.Special),
				BombTimer: cell.BombTimer,
			}
		}
	}

	return storage.SessionRecord{
		ID:           s.ID,
		Grid:         grid,
		Cols:         s.Board.Cols,
		Rows:         s.Board.Rows,
		MoveCount:    s.MoveCount,
		Score:        s.Score.Score,
		DisplayScore: s.Score.Score,
		ChainLevel:   s.Score.ChainLevel,
		ComboCount:   s.Score.Combo,
		RNGSeed:      s.seed,
		ModeID:       s.ModeID(),
		BombQueued:   s.BombQueued,
	}
}

// Restore rebuilds a GameSession from a saved record: it validates
// independently of the storage package's own persistence-integrity
// checks (a session should not trust its runtime invariants to another
// package's definition of "valid"), and never returns a partially-built
// session on failure. Any bomb cell in a record being restored into a
// chill-mode session is converted to a regular cell before the board
// becomes playable, since chill mode never carries bombs.
func Restore(rec storage.SessionRecord, cfg config.RulesConfig, mode GameMode, matchMode match.Mode, logger *log.Logger) (*GameSession, []event.Event) {
	if err := validateRecord(rec); err != nil {
		return nil, []event.Event{event.RestoreFailed{Reason: err.Error()}}
	}

	b := board.New(rec.Cols, rec.Rows)
	for r, row := range rec.Grid {
		for c, saved := range row {
			special := board.SpecialKind(saved.Special)
			bombTimer := saved.BombTimer
			if mode == GameModeChill && special == board.SpecialBomb {
				special = board.SpecialNone
				bombTimer = 0
			}
			b.Set(hexcore.Coord{Col: c, Row: r}, board.Cell{
				Color:     saved.Color,
				Special:   special,
				BombTimer: bombTimer,
			})
		}
	}

	s := &GameSession{
		ID:        rec.ID,
		Mode:      mode,
		MatchMode: matchMode,
		Cfg:       cfg,
		Board:     b,
		RNG:       rand.New(rand.NewSource(int64(rec.RNGSeed))),
		Score:     score.Counter{Score: rec.Score, ChainLevel: rec.ChainLevel, Combo: rec.ComboCount},
		MoveCount: rec.MoveCount,
		BombQueued: rec.BombQueued && mode == GameModeArcade,
		Phase:     PhaseIdle,
		seed:      rec.RNGSeed,
		logger:    logger,
	}

	if s.logger != nil {
		s.logger.Info("session restored", "id", s.ID, "mode_id", s.ModeID(), "move_count", s.MoveCount)
	}

	return s, nil
}

// validateRecord defends the session package's own runtime invariants
// against a corrupt record, independent of storage's persistence-layer
// validation: missing grid dimensions, a bad color sentinel, or a bomb
// cell with no timer all fail restore.
func validateRecord(rec storage.SessionRecord) error {
	if rec.Cols <= 0 || rec.Rows <= 0 {
		return fmt.Errorf("session: invalid grid dimensions %dx%d", rec.Cols, rec.Rows)
	}
	if len(rec.Grid) != rec.Rows {
		return fmt.Errorf("session: grid has %d rows, want %d", len(rec.Grid), rec.Rows)
	}
	for r, row := range rec.Grid {
		if len(row) != rec.Cols {
			return fmt.Errorf("session: grid row %d has %d cols, want %d", r, len(row), rec.Cols)
		}
		for c, cell := range row {
			if cell.Color < board.ColorBlackPearl {
				return fmt.Errorf("session: cell (%d,%d) has invalid color %d", c, r, cell.Color)
			}
			if board.SpecialKind(cell.Special) == board.SpecialBomb && cell.BombTimer <= 0 {
				return fmt.Errorf("session: bomb cell (%d,%d) has non-positive timer %d", c, r, cell.BombTimer)
			}
		}
	}
	return nil
}

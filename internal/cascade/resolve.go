// Package cascade orchestrates one player move end-to-end: match-set
// expansion by special interactions, scoring, clearing, mid-cascade
// specials, gravity, refill, post-settle specials, chain advance, and
// recursion into the next cascade level. This is an explicit iterative
// loop over cascade levels rather than recursion, so long chains never
// deepen the call stack.
package cascade

import (
	"math/rand"

	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/score"
	"github.com/mjrix/hexic-engine/internal/special"
)

// Config carries the board-generation constants the resolver needs for
// refill.
type Config struct {
	PaletteSize      int
	BombInitialTimer int
}

// Resolve runs the cascade pipeline starting from an initial set of
// matched cell keys, mutating b and sc in place, and returns the full
// ordered event transcript for this move. bombQueued is the session's
// owned flag: Resolve may consume it (spawning one bomb) and clears it
// once spawned.
func Resolve(b *board.Board, rng *rand.Rand, sc *score.Counter, mode match.Mode, initial cellset.Set, cfg Config, bombQueued *bool) []event.Event {
	var events []event.Event

	pending := initial
	for len(pending) > 0 {
		expanded, bonus := expandPending(b, pending)

		size := len(expanded)
		points := sc.Award(size, bonus)
		events = append(events,
			event.Matched{Set: expanded, Points: points, ChainLevel: sc.ChainLevel, Centroid: event.CentroidOf(expanded)},
			event.ScoreChanged{New: sc.Score},
		)

		events = append(events, clearSet(b, expanded)...)
		events = append(events, event.Cleared{Set: expanded})

		events = append(events, midCascadeSpecials(b, expanded)...)

		events = append(events, SettleGravityAndRefill(b, rng, cfg, bombQueued)...)

		events = append(events, PostSettleSpecials(b)...)

		sc.AdvanceChain()
		events = append(events, event.ChainAdvanced{Level: sc.ChainLevel})

		next := match.FindMatchesForMode(b, mode)
		if len(next) == 0 {
			sc.Reset()
			break
		}
		pending = cellset.Set(next)
	}

	return events
}

// findBomb locates the single bomb cell among the just-filled positions,
// for the BombSpawned event's position field.
func findBomb(b *board.Board, filled []hexcore.Coord) (hexcore.Coord, bool) {
	for _, c := range filled {
		cell, ok := b.Get(c)
		if ok && cell.Special == board.SpecialBomb {
			return c, true
		}
	}
	return hexcore.Coord{}, false
}

func toFallEntries(falls []board.Fall) []event.FallEntry {
	out := make([]event.FallEntry, len(falls))
	for i, f := range falls {
		out[i] = event.FallEntry{
			Col:       f.Col,
			FromRow:   f.FromRow,
			ToRow:     f.ToRow,
			Color:     f.Cell.Color,
			Special:   f.Cell.Special,
			BombTimer: f.Cell.BombTimer,
		}
	}
	return out
}

// clearSet empties every cell in s. A cell that is already empty means an
// earlier step computed an overlapping or stale match set; that's a
// resolver bug, not a valid board state, so it's reported rather than
// silently double-cleared.
func clearSet(b *board.Board, s cellset.Set) []event.Event {
	var events []event.Event
	for c := range s {
		if _, ok := b.Get(c); !ok {
			events = append(events, event.InvariantViolated{Reason: "clearing already-empty cell", Pos: c})
			continue
		}
		b.Clear(c)
	}
	return events
}

func midCascadeSpecials(b *board.Board, cleared cellset.Set) []event.Event {
	var events []event.Event

	births := special.DetectStarflowersAtCleared(b, cleared)
	for _, sf := range births {
		events = append(events, event.StarflowerBorn{Center: sf.Center, Ring: sf.Ring, RingColor: sf.RingColor})
	}

	if len(births) > 0 {
		pearls := special.DetectBlackPearls(b)
		for _, p := range pearls {
			events = append(events, event.BlackPearlBorn{Center: p.Center, Absorbed: p.Absorbed})
		}
	}

	return events
}

// SettleGravityAndRefill applies one gravity pass followed by a refill,
// emitting the corresponding events. Shared between the resolver's own
// loop and the rotation engine's specials-only settle path (a rotation
// that births a black pearl but no match still needs gravity to close
// the gaps the absorption left).
func SettleGravityAndRefill(b *board.Board, rng *rand.Rand, cfg Config, bombQueued *bool) []event.Event {
	var events []event.Event

	falls, moved := b.ApplyGravity()
	if moved {
		events = append(events, event.Gravity{FallMap: toFallEntries(falls)})
	}

	spawnBomb := bombQueued != nil && *bombQueued
	filled := b.FillEmpty(rng, cfg.PaletteSize, spawnBomb, cfg.BombInitialTimer)
	if len(filled) > 0 {
		events = append(events, event.Refilled{Positions: filled})
		if spawnBomb {
			*bombQueued = false
			if pos, ok := findBomb(b, filled); ok {
				events = append(events, event.BombSpawned{Pos: pos})
			}
		}
	}

	return events
}

// PostSettleSpecials runs the whole-board specials pass: starflower
// detection, then black-pearl detection, looping while pearls keep being
// born (a newly created starflower can complete a pearl).
func PostSettleSpecials(b *board.Board) []event.Event {
	var events []event.Event

	for {
		births := special.DetectStarflowers(b)
		if len(births) == 0 {
			break
		}
		for _, sf := range births {
			events = append(events, event.StarflowerBorn{Center: sf.Center, Ring: sf.Ring, RingColor: sf.RingColor})
		}

		pearls := special.DetectBlackPearls(b)
		for _, p := range pearls {
			events = append(events, event.BlackPearlBorn{Center: p.Center, Absorbed: p.Absorbed})
		}

		// Newly created starflowers can complete a pearl, which frees up
		// the ring positions again (no new regular cells appear), so
		// there is nothing further for DetectStarflowers to find unless a
		// pearl birth changed the board — which it only does by clearing
		// cells, never by creating new candidate centers. One pass
		// suffices; loop defensively in case future rules chain further.
		if len(pearls) == 0 {
			break
		}
	}

	return events
}

// expandPending grows the pending set by multiplier-cluster, color-nuke,
// and explosion interactions, and returns the accumulated score bonus
// (starting at 1.0, the neutral multiplier).
func expandPending(b *board.Board, matches cellset.Set) (cellset.Set, float64) {
	pending := cellset.New()
	pending.Union(cellset.Set(matches))

	bonus := 1.0
	nukedColors := make(map[int]struct{})
	explosionSources := cellset.New()

	clusters := special.MultiplierClusters(b)
	for _, cluster := range clusters {
		pending.Union(cluster)
		bonus += 0.5 * float64(len(cluster))

		mono, color := monochrome(b, cluster)
		if mono {
			nukedColors[color] = struct{}{}
		} else {
			for c := range cluster {
				explosionSources.Add(c)
			}
		}
	}

	for c := range pending {
		cell, ok := b.Get(c)
		if ok && cell.Special == board.SpecialMultiplier {
			bonus += 0.5
		}
	}

	bombColors := colorsWithSpecial(b, pending, board.SpecialBomb)
	multiplierColors := colorsWithSpecial(b, pending, board.SpecialMultiplier)
	for color := range bombColors {
		if _, ok := multiplierColors[color]; ok {
			nukedColors[color] = struct{}{}
		}
	}

	if len(nukedColors) > 0 {
		applyColorNuke(b, pending, nukedColors)
	}

	if len(explosionSources) > 0 {
		applyExplosion(b, pending, explosionSources)
	}

	return pending, bonus
}

func monochrome(b *board.Board, cluster cellset.Set) (mono bool, color int) {
	color = -1
	for c := range cluster {
		cell, ok := b.Get(c)
		if !ok {
			continue
		}
		if color == -1 {
			color = cell.Color
		} else if cell.Color != color {
			return false, 0
		}
	}
	return true, color
}

func colorsWithSpecial(b *board.Board, set cellset.Set, kind board.SpecialKind) map[int]struct{} {
	colors := make(map[int]struct{})
	for c := range set {
		cell, ok := b.Get(c)
		if ok && cell.Special == kind {
			colors[cell.Color] = struct{}{}
		}
	}
	return colors
}

func applyColorNuke(b *board.Board, pending cellset.Set, colors map[int]struct{}) {
	for _, c := range b.AllCoords() {
		cell, ok := b.Get(c)
		if !ok || cell.Color < 0 {
			continue
		}
		if _, nuked := colors[cell.Color]; nuked {
			pending.Add(c)
		}
	}
}

func applyExplosion(b *board.Board, pending cellset.Set, sources cellset.Set) {
	bounds := b.Bounds()
	for src := range sources {
		for _, n := range hexcore.Neighbors(src) {
			if !bounds.InBounds(n) {
				continue
			}
			cell, ok := b.Get(n)
			if !ok || cell.IsBlackPearl() {
				continue
			}
			pending.Add(n)
		}
	}
}

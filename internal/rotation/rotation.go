// Package rotation implements the single entry point for a player's
// rotate action: the rotate-until-something-happens loop. It owns the
// Selection tagged record and the per-step stop-condition tests; it
// knows nothing about scoring, cascading, or session phases — those are
// the cascade and session packages' jobs.
package rotation

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/special"
)

// Kind distinguishes the three selection topologies: a 3-cluster, a
// starflower's 6-ring, or a black pearl's Y.
type Kind int

const (
	KindCluster Kind = iota
	KindRing
	KindY
)

// Selection is the tagged record describing what the player has picked
// up. Only the field matching Kind is meaningful.
type Selection struct {
	Kind    Kind
	Center  hexcore.Coord    // set for Ring and Y; a pearl or starflower center
	Cluster [3]hexcore.Coord // set for KindCluster
	Ring    [6]hexcore.Coord // set for KindRing
	Y       [3]hexcore.Coord // set for KindY
}

// NewClusterSelection builds a 3-cluster selection from three mutually
// adjacent cells sharing a vertex.
func NewClusterSelection(a, b, c hexcore.Coord) Selection {
	return Selection{Kind: KindCluster, Cluster: [3]hexcore.Coord{a, b, c}}
}

// NewRingSelection builds a starflower's ring selection.
func NewRingSelection(center hexcore.Coord, ring [6]hexcore.Coord) Selection {
	return Selection{Kind: KindRing, Center: center, Ring: ring}
}

// NewYSelection builds a black pearl's Y selection: alternating
// neighbors at indices 0, 2, 4 of the neighbor table.
func NewYSelection(center hexcore.Coord, y [3]hexcore.Coord) Selection {
	return Selection{Kind: KindY, Center: center, Y: y}
}

// maxSteps returns the generator's cycle length: 3 for Cluster and Y, 6
// for Ring.
func (s Selection) maxSteps() int {
	if s.Kind == KindRing {
		return 6
	}
	return 3
}

func (s Selection) apply(b *board.Board, clockwise bool) {
	switch s.Kind {
	case KindCluster:
		b.RotateCluster(s.Cluster, clockwise)
	case KindRing:
		b.RotateRing(s.Ring, clockwise)
	case KindY:
		b.RotateY(s.Y, clockwise)
	}
}

// Result reports what the rotate loop found. FullCycle is true when the
// loop exhausted max_steps without a hit, meaning the board returned to
// its pre-rotation contents and the move is a no-op (still consumed by
// the caller).
type Result struct {
	StepsTaken       int
	FullCycle        bool
	Matches          cellset.Set
	StarflowerBirths []special.StarflowerBirth
	BlackPearlBirths []special.BlackPearlBirth
}

// Rotate applies one step of the selection's rotation generator at a
// time, testing after each step whether a match, a starflower birth, or
// a black-pearl birth has occurred. The first step to hit any of the
// three stops the loop; the starflower/black-pearl detectors have
// already mutated the board in place by the time they report a hit. If
// the loop completes all max_steps with no hit, the board is back to its
// starting contents.
func Rotate(b *board.Board, sel Selection, clockwise bool, mode match.Mode) Result {
	steps := sel.maxSteps()

	for step := 0; step < steps; step++ {
		sel.apply(b, clockwise)

		matches := match.FindMatchesForMode(b, mode)
		sfBirths := special.DetectStarflowers(b)
		bpBirths := special.DetectBlackPearls(b)

		if len(matches) > 0 || len(sfBirths) > 0 || len(bpBirths) > 0 {
			return Result{
				StepsTaken:       step + 1,
				Matches:          matches,
				StarflowerBirths: sfBirths,
				BlackPearlBirths: bpBirths,
			}
		}
	}

	return Result{StepsTaken: steps, FullCycle: true}
}

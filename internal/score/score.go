// Package score implements the point/chain/combo arithmetic.
package score

import "math"

// ChainMultiplierBase is the exponential chain multiplier's base.
const ChainMultiplierBase = 1.5

// baseForSize is the base-points-by-run-size table: 3->5, 4->10, 5->20;
// for n>5 it extrapolates as n*10.
func baseForSize(size int) int {
	switch size {
	case 3:
		return 5
	case 4:
		return 10
	case 5:
		return 20
	default:
		if size > 5 {
			return size * 10
		}
		return 0
	}
}

// Counter tracks score, chain level, and combo count for one session. It
// has no notion of the board; the resolver computes award inputs and
// calls Award.
type Counter struct {
	Score      int
	ChainLevel int
	Combo      int
}

// Award computes points for a match of the given size at the counter's
// current chain level with the given bonus multiplier, adds them to
// Score, increments Combo, and returns the points awarded:
// points = round(base(size) * multiplier_base^chain_level * bonus).
func (c *Counter) Award(size int, bonus float64) int {
	base := float64(baseForSize(size))
	multiplier := math.Pow(ChainMultiplierBase, float64(c.ChainLevel))
	points := int(math.Round(base * multiplier * bonus))

	c.Score += points
	c.Combo++

	return points
}

// AdvanceChain increments the chain level by one.
func (c *Counter) AdvanceChain() {
	c.ChainLevel++
}

// Reset zeroes chain level and combo count (called when a cascade
// settles with no further matches). Score is untouched.
func (c *Counter) Reset() {
	c.ChainLevel = 0
	c.Combo = 0
}

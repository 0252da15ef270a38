package special

import (
	"github.com/mjrix/hexic-engine/internal/board"
	"github.com/mjrix/hexic-engine/internal/cellset"
	"github.com/mjrix/hexic-engine/internal/hexcore"
)

// MultiplierClusterMinSize is the smallest connected component of
// multiplier-tagged cells that counts as a cluster.
const MultiplierClusterMinSize = 3

// MultiplierClusters finds every connected component (via Neighbors) of
// cells tagged SpecialMultiplier and returns the components of size >= 3
// as sets of keys. Connectivity is found by breadth-first flood fill from
// each unvisited multiplier cell.
func MultiplierClusters(b *board.Board) []cellset.Set {
	visited := make(cellset.Set)
	var clusters []cellset.Set
	bounds := b.Bounds()

	for _, start := range b.AllCoords() {
		if visited.Has(start) {
			continue
		}
		cell, ok := b.Get(start)
		if !ok || cell.Special != board.SpecialMultiplier {
			continue
		}

		component := cellset.New(start)
		visited.Add(start)
		queue := []hexcore.Coord{start}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			for _, n := range hexcore.Neighbors(cur) {
				if !bounds.InBounds(n) || visited.Has(n) {
					continue
				}
				nCell, ok := b.Get(n)
				if !ok || nCell.Special != board.SpecialMultiplier {
					continue
				}
				visited.Add(n)
				component.Add(n)
				queue = append(queue, n)
			}
		}

		if len(component) >= MultiplierClusterMinSize {
			clusters = append(clusters, component)
		}
	}

	return clusters
}

// Package layout assigns 2D canvas positions to flow nodes for the wire
// format's cosmetic metadata. Positions never affect routing semantics, but
// the wire format requires one per node and repeated compiles of an
// unchanged graph must produce identical coordinates.
//
// The algorithm is a layered BFS: a node's column is its BFS depth from the
// entry node (first visit wins, so multi-path nodes take their minimum
// depth), and its row within the column is its discovery order. Nodes
// unreachable from the entry are placed in one trailing column in graph
// insertion order; they are reported as orphans so callers can surface a
// warning, but they still receive valid positions because the target engine
// tolerates them.
package layout

import "github.com/NC1107/CxBlueprint/internal/core/flow"

// Canvas geometry. X grows rightward, Y grows downward; a position is the
// top-left corner of the block.
const (
	StartX        = 150
	StartY        = 50
	ColumnSpacing = 280
	RowSpacing    = 180
)

// Position is a canvas coordinate in pixels.
type Position struct {
	X int
	Y int
}

// Result holds a position for every node in the graph plus the ids of nodes
// unreachable from the entry point, in insertion order.
type Result struct {
	Positions map[string]Position
	Orphans   []string
}

// Compute lays out the graph. It terminates in O(nodes+edges) regardless of
// cycles: the rank map doubles as the visited set, so no node is expanded
// twice.
func Compute(g *flow.Graph) Result {
	res := Result{Positions: make(map[string]Position, g.Len())}
	if g.Len() == 0 {
		return res
	}

	// Adjacency in edge insertion order keeps discovery order stable.
	succ := make(map[string][]string, g.Len())
	for _, e := range g.Edges() {
		succ[e.From] = append(succ[e.From], e.To)
	}

	rank := make(map[string]int, g.Len())
	rowInRank := make(map[int]int)
	maxRank := 0

	queue := []string{g.EntryPoint()}
	rank[g.EntryPoint()] = 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		r := rank[id]
		if r > maxRank {
			maxRank = r
		}
		res.Positions[id] = Position{
			X: StartX + r*ColumnSpacing,
			Y: StartY + rowInRank[r]*RowSpacing,
		}
		rowInRank[r]++

		for _, next := range succ[id] {
			if _, seen := rank[next]; seen {
				continue
			}
			// Targets may dangle before compile-time validation;
			// skip ids with no node so layout stays total.
			if _, ok := g.Node(next); !ok {
				continue
			}
			rank[next] = r + 1
			queue = append(queue, next)
		}
	}

	// Orphans go in one column past the deepest reachable rank.
	orphanCol := maxRank + 1
	orphanRow := 0
	for _, n := range g.Nodes() {
		if _, placed := res.Positions[n.ID]; placed {
			continue
		}
		res.Orphans = append(res.Orphans, n.ID)
		res.Positions[n.ID] = Position{
			X: StartX + orphanCol*ColumnSpacing,
			Y: StartY + orphanRow*RowSpacing,
		}
		orphanRow++
	}
	return res
}

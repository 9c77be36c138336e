package network

import (
	"fmt"

	"github.com/katalvlaran/equiflow/parallel"
)

// CostMatrix holds the cheapest delivered cost between every ordered pair
// of locations. It is immutable once built and safe to share across
// goroutines.
type CostMatrix struct {
	ids   []string
	index map[string]int
	cost  [][]int64 // cost[i][j], unreachable pairs hold math.MaxInt64
}

// AllCheapestCosts runs one Dijkstra per source location and assembles the
// full cost matrix. Sources are independent, so rows are computed across
// the pool; each worker writes only its own rows, and the assembled matrix
// is identical for any pool size. A nil pool computes serially.
//
// Complexity: O(V · (V + E) log V) total work, O(V²) space.
func (n *Network) AllCheapestCosts(p *parallel.Pool) *CostMatrix {
	// 1) One snapshot shared read-only by every row computation.
	ix := n.snapshot()
	V := len(ix.ids)

	m := &CostMatrix{
		ids:   ix.ids,
		index: ix.index,
		cost:  make([][]int64, V),
	}
	if V == 0 {
		return m
	}

	// 2) Row i is owned by task i: no two tasks share a slot.
	run := func(i int) {
		dist, _ := ix.dijkstra(i, false)
		m.cost[i] = dist
	}
	if p == nil {
		for i := 0; i < V; i++ {
			run(i)
		}

		return m
	}
	p.ForEach(V, run)

	return m
}

// Locations returns the matrix's location IDs in sorted order.
func (m *CostMatrix) Locations() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)

	return out
}

// Cost returns the cheapest delivered cost from→to. It fails with
// ErrLocationNotFound for unknown IDs and ErrNoPath for unreachable pairs.
// The cost from a location to itself is 0.
// Complexity: O(1).
func (m *CostMatrix) Cost(from, to string) (int64, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, from)
	}
	j, ok := m.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, to)
	}
	c := m.cost[i][j]
	if c == unreachable {
		return 0, fmt.Errorf("%w: %s→%s", ErrNoPath, from, to)
	}

	return c, nil
}

// Reachable reports whether any route sequence leads from→to. Unknown
// locations are simply not reachable.
func (m *CostMatrix) Reachable(from, to string) bool {
	i, ok := m.index[from]
	if !ok {
		return false
	}
	j, ok := m.index[to]
	if !ok {
		return false
	}

	return m.cost[i][j] != unreachable
}

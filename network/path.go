package network

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// unreachable marks a location no route sequence can reach.
const unreachable = int64(math.MaxInt64)

// CheapestPath computes the minimum total transport cost from origin to
// destination over any route sequence, with the location sequence that
// realizes it. Non-negative costs make this classic Dijkstra; ties keep
// the first path discovered under sorted neighbor order, so the result is
// deterministic.
//
// Returns ErrLocationNotFound for unknown endpoints and ErrNoPath when the
// destination is unreachable. A query from a location to itself succeeds
// with cost 0.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func (n *Network) CheapestPath(origin, destination string) (Path, error) {
	// 1) Snapshot the graph under the read lock; the search then runs
	//    without holding any lock.
	ix := n.snapshot()

	// 2) Validate endpoints against the snapshot.
	src, ok := ix.index[origin]
	if !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrLocationNotFound, origin)
	}
	dst, ok := ix.index[destination]
	if !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrLocationNotFound, destination)
	}

	// 3) Run the search with predecessor tracking.
	dist, prev := ix.dijkstra(src, true)
	if dist[dst] == unreachable {
		return Path{}, fmt.Errorf("%w: %s→%s", ErrNoPath, origin, destination)
	}

	// 4) Rebuild the location sequence by walking predecessors backward.
	seq := []string{ix.ids[dst]}
	for at := dst; at != src; at = prev[at] {
		seq = append(seq, ix.ids[prev[at]])
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}

	return Path{Locations: seq, Cost: dist[dst]}, nil
}

// iroute is an index-resolved route inside a snapshot.
type iroute struct {
	to   int
	cost int64
}

// netIndex is an immutable, index-resolved snapshot of a Network.
// ids is sorted, so index order equals lexicographic location order; every
// tie-break on index below is therefore the fixed location-ID ordering.
type netIndex struct {
	ids   []string
	index map[string]int
	adj   [][]iroute // adj[i] sorted by destination index
}

// snapshot captures locations and routes under one read lock acquisition,
// so a concurrent mutation can never produce a half-updated view.
// Complexity: O(V log V + E · d_max), d_max the largest out-degree.
func (n *Network) snapshot() *netIndex {
	n.mu.RLock()
	ids := make([]string, 0, len(n.locations))
	for id := range n.locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ix := &netIndex{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		adj:   make([][]iroute, len(ids)),
	}
	for i, id := range ids {
		ix.index[id] = i
	}
	for from, inner := range n.routes {
		f := ix.index[from]
		ix.adj[f] = make([]iroute, 0, len(inner))
		for to, cost := range inner {
			ix.adj[f] = append(ix.adj[f], iroute{to: ix.index[to], cost: cost})
		}
	}
	n.mu.RUnlock()

	// Sorted destinations give a fixed edge-iteration order. Indexes are
	// lex ranks, so numeric order is ID order.
	for _, routes := range ix.adj {
		sortIRoutes(routes)
	}

	return ix
}

// sortIRoutes orders a small adjacency slice by destination index.
// Insertion sort: adjacency lists are typically short and mostly sorted.
func sortIRoutes(rs []iroute) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].to < rs[j-1].to; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

// dijkstra computes shortest distances from src to every location in the
// snapshot. When needPrev is true it also records, for each settled
// location, its predecessor on the first-discovered cheapest path
// (-1 for unreached locations and the source itself).
//
// The heap uses lazy decrease-key: improved distances push duplicates and
// stale entries are skipped via visited.
func (ix *netIndex) dijkstra(src int, needPrev bool) ([]int64, []int) {
	V := len(ix.ids)

	// 1) Initialize distances to +∞, predecessors to -1.
	dist := make([]int64, V)
	for i := range dist {
		dist[i] = unreachable
	}
	var prev []int
	if needPrev {
		prev = make([]int, V)
		for i := range prev {
			prev[i] = -1
		}
	}
	visited := make([]bool, V)
	dist[src] = 0

	// 2) Seed the heap with the source at distance 0.
	pq := make(pathPQ, 0, V)
	heap.Init(&pq)
	heap.Push(&pq, pathItem{node: src, dist: 0})

	// 3) Main loop: settle the closest unvisited location, relax its routes.
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(pathItem)
		u := item.node
		if visited[u] {
			continue // stale lazy entry
		}
		visited[u] = true

		for _, r := range ix.adj[u] {
			// Strict improvement only: on ties the first-discovered path,
			// reached under sorted neighbor order, is kept.
			nd := dist[u] + r.cost
			if nd >= dist[r.to] {
				continue
			}
			dist[r.to] = nd
			if needPrev {
				prev[r.to] = u
			}
			heap.Push(&pq, pathItem{node: r.to, dist: nd})
		}
	}

	return dist, prev
}

// pathItem is one heap entry: a location index and its tentative distance.
type pathItem struct {
	node int
	dist int64
}

// pathPQ is a min-heap of pathItem ordered by distance, breaking ties by
// location index (= lexicographic ID order) so settle order is fixed.
type pathPQ []pathItem

func (pq pathPQ) Len() int { return len(pq) }

func (pq pathPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].node < pq[j].node
}

func (pq pathPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathPQ) Push(x interface{}) { *pq = append(*pq, x.(pathItem)) }

func (pq *pathPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

package equilibrium

import "container/heap"

// cheapest runs one Dijkstra over the residual network under reduced costs
// c(x→y) + pi(x) − pi(y), which the potential updates keep non-negative.
// It returns the distance of every node from the virtual source and the
// predecessor arcs for path application.
//
// Determinism: nodes are relaxed in a fixed order (ladder arcs first, then
// transport, ascending indices throughout), the heap breaks distance ties
// by node index, and relaxation is strict, so equal-cost alternatives
// always resolve to the lexicographically first path.
//
// Complexity: O((V + E) log V) per call, V locations and E routes.
func (md *model) cheapest() ([]int64, []arcRef) {
	n := len(md.ids) + 2
	dist := make([]int64, n)
	prev := make([]arcRef, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = inf
	}
	dist[md.src] = 0

	pq := make(searchPQ, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, searchItem{node: md.src, dist: 0})

	// relax attempts the residual arc u→to of real cost c.
	var u int
	relax := func(to int, c int64, ref arcRef) {
		nd := dist[u] + c + md.pi[u] - md.pi[to]
		if nd >= dist[to] {
			return
		}
		dist[to] = nd
		prev[to] = ref
		heap.Push(&pq, searchItem{node: to, dist: nd})
	}

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(searchItem)
		u = item.node
		if done[u] {
			continue // stale lazy-decrease-key entry
		}
		done[u] = true

		switch u {
		case md.src:
			// Supply entry arcs: one per location with an uncleared rung.
			for i := range md.ids {
				if r := md.rungAt(i); r.canProduce {
					relax(i, r.produce, arcRef{from: int32(u), kind: arcProduce})
				}
			}
		case md.snk:
			// Demand undo arcs: return the last consumed rung's value.
			for i := range md.ids {
				if r := md.rungAt(i); r.canUnconsume {
					relax(i, r.unconsume, arcRef{from: int32(u), kind: arcUnconsume})
				}
			}
		default:
			r := md.rungAt(u)
			if r.canUnproduce {
				relax(md.src, -r.unproduce, arcRef{from: int32(u), kind: arcUnproduce})
			}
			if r.canConsume {
				relax(md.snk, -r.consume, arcRef{from: int32(u), kind: arcConsume})
			}
			for _, ei := range md.out[u] {
				e := md.edges[ei]
				relax(e.to, e.cost, arcRef{from: int32(u), kind: arcMove, edge: ei})
			}
			for _, ei := range md.in[u] {
				if e := md.edges[ei]; e.flow > 0 {
					relax(e.from, -e.cost, arcRef{from: int32(u), kind: arcMoveBack, edge: ei})
				}
			}
		}
	}

	return dist, prev
}

// reprice shifts every node potential by min(dist, dist(sink)) after an
// augmentation. The cap keeps unreachable and beyond-sink nodes consistent
// so every residual reduced cost stays non-negative, and it leaves the
// arcs along the augmenting path at reduced cost zero, ready to reverse.
func (md *model) reprice(dist []int64) {
	dt := dist[md.snk]
	for i, d := range dist {
		if d < dt {
			md.pi[i] += d
		} else {
			md.pi[i] += dt
		}
	}
}

// searchItem is one heap entry of the lazy-decrease-key queue.
type searchItem struct {
	node int
	dist int64
}

// searchPQ orders entries by distance, then node index, so ties pop in
// lexicographic location order.
type searchPQ []searchItem

func (pq searchPQ) Len() int { return len(pq) }

func (pq searchPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].node < pq[j].node
}

func (pq searchPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *searchPQ) Push(x interface{}) { *pq = append(*pq, x.(searchItem)) }

func (pq *searchPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

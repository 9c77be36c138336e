package equilibrium

import "github.com/katalvlaran/equiflow/network"

// clearingPrices extracts per-location prices from the terminal state.
//
// Locations in components that cleared at least one unit take their dual
// potential relative to the virtual source. The potential system keeps
// price(to) ≤ price(from) + cost across every residual transport arc, with
// equality along traded routes, so those duals are the clearing prices.
//
// Components that cleared nothing have no meaningful dual, so with
// fallback enabled they are quoted from their own ladders instead; see
// quote. With fallback disabled they keep the raw dual.
func (md *model) clearingPrices(costs *network.CostMatrix, fallback bool) []int64 {
	// 1) Dual prices. pi[src] never leaves zero (its search distance is
	//    zero in every iteration), so the dual is pi itself, and location
	//    potentials only ever accumulate non-negative steps.
	p := make([]int64, len(md.ids))
	for i := range p {
		p[i] = md.pi[i]
	}
	if !fallback {
		return p
	}

	// 2) Re-quote every component in which no unit cleared.
	for _, comp := range md.components() {
		quiet := true
		for _, v := range comp {
			if md.su[v] != 0 || md.du[v] != 0 {
				quiet = false

				break
			}
		}
		if quiet {
			md.quote(comp, costs, p)
		}
	}

	return p
}

// components groups locations into weakly-connected components of the
// route graph, ignoring direction: two locations in different components
// cannot interact at any price.
func (md *model) components() [][]int {
	seen := make([]bool, len(md.ids))
	var comps [][]int
	for start := range md.ids {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []int{start}
		for q := 0; q < len(comp); q++ {
			v := comp[q]
			for _, ei := range md.out[v] {
				if w := md.edges[ei].to; !seen[w] {
					seen[w] = true
					comp = append(comp, w)
				}
			}
			for _, ei := range md.in[v] {
				if w := md.edges[ei].from; !seen[w] {
					seen[w] = true
					comp = append(comp, w)
				}
			}
		}
		comps = append(comps, comp)
	}

	return comps
}

// quote prices an untraded component from its own ladders.
//
// Each member starts from the best quote its position supports: the value
// of the nearest reachable first demand unit net of transport, else the
// cost of the nearest supplier's first unit plus transport, else zero.
// A pairwise relaxation then lowers any quote that a cheaper neighbour
// undercuts, so price(to) ≤ price(from) + cheapest cost holds inside the
// component, and a final floor keeps prices non-negative.
func (md *model) quote(comp []int, costs *network.CostMatrix, p []int64) {
	// 1) Independent base quotes.
	base := make(map[int]int64, len(comp))
	for _, v := range comp {
		base[v] = md.baseQuote(v, comp, costs)
	}

	// 2) Relaxation over delivered quotes, then the zero floor.
	for _, v := range comp {
		best := base[v]
		for _, u := range comp {
			if u == v {
				continue
			}
			c, err := costs.Cost(md.ids[u], md.ids[v])
			if err != nil {
				continue
			}
			if q := base[u] + c; q < best {
				best = q
			}
		}
		if best < 0 {
			best = 0
		}
		p[v] = best
	}
}

// baseQuote derives one location's standalone quote inside an untraded
// component. Untraded means every ladder is untouched, so first units are
// the marginal ones.
func (md *model) baseQuote(v int, comp []int, costs *network.CostMatrix) int64 {
	// Demand side first: what would a unit delivered from v fetch?
	bestD, okD := int64(0), false
	for _, z := range comp {
		if md.dem[z] == nil {
			continue
		}
		c, err := costs.Cost(md.ids[v], md.ids[z])
		if err != nil {
			continue
		}
		if q := md.dem[z][0] - c; !okD || q > bestD {
			bestD, okD = q, true
		}
	}
	if okD {
		return bestD
	}

	// No reachable demand: what would a unit delivered to v cost?
	bestS, okS := int64(0), false
	for _, w := range comp {
		if md.sup[w] == nil {
			continue
		}
		c, err := costs.Cost(md.ids[w], md.ids[v])
		if err != nil {
			continue
		}
		if q := md.sup[w][0] + c; !okS || q < bestS {
			bestS, okS = q, true
		}
	}
	if okS {
		return bestS
	}

	return 0
}

package equilibrium

import (
	"fmt"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/network"
)

// Verify re-checks a Result against its market from scratch:
//
//  1. every location is priced, non-negatively;
//  2. produced and consumed quantities sit inside their curve bounds;
//  3. every flow names a real direct route and ships a positive quantity;
//  4. traded routes settle exactly at origin price plus transport cost;
//  5. conservation holds at every location
//     (produced + received = consumed + shipped);
//  6. no ordered pair of locations leaves a profitable route
//     (price(to) ≤ price(from) + cheapest transport cost);
//  7. the reported surplus equals consumer value minus producer cost minus
//     transport spend, recomputed from the ladders.
//
// Solve runs these same checks before returning, so Verify exists for
// callers that transport or persist results and want to re-establish
// trust. All arithmetic is exact.
//
// Complexity: O(V² + E + total curve length).
func Verify(m *market.Market, r *Result) error {
	if m == nil {
		return ErrNilMarket
	}
	if r == nil {
		return ErrNilResult
	}

	return verify(m, r, m.Network().AllCheapestCosts(nil))
}

// verify is the shared implementation; Solve passes its precomputed cost
// matrix instead of building a fresh one.
func verify(m *market.Market, r *Result, costs *network.CostMatrix) error {
	ids := m.Locations()
	net := m.Network()

	// 1) Materialize ladders once for bounds and surplus arithmetic.
	sup := make(map[string][]int64, len(ids))
	dem := make(map[string][]int64, len(ids))
	for _, id := range ids {
		if c, ok := m.Supply(id); ok {
			vals, err := curve.Values(c)
			if err != nil {
				return fmt.Errorf("%s supply: %w", id, err)
			}
			sup[id] = vals
		}
		if c, ok := m.Demand(id); ok {
			vals, err := curve.Values(c)
			if err != nil {
				return fmt.Errorf("%s demand: %w", id, err)
			}
			dem[id] = vals
		}
	}

	// 2) Prices: every location priced, never below zero.
	for _, id := range ids {
		price, ok := r.Prices[id]
		if !ok {
			return fmt.Errorf("%w: %s has no price", ErrBadPrice, id)
		}
		if price < 0 {
			return fmt.Errorf("%w: %s priced %d", ErrBadPrice, id, price)
		}
	}

	// 3) Quantity bounds against curve lengths.
	for _, id := range ids {
		if q := r.Produced[id]; q < 0 || q > len(sup[id]) {
			return fmt.Errorf("%w: %s produced %d of %d units", ErrBadQuantity, id, q, len(sup[id]))
		}
		if q := r.Consumed[id]; q < 0 || q > len(dem[id]) {
			return fmt.Errorf("%w: %s consumed %d of %d units", ErrBadQuantity, id, q, len(dem[id]))
		}
	}

	// 4) Flows: positive units over real routes, settling exactly.
	in := make(map[string]int, len(ids))
	out := make(map[string]int, len(ids))
	var transport int64
	for _, f := range r.Flows {
		if f.Units <= 0 {
			return fmt.Errorf("%w: flow %s→%s ships %d units", ErrBadQuantity, f.From, f.To, f.Units)
		}
		cost, err := net.DirectCost(f.From, f.To)
		if err != nil {
			return fmt.Errorf("flow %s→%s: %w", f.From, f.To, err)
		}
		out[f.From] += f.Units
		in[f.To] += f.Units
		transport += int64(f.Units) * cost
		if r.Prices[f.To] != r.Prices[f.From]+cost {
			return fmt.Errorf("%w: traded route %s→%s settles at %d, origin %d plus cost %d",
				ErrArbitrage, f.From, f.To, r.Prices[f.To], r.Prices[f.From], cost)
		}
	}

	// 5) Conservation at every location.
	for _, id := range ids {
		if r.Produced[id]+in[id] != r.Consumed[id]+out[id] {
			return fmt.Errorf("%w: %s: produced %d + received %d vs consumed %d + shipped %d",
				ErrUnbalanced, id, r.Produced[id], in[id], r.Consumed[id], out[id])
		}
	}

	// 6) Pairwise no-arbitrage over cheapest paths; unreachable pairs are
	//    unconstrained.
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			c, err := costs.Cost(a, b)
			if err != nil {
				continue
			}
			if r.Prices[b] > r.Prices[a]+c {
				return fmt.Errorf("%w: %s→%s: price %d exceeds %d plus cheapest cost %d",
					ErrArbitrage, a, b, r.Prices[b], r.Prices[a], c)
			}
		}
	}

	// 7) Surplus arithmetic, unit by unit.
	var value, outlay int64
	for _, id := range ids {
		for q := 0; q < r.Consumed[id]; q++ {
			value += dem[id][q]
		}
		for q := 0; q < r.Produced[id]; q++ {
			outlay += sup[id][q]
		}
	}
	if got := value - outlay - transport; got != r.Surplus {
		return fmt.Errorf("%w: assignment yields %d, result claims %d", ErrBadSurplus, got, r.Surplus)
	}

	return nil
}

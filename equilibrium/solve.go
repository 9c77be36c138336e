package equilibrium

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/parallel"
)

// Solve computes the equilibrium of m: clearing prices, produced and
// consumed quantities, the flow assignment, and the realized surplus.
//
// Solve is a pure function of its inputs. It validates every curve first
// and never returns a partial assignment: the result has been re-checked
// by Verify, or an error is returned.
//
// Phases, separated by pool barriers:
//
//  1. Validate every bound curve (parallel).
//  2. Precompute all-pairs cheapest transport costs (parallel).
//  3. Push cheapest augmenting units until none has negative net cost
//     (sequential selection, parallel candidate refresh).
//  4. Extract prices, quote untraded components, verify, assemble.
//
// Disconnected networks are not an error; each component clears on its
// own curves.
//
// Complexity: O(U · (V + E) log V) for U cleared units, plus the
// all-pairs precompute.
func Solve(m *market.Market, opts ...Option) (*Result, error) {
	// 1) Resolve options against the defaults.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		return nil, ErrNilMarket
	}
	pool := parallel.NewPool(cfg.Workers)
	log := cfg.Logger.WithFields(logrus.Fields{
		"locations": len(m.Locations()),
		"workers":   pool.Workers(),
	})

	// 2) Validate-all phase: no flow work happens past a bad curve.
	if err := m.Validate(pool); err != nil {
		return nil, err
	}
	log.Debug("curves validated")

	// 3) All-pairs transport costs, used by price quoting and Verify.
	costs := m.Network().AllCheapestCosts(pool)
	log.Debug("transport costs precomputed")

	// 4) Build the residual model: ladders, arcs, potentials, candidates.
	md, err := newModel(m, pool, cfg.Logger)
	if err != nil {
		return nil, err
	}

	// 5) Augmenting loop: clear one unit per iteration while profitable.
	limit := md.maxUnits()
	var surplus int64
	units := 0
	for units < limit {
		dist, prev := md.cheapest()
		if dist[md.snk] == inf {
			break // no residual path joins remaining supply to demand
		}
		// True net cost of the unit; pi[src] is pinned at zero.
		net := dist[md.snk] + md.pi[md.snk]
		if net >= 0 {
			break // the cheapest remaining unit no longer pays for itself
		}
		md.reprice(dist)
		path := md.apply(prev)
		surplus -= net
		units++
		log.WithFields(logrus.Fields{
			"unit": units,
			"net":  net,
			"path": strings.Join(path, "→"),
		}).Debug("unit cleared")
	}

	// 6) Prices from the dual, quoting components that cleared nothing.
	prices := md.clearingPrices(costs, cfg.PriceFallback)

	// 7) Assemble and re-check before releasing anything to the caller.
	res := md.result(prices, surplus)
	if err := verify(m, res, costs); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"units":   units,
		"surplus": surplus,
		"flows":   len(res.Flows),
	}).Info("market cleared")

	return res, nil
}

// result maps the model state back onto location IDs.
func (md *model) result(prices []int64, surplus int64) *Result {
	res := &Result{
		Prices:   make(map[string]int64, len(md.ids)),
		Produced: make(map[string]int, len(md.ids)),
		Consumed: make(map[string]int, len(md.ids)),
		Surplus:  surplus,
	}
	for i, id := range md.ids {
		res.Prices[id] = prices[i]
		res.Produced[id] = md.su[i]
		res.Consumed[id] = md.du[i]
	}

	// Edges were built from Routes(), which is sorted by (From, To), so the
	// positive flows emerge already ordered.
	for _, e := range md.edges {
		if e.flow > 0 {
			res.Flows = append(res.Flows, Flow{
				From:  md.ids[e.from],
				To:    md.ids[e.to],
				Units: int(e.flow),
			})
		}
	}

	return res
}

// Package equilibrium computes market-clearing prices and goods flows over
// a transport network, given per-location supply and demand ladders. It is
// the solver the rest of the module exists to feed: curves and network in,
// one Result out, no state kept between invocations.
//
// # Model
//
// The market is posed as a minimum-cost flow problem on a virtual network:
//
//   - A virtual source feeds every location's supply ladder, one arc per
//     unit, priced at that unit's marginal cost.
//   - Every location's demand ladder feeds a virtual sink, one arc per
//     unit, priced at the negative of that unit's marginal value (consuming
//     a valued unit is a gain, hence a negative cost).
//   - Transport routes carry their stated per-unit cost and are
//     uncapacitated; residual reverse arcs undo earlier decisions at the
//     negated cost.
//
// A unit of goods travelling source → producer → … → consumer → sink has
// net cost (marginal cost + transport − marginal value). While that net
// cost is negative, society gains by clearing the unit.
//
// # Algorithm
//
// Successive cheapest augmenting paths, one unit at a time:
//
//  1. Validate every curve, in parallel, failing fast (no partial solves).
//  2. Precompute all-pairs cheapest transport costs, one Dijkstra per
//     source location, in parallel.
//  3. Repeatedly find the cheapest residual source→sink path and push one
//     unit along it, until the cheapest path no longer has negative net
//     cost or the sink is unreachable.
//
// Ladder marginals are monotone (supply non-decreasing, demand
// non-increasing), so the cheapest augmenting cost is non-decreasing
// across iterations and the greedy unit-by-unit schedule is exact.
//
// Johnson node potentials keep every residual reduced cost non-negative,
// so each iteration is a plain Dijkstra rather than Bellman–Ford. After a
// push, potentials move by min(dist, dist(sink)) and the per-location
// marginal-arc records are refreshed in the location-sharded candidate
// map, in parallel, touching only the locations the push affected.
//
// # Prices
//
// Clearing prices are the dual potentials relative to the virtual source.
// Along every traded route price(to) = price(from) + cost holds exactly;
// across every connected pair price(to) ≤ price(from) + cheapest cost.
// Locations in components that cleared nothing have no meaningful dual, so
// they are quoted from their component's ladders instead: nearest
// reachable first-unit demand value net of transport, else nearest supply
// cost plus transport, relaxed pairwise and floored at zero.
// WithoutPriceFallback disables the quoting for callers that only consume
// flows.
//
// # Determinism
//
// Locations are indexed in sorted ID order, path searches break ties by
// that order, and parallel phases write to disjoint slots. The result is
// identical for any worker count, including 1.
//
// Complexity, for U cleared units on V locations and E routes:
//
//	– Solve:  O(U · (V + E) log V) for the augmenting loop,
//	          plus O(V · (V + E) log V / workers) precompute.
//	– Verify: O(V² + E + total curve length).
//
// All quantities are int64 minor units; arithmetic is exact, and Verify
// re-checks conservation, no-arbitrage, bounds and surplus before Solve
// returns anything.
package equilibrium

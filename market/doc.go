// Package market binds supply and demand curves to the locations of a
// transport network, forming the complete input of an equilibrium solve.
//
// A Market holds one Network plus at most one supply curve and one demand
// curve per location. A location may carry both (it can produce and
// consume), either, or neither; setting a side again replaces the earlier
// curve. Bindings are rejected up front when the curve is nil, its Kind
// does not match the side being set, or the location is not part of the
// network.
//
// Validate runs every bound curve's own Validate across a worker pool and
// reports the first failure in deterministic order: ascending location ID,
// supply before demand within a location. Solvers call it before touching
// any flow so a malformed curve can never half-clear a market.
//
// A Market is safe for concurrent use; reads take a shared lock.
package market

// Package equiflow is an in-memory market equilibrium solver: feed it a
// network of locations linked by transport costs plus per-location supply
// and demand curves, and it computes the clearing price everywhere and the
// flow of goods that realizes it.
//
// 🚀 What is equiflow?
//
//	A thread-safe, deterministic library that brings together:
//		• Curves: per-unit marginal cost/value ladders, step or piecewise-linear
//		• Networks: directed transport routes with cheapest-path queries
//		• Equilibrium: a successive-shortest-path min-cost-flow solver with
//		  dual prices, surplus accounting and a built-in invariant verifier
//		• Parallel phases: curve validation, all-pairs path precomputation and
//		  candidate refresh across a fixed worker pool
//		• Scenarios: JSON input with exact decimal prices, CSV/text result export
//		• Simulation: multi-epoch re-solves under supply/demand shocks
//
// ✨ Why choose equiflow?
//
//   - Exact arithmetic – prices are int64 minor units end to end, never floats
//   - Rock-solid guarantees – every solve is re-verified for conservation and
//     no-arbitrage before it is returned
//   - Deterministic – identical results regardless of worker count or scheduling
//   - Extensible – polymorphic Curve abstraction, functional options throughout
//
// Under the hood, everything is organized under these subpackages:
//
//	curve/       — supply/demand marginal-price curves and transforms
//	network/     — locations, routes, Dijkstra cheapest paths, all-pairs costs
//	market/      — curves bound to network locations, batch validation
//	equilibrium/ — the min-cost-flow solver, prices, surplus, Verify
//	parallel/    — fixed worker pool and location-sharded concurrent map
//	scenario/    — JSON scenario load/save and result writers
//	simulate/    — shock schedules, epochs, price history
//	cmd/equiflow — command-line entry point (solve, simulate, check)
//
// Quick ASCII example:
//
//	    A ──1── B
//	 supply    demand
//	 [1,2]     [5,4]
//
//	ships two units A→B and clears at price(A)=2, price(B)=3.
//
// Dive into the per-package docs for contracts, complexity and error
// semantics.
//
//	go get github.com/katalvlaran/equiflow
package equiflow

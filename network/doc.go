// Package network models the transport side of a market: locations joined
// by directed routes, each route carrying a non-negative per-unit cost.
//
// The graph is deliberately small in surface: locations are opaque string
// IDs, routes are added one ordered pair at a time (WithSymmetricCosts
// mirrors each route), and the graph need not be complete or connected.
// A duplicate route keeps the cheaper cost.
//
// Beyond direct lookups the package answers the question the market model
// actually depends on: the true delivered cost between two locations,
// which is the cheapest path over any route sequence, not necessarily a
// direct edge. CheapestPath computes one pair with the route sequence;
// AllCheapestCosts computes the full matrix, one Dijkstra per source,
// distributed across a worker pool.
//
// # Determinism
//
// All iteration is in sorted location-ID order; relaxation keeps the first
// discovered path on cost ties; the all-pairs matrix is identical whatever
// the pool size. Two runs over the same network always produce the same
// paths and costs.
//
// # Concurrency
//
// A Network is safe for concurrent use through an internal RWMutex. Path
// queries snapshot the adjacency under a read lock and then run lock-free,
// so a long all-pairs computation never blocks readers.
//
// Complexity:
//
//	– CheapestPath:     O((V + E) log V) time, O(V + E) space.
//	– AllCheapestCosts: O(V · (V + E) log V) total, divided by pool workers.
//
// # Errors
//
//	ErrEmptyLocationID  - location ID is the empty string.
//	ErrLocationNotFound - operation referenced an unknown location.
//	ErrSelfRoute        - route endpoints must differ.
//	ErrNegativeCost     - transport costs must be non-negative.
//	ErrNoDirectEdge     - DirectCost found no route for the ordered pair.
//	ErrNoPath           - CheapestPath found no connecting route sequence.
package network

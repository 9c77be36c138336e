// Package network defines the Network type, its sentinel errors,
// construction options, and the Route/Path value types.
package network

import (
	"errors"
	"sync"
)

// Sentinel errors for network construction and queries.
var (
	// ErrEmptyLocationID indicates a location ID that is the empty string.
	ErrEmptyLocationID = errors.New("network: location ID is empty")

	// ErrLocationNotFound indicates an operation referenced an unknown location.
	ErrLocationNotFound = errors.New("network: location not found")

	// ErrSelfRoute indicates a route whose origin equals its destination.
	ErrSelfRoute = errors.New("network: route endpoints must differ")

	// ErrNegativeCost indicates a route with a negative per-unit cost.
	ErrNegativeCost = errors.New("network: transport cost must be non-negative")

	// ErrNoDirectEdge indicates that no direct route exists for an ordered pair.
	ErrNoDirectEdge = errors.New("network: no direct route between locations")

	// ErrNoPath indicates that no route sequence connects two locations.
	ErrNoPath = errors.New("network: no path between locations")
)

// Route is one directed transport link with its per-unit cost.
type Route struct {
	// From is the origin location ID.
	From string

	// To is the destination location ID.
	To string

	// Cost is the non-negative per-unit transport cost, in minor units.
	Cost int64
}

// Path is the result of a cheapest-path query: the location sequence from
// origin to destination inclusive, and the summed cost along it.
// For a query from a location to itself, Locations holds that single
// location and Cost is zero.
type Path struct {
	Locations []string
	Cost      int64
}

// Option configures a Network before use.
type Option func(*Network)

// WithSymmetricCosts mirrors every added route: AddRoute(a, b, c) also
// records the reverse route b→a at the same cost.
func WithSymmetricCosts() Option {
	return func(n *Network) { n.symmetric = true }
}

// Network is the in-memory transport graph.
//
// Directed by default: cost(A→B) need not equal cost(B→A), and either may
// be absent. All mutation and queries are guarded by an RWMutex, so one
// Network can be shared across solver workers.
type Network struct {
	mu sync.RWMutex

	symmetric bool

	// locations holds every known location ID.
	locations map[string]struct{}

	// routes[from][to] is the cheapest direct cost recorded for the pair.
	routes map[string]map[string]int64
}

// New creates an empty Network with the given options.
// Complexity: O(1).
func New(opts ...Option) *Network {
	n := &Network{
		locations: make(map[string]struct{}),
		routes:    make(map[string]map[string]int64),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

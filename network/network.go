package network

import (
	"fmt"
	"sort"
)

// AddLocation registers a location ID. Adding an existing location is a
// no-op, so loaders can be naive about duplicates.
// Complexity: O(1).
func (n *Network) AddLocation(id string) error {
	if id == "" {
		return ErrEmptyLocationID
	}

	n.mu.Lock()
	n.locations[id] = struct{}{}
	n.mu.Unlock()

	return nil
}

// AddRoute records a directed route from→to at the given per-unit cost.
// Both endpoints must already exist; routes never create locations, so a
// typo in a scenario surfaces here instead of growing the graph. If the
// pair already has a route, the cheaper cost wins. Under
// WithSymmetricCosts the mirrored route is recorded too.
// Complexity: O(1).
func (n *Network) AddRoute(from, to string, cost int64) error {
	// 1) Validate shape before touching state.
	if from == "" || to == "" {
		return ErrEmptyLocationID
	}
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfRoute, from)
	}
	if cost < 0 {
		return fmt.Errorf("%w: %s→%s cost=%d", ErrNegativeCost, from, to, cost)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// 2) Both endpoints must be declared locations.
	if _, ok := n.locations[from]; !ok {
		return fmt.Errorf("%w: %q", ErrLocationNotFound, from)
	}
	if _, ok := n.locations[to]; !ok {
		return fmt.Errorf("%w: %q", ErrLocationNotFound, to)
	}

	// 3) Record, keeping the cheaper cost on duplicates.
	n.addCheapest(from, to, cost)
	if n.symmetric {
		n.addCheapest(to, from, cost)
	}

	return nil
}

// addCheapest stores cost for from→to unless a cheaper one is present.
// Caller holds the write lock.
func (n *Network) addCheapest(from, to string, cost int64) {
	inner, ok := n.routes[from]
	if !ok {
		inner = make(map[string]int64)
		n.routes[from] = inner
	}
	if existing, dup := inner[to]; !dup || cost < existing {
		inner[to] = cost
	}
}

// Has reports whether the location is known.
func (n *Network) Has(id string) bool {
	n.mu.RLock()
	_, ok := n.locations[id]
	n.mu.RUnlock()

	return ok
}

// Locations returns all location IDs in sorted order.
// Complexity: O(V log V).
func (n *Network) Locations() []string {
	n.mu.RLock()
	ids := make([]string, 0, len(n.locations))
	for id := range n.locations {
		ids = append(ids, id)
	}
	n.mu.RUnlock()
	sort.Strings(ids)

	return ids
}

// DirectCost returns the recorded cost of the direct route from→to.
// It fails with ErrNoDirectEdge when the ordered pair has no route; the
// locations themselves must exist.
// Complexity: O(1).
func (n *Network) DirectCost(from, to string) (int64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, ok := n.locations[from]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, from)
	}
	if _, ok := n.locations[to]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, to)
	}
	cost, ok := n.routes[from][to]
	if !ok {
		return 0, fmt.Errorf("%w: %s→%s", ErrNoDirectEdge, from, to)
	}

	return cost, nil
}

// RoutesFrom returns the outgoing routes of a location, sorted by
// destination ID.
// Complexity: O(deg log deg).
func (n *Network) RoutesFrom(id string) ([]Route, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, ok := n.locations[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, id)
	}

	out := make([]Route, 0, len(n.routes[id]))
	for to, cost := range n.routes[id] {
		out = append(out, Route{From: id, To: to, Cost: cost})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out, nil
}

// Routes returns every route in the network, sorted by origin then
// destination. Route printers and scenario writers iterate this.
// Complexity: O(E log E).
func (n *Network) Routes() []Route {
	n.mu.RLock()
	out := make([]Route, 0, len(n.routes))
	for from, inner := range n.routes {
		for to, cost := range inner {
			out = append(out, Route{From: from, To: to, Cost: cost})
		}
	}
	n.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

package market

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/network"
	"github.com/katalvlaran/equiflow/parallel"
)

var (
	// ErrNilNetwork indicates a Market constructed without a network.
	ErrNilNetwork = errors.New("market: network must not be nil")

	// ErrKindMismatch indicates a curve bound to the wrong side: a demand
	// curve passed to SetSupply or a supply curve passed to SetDemand.
	ErrKindMismatch = errors.New("market: curve kind does not match side")
)

// Market is a transport network with per-location supply and demand curves.
// The zero value is not usable; construct with New.
type Market struct {
	mu       sync.RWMutex
	net      *network.Network
	supplies map[string]curve.Curve
	demands  map[string]curve.Curve
}

// New returns an empty Market over the given network.
func New(net *network.Network) (*Market, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}

	return &Market{
		net:      net,
		supplies: make(map[string]curve.Curve),
		demands:  make(map[string]curve.Curve),
	}, nil
}

// Network returns the underlying transport network.
func (m *Market) Network() *network.Network { return m.net }

// SetSupply binds c as the supply curve of location id, replacing any
// earlier supply binding. The curve must be non-nil, of Kind Supply, and
// id must exist in the network.
func (m *Market) SetSupply(id string, c curve.Curve) error {
	return m.bind(id, c, curve.Supply)
}

// SetDemand binds c as the demand curve of location id, replacing any
// earlier demand binding. The curve must be non-nil, of Kind Demand, and
// id must exist in the network.
func (m *Market) SetDemand(id string, c curve.Curve) error {
	return m.bind(id, c, curve.Demand)
}

// bind is the shared guts of SetSupply and SetDemand.
func (m *Market) bind(id string, c curve.Curve, side curve.Kind) error {
	// 1) Curve checks first: they need no lock.
	if c == nil {
		return fmt.Errorf("%w: %s for %q", curve.ErrNilCurve, side, id)
	}
	if c.Kind() != side {
		return fmt.Errorf("%w: got %s, want %s for %q", ErrKindMismatch, c.Kind(), side, id)
	}

	// 2) The location must already exist; bindings never mint locations.
	if !m.net.Has(id) {
		return fmt.Errorf("%w: %q", network.ErrLocationNotFound, id)
	}

	// 3) Store under the write lock.
	m.mu.Lock()
	defer m.mu.Unlock()
	if side == curve.Supply {
		m.supplies[id] = c
	} else {
		m.demands[id] = c
	}

	return nil
}

// Supply returns the supply curve bound to id, if any.
func (m *Market) Supply(id string) (curve.Curve, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.supplies[id]

	return c, ok
}

// Demand returns the demand curve bound to id, if any.
func (m *Market) Demand(id string) (curve.Curve, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.demands[id]

	return c, ok
}

// Locations returns every network location in ascending ID order, bound
// or not.
func (m *Market) Locations() []string { return m.net.Locations() }

// SupplyLocations returns the IDs carrying a supply curve, sorted.
func (m *Market) SupplyLocations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedKeys(m.supplies)
}

// DemandLocations returns the IDs carrying a demand curve, sorted.
func (m *Market) DemandLocations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedKeys(m.demands)
}

func sortedKeys(curves map[string]curve.Curve) []string {
	ids := make([]string, 0, len(curves))
	for id := range curves {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// binding is one (location, side, curve) triple in validation order.
type binding struct {
	id   string
	side curve.Kind
	c    curve.Curve
}

// bindings snapshots all curve bindings sorted by (location ID, side),
// supply before demand within a location.
func (m *Market) bindings() []binding {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]binding, 0, len(m.supplies)+len(m.demands))
	ids := make([]string, 0, len(m.supplies)+len(m.demands))
	seen := make(map[string]struct{}, len(m.supplies))
	for id := range m.supplies {
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	for id := range m.demands {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if c, ok := m.supplies[id]; ok {
			out = append(out, binding{id: id, side: curve.Supply, c: c})
		}
		if c, ok := m.demands[id]; ok {
			out = append(out, binding{id: id, side: curve.Demand, c: c})
		}
	}

	return out
}

// Validate checks every bound curve, fanning the checks across p (nil p
// runs serially). The result is deterministic whatever the pool size: the
// first failure by (location ID, side) order is returned, wrapped with the
// location and side it belongs to.
//
// Complexity: O(total curve length) work, divided across the pool.
func (m *Market) Validate(p *parallel.Pool) error {
	all := m.bindings()
	if len(all) == 0 {
		return nil
	}

	// 1) Fan out: each task writes only its own slot.
	errs := make([]error, len(all))
	check := func(i int) {
		if err := all[i].c.Validate(); err != nil {
			errs[i] = fmt.Errorf("%s %s: %w", all[i].id, all[i].side, err)
		}
	}
	if p == nil {
		for i := range all {
			check(i)
		}
	} else {
		p.ForEach(len(all), check)
	}

	// 2) First failure in binding order wins, every run.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

package equilibrium

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/parallel"
)

// inf marks an unreachable node during path search.
const inf = int64(math.MaxInt64)

// Residual arc kinds, recorded per reached node so a push can be applied
// by walking predecessors back from the sink.
const (
	arcNone      uint8 = iota
	arcProduce         // source → location: clear the next supply rung
	arcUnproduce       // location → source: undo the last cleared supply rung
	arcConsume         // location → sink: clear the next demand rung
	arcUnconsume       // sink → location: undo the last cleared demand rung
	arcMove            // transport route, forward
	arcMoveBack        // transport route, residual reverse
)

// arcRef records which residual arc the search used to reach a node.
type arcRef struct {
	from int32 // predecessor node index
	edge int32 // transport edge index, arcMove/arcMoveBack only
	kind uint8
}

// tarc is one transport route in the flow model. Routes are uncapacitated;
// flow counts the units currently shipped along the route.
type tarc struct {
	from, to int
	cost     int64
	flow     int64
}

// rung is one location's candidate record: its marginal ladder arcs under
// the current cursors. Records live in the location-sharded map and are
// refreshed, in parallel, only for the locations a push affected.
type rung struct {
	produce   int64 // cost of the next supply unit
	unproduce int64 // cost refunded by undoing the last supply unit
	consume   int64 // value of the next demand unit
	unconsume int64 // value returned by undoing the last demand unit

	canProduce   bool
	canUnproduce bool
	canConsume   bool
	canUnconsume bool
}

// model is the indexed residual network of one solve. Locations occupy
// indices [0, L) in sorted-ID order; the virtual source and sink follow.
type model struct {
	ids []string
	idx map[string]int
	src int
	snk int

	sup [][]int64 // materialized supply ladders, nil when absent
	dem [][]int64 // materialized demand ladders, nil when absent
	su  []int     // units produced so far, per location
	du  []int     // units consumed so far, per location

	edges []tarc
	out   [][]int32 // outgoing transport edges per location, sorted by destination
	in    [][]int32 // incoming transport edges per location, sorted by origin

	pi []int64 // Johnson node potentials; pi[src] stays 0

	cand *parallel.ShardedMap
	pool *parallel.Pool
	log  logrus.FieldLogger
}

// newModel indexes the market, materializes every ladder across the pool,
// and seeds potentials and candidate records.
func newModel(m *market.Market, pool *parallel.Pool, log logrus.FieldLogger) (*model, error) {
	// 1) Index locations; sorted order fixes the deterministic tie-break.
	ids := m.Locations()
	md := &model{
		ids:  ids,
		idx:  make(map[string]int, len(ids)),
		src:  len(ids),
		snk:  len(ids) + 1,
		sup:  make([][]int64, len(ids)),
		dem:  make([][]int64, len(ids)),
		su:   make([]int, len(ids)),
		du:   make([]int, len(ids)),
		out:  make([][]int32, len(ids)),
		in:   make([][]int32, len(ids)),
		pi:   make([]int64, len(ids)+2),
		pool: pool,
		log:  log,
	}
	for i, id := range ids {
		md.idx[id] = i
	}

	// 2) Materialize ladders in parallel; each index writes only its slots.
	errs := make([]error, len(ids))
	pool.ForEach(len(ids), func(i int) {
		if c, ok := m.Supply(ids[i]); ok {
			vals, err := curve.Values(c)
			if err != nil {
				errs[i] = fmt.Errorf("%s supply: %w", ids[i], err)

				return
			}
			md.sup[i] = vals
		}
		if c, ok := m.Demand(ids[i]); ok {
			vals, err := curve.Values(c)
			if err != nil {
				errs[i] = fmt.Errorf("%s demand: %w", ids[i], err)

				return
			}
			md.dem[i] = vals
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// 3) Transport arcs. Routes() is sorted by (From, To), so appending in
	//    order leaves out[] sorted by destination and in[] by origin.
	routes := m.Network().Routes()
	md.edges = make([]tarc, 0, len(routes))
	for _, r := range routes {
		f, t := md.idx[r.From], md.idx[r.To]
		md.edges = append(md.edges, tarc{from: f, to: t, cost: r.Cost})
		ei := int32(len(md.edges) - 1)
		md.out[f] = append(md.out[f], ei)
		md.in[t] = append(md.in[t], ei)
	}

	// 4) Initial potentials: zero everywhere except the sink, which starts
	//    at minus the best first-unit demand value so that every demand arc
	//    −value + pi(loc) − pi(snk) is non-negative from the first search.
	best := int64(0)
	for i := range ids {
		if md.dem[i] != nil && md.dem[i][0] > best {
			best = md.dem[i][0]
		}
	}
	md.pi[md.snk] = -best

	// 5) Seed the candidate records for every curve-bearing location.
	md.cand = parallel.NewShardedMap(pool.Workers())
	seed := make([]string, 0, len(ids))
	for i, id := range ids {
		if md.sup[i] != nil || md.dem[i] != nil {
			seed = append(seed, id)
		}
	}
	md.cand.Apply(pool, seed, md.refresh)

	return md, nil
}

// refresh recomputes the candidate record of one location from its cursors.
// Callers route refreshes through cand.Apply, which serializes all updates
// landing in one shard.
func (md *model) refresh(id string) {
	i := md.idx[id]
	r := &rung{}
	if sup := md.sup[i]; sup != nil {
		if md.su[i] < len(sup) {
			r.canProduce = true
			r.produce = sup[md.su[i]]
		}
		if md.su[i] > 0 {
			r.canUnproduce = true
			r.unproduce = sup[md.su[i]-1]
		}
	}
	if dem := md.dem[i]; dem != nil {
		if md.du[i] < len(dem) {
			r.canConsume = true
			r.consume = dem[md.du[i]]
		}
		if md.du[i] > 0 {
			r.canUnconsume = true
			r.unconsume = dem[md.du[i]-1]
		}
	}
	md.cand.Set(id, r)
}

// rungAt reads location i's candidate record; locations with no curves
// yield the zero record (no ladder arcs).
func (md *model) rungAt(i int) rung {
	v, ok := md.cand.Get(md.ids[i])
	if !ok {
		return rung{}
	}

	return *v.(*rung)
}

// maxUnits bounds the augmenting loop: no assignment can clear more units
// than the shorter side of the market offers.
func (md *model) maxUnits() int {
	totS, totD := 0, 0
	for i := range md.ids {
		totS += len(md.sup[i])
		totD += len(md.dem[i])
	}
	if totS < totD {
		return totS
	}

	return totD
}

// apply pushes one unit along the path recorded in prev, flipping each
// residual arc, and refreshes the candidate records of every location
// whose ladder cursor moved. It returns the forward node sequence for
// tracing.
func (md *model) apply(prev []arcRef) []string {
	// 1) Walk sink → source, mutating cursors and transport flows.
	touched := make(map[int]struct{}, 4)
	var nodes []int
	for cur := md.snk; cur != md.src; {
		ar := prev[cur]
		switch ar.kind {
		case arcProduce:
			md.su[cur]++
			touched[cur] = struct{}{}
		case arcUnproduce:
			loc := int(ar.from)
			md.su[loc]--
			touched[loc] = struct{}{}
		case arcConsume:
			loc := int(ar.from)
			md.du[loc]++
			touched[loc] = struct{}{}
		case arcUnconsume:
			md.du[cur]--
			touched[cur] = struct{}{}
		case arcMove:
			md.edges[ar.edge].flow++
		case arcMoveBack:
			md.edges[ar.edge].flow--
		}
		nodes = append(nodes, cur)
		cur = int(ar.from)
	}
	nodes = append(nodes, md.src)

	// 2) Refresh affected records in deterministic order across the pool.
	locs := make([]string, 0, len(touched))
	for i := range touched {
		locs = append(locs, md.ids[i])
	}
	sort.Strings(locs)
	md.cand.Apply(md.pool, locs, md.refresh)

	// 3) Reverse into forward order and label the virtual endpoints.
	labels := make([]string, len(nodes))
	for k := range nodes {
		labels[len(nodes)-1-k] = md.label(nodes[k])
	}

	return labels
}

func (md *model) label(node int) string {
	switch node {
	case md.src:
		return "source"
	case md.snk:
		return "sink"
	default:
		return md.ids[node]
	}
}

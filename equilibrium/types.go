package equilibrium

import (
	"errors"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by Solve and Verify.
var (
	// ErrNilMarket indicates a nil *market.Market passed to Solve or Verify.
	ErrNilMarket = errors.New("equilibrium: market is nil")

	// ErrNilResult indicates a nil *Result passed to Verify.
	ErrNilResult = errors.New("equilibrium: result is nil")

	// ErrBadWorkers indicates a negative worker count in WithWorkers.
	ErrBadWorkers = errors.New("equilibrium: worker count must be non-negative")

	// ErrUnbalanced indicates a flow assignment that violates conservation:
	// some location's produced + received differs from consumed + shipped.
	ErrUnbalanced = errors.New("equilibrium: flow conservation violated")

	// ErrArbitrage indicates prices that leave a profitable route: either a
	// traded route whose endpoints' prices do not differ by exactly its
	// cost, or a pair whose price gap exceeds the cheapest transport cost.
	ErrArbitrage = errors.New("equilibrium: no-arbitrage violated")

	// ErrBadQuantity indicates a produced, consumed or shipped quantity
	// outside its permitted bounds (negative, or beyond the curve length).
	ErrBadQuantity = errors.New("equilibrium: quantity outside curve bounds")

	// ErrBadSurplus indicates a Result whose Surplus does not equal the
	// recomputed consumer value minus producer cost minus transport spend.
	ErrBadSurplus = errors.New("equilibrium: surplus does not match assignment")

	// ErrBadPrice indicates a missing or negative clearing price.
	ErrBadPrice = errors.New("equilibrium: price missing or negative")
)

// Options configures a single Solve invocation.
//
// Workers       – pool size for the parallel phases; 0 selects GOMAXPROCS.
// Logger        – structured logger for phase and per-unit tracing;
//                 nil logs nothing.
// PriceFallback – quote prices for locations in components that cleared
//                 no units (default true).
type Options struct {
	Workers       int
	Logger        logrus.FieldLogger
	PriceFallback bool
}

// Option is a functional option for configuring Solve.
type Option func(*Options)

// WithWorkers fixes the worker-pool size for the parallel phases.
// Zero selects runtime.GOMAXPROCS; negative values panic with
// ErrBadWorkers. The solve outcome is identical for any size.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// WithLogger routes phase summaries (Info) and per-unit augmentation
// traces (Debug) to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithoutPriceFallback leaves locations that cleared nothing at their raw
// dual potential instead of quoting them from their component's ladders.
// Flows, quantities and surplus are unaffected.
func WithoutPriceFallback() Option {
	return func(o *Options) {
		o.PriceFallback = false
	}
}

// DefaultOptions returns the production defaults: GOMAXPROCS workers, no
// logging, price fallback enabled.
func DefaultOptions() Options {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return Options{
		Workers:       0,
		Logger:        silent,
		PriceFallback: true,
	}
}

// Flow is one traded route of the assignment: Units goods shipped from
// From to To over the direct route between them.
type Flow struct {
	From  string
	To    string
	Units int
}

// Result is the complete equilibrium: per-location clearing prices and
// quantities, the flow assignment, and the realized surplus.
//
// Prices, Produced and Consumed carry an entry for every network location.
// Flows lists only routes that actually shipped goods, sorted by
// (From, To). Surplus is total consumer value minus producer cost minus
// transport spend, in the same minor units as the curves.
type Result struct {
	Prices   map[string]int64
	Produced map[string]int
	Consumed map[string]int
	Flows    []Flow
	Surplus  int64
}

// TradedUnits reports how many units location id cleared on either side:
// units produced plus units consumed.
func (r *Result) TradedUnits(id string) int {
	return r.Produced[id] + r.Consumed[id]
}

// Units reports the total number of units cleared market-wide.
func (r *Result) Units() int {
	total := 0
	for _, q := range r.Produced {
		total += q
	}

	return total
}

// Locations returns every location of the result in ascending ID order.
func (r *Result) Locations() []string {
	ids := make([]string, 0, len(r.Prices))
	for id := range r.Prices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

package simulate

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/scenario"
)

var (
	// ErrNilMarket reports a session built without a market.
	ErrNilMarket = errors.New("simulate: market is nil")

	// ErrBadWorkers reports a negative worker count.
	ErrBadWorkers = errors.New("simulate: worker count must be non-negative")

	// ErrBadEpochs reports a non-positive epoch count.
	ErrBadEpochs = errors.New("simulate: epoch count must be positive")

	// ErrBadEpoch reports a shock scheduled outside the run's epochs.
	ErrBadEpoch = errors.New("simulate: shock epoch outside the run")

	// ErrBadSide reports a shock side that is neither supply nor demand.
	ErrBadSide = errors.New("simulate: shock side must be supply or demand")

	// ErrNoCurve reports a shift against a location with no ladder bound
	// on the shocked side.
	ErrNoCurve = errors.New("simulate: no curve bound on the shocked side")
)

// Shock is one scheduled change to a location's ladder. PriceDelta moves
// every rung by the same amount; AddUnits appends rungs at the top. On a
// location with no ladder on that side, AddUnits founds one and
// PriceDelta must be zero.
type Shock struct {
	// Epoch the shock applies before, 1-based.
	Epoch int

	// Location whose ladder changes.
	Location string

	// Side selects the supply or demand ladder.
	Side curve.Kind

	// PriceDelta shifts every rung, in minor units. May be negative.
	PriceDelta int64

	// AddUnits appends rungs priced in minor units.
	AddUnits []int64
}

// History is the record of one Run: the price of every location after
// each epoch, and each epoch's total surplus.
type History struct {
	// SessionID is the uuid of the session that produced the history.
	SessionID string

	// Locations lists the market's locations in ascending ID order;
	// price rows follow this order.
	Locations []string

	// Epochs[e][i] is the clearing price of Locations[i] after epoch e+1.
	Epochs [][]int64

	// Surplus[e] is the total surplus of epoch e+1.
	Surplus []int64
}

// WriteCSV exports the history, one row per epoch, prices formatted at
// the given scale.
func (h *History) WriteCSV(w io.Writer, scale int32) error {
	return scenario.WriteHistoryCSV(w, h.Locations, h.Epochs, scale)
}

// Options configure a Session.
type Options struct {
	// Workers caps solver parallelism; 0 means one worker per CPU.
	Workers int

	// Logger receives session and epoch progress. Never nil.
	Logger logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers fixes the solver worker count. n must be non-negative.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// WithLogger installs a logrus logger for session progress. A nil
// logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns the baseline: CPU-bound workers, discarded logs.
func DefaultOptions() Options {
	base := logrus.New()
	base.SetOutput(io.Discard)

	return Options{Workers: 0, Logger: base}
}

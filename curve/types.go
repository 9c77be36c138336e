// Package curve defines the Kind enum, the Curve interface, sentinel
// errors, and the Values materialization helper shared by both ladder
// representations.
package curve

import (
	"errors"
	"fmt"
)

// Sentinel errors for curve construction, access and validation.
var (
	// ErrBadKind indicates a Kind value that is neither Supply nor Demand.
	ErrBadKind = errors.New("curve: unknown curve kind")

	// ErrEmptyCurve indicates a curve with no unit prices at all.
	ErrEmptyCurve = errors.New("curve: curve must price at least one unit")

	// ErrBadBreakpoints indicates breakpoints that do not start at quantity 1
	// or whose quantities are not strictly increasing.
	ErrBadBreakpoints = errors.New("curve: breakpoints must start at quantity 1 and strictly increase")

	// ErrOutOfRange indicates a quantity below 1 or beyond the curve's length.
	ErrOutOfRange = errors.New("curve: quantity outside the curve's unit range")

	// ErrNegativePrice indicates a unit price below zero.
	ErrNegativePrice = errors.New("curve: unit prices must be non-negative")

	// ErrNonMonotonic indicates a ladder that violates the ordering required
	// for its kind: supply non-decreasing, demand non-increasing.
	ErrNonMonotonic = errors.New("curve: unit prices violate required monotonic ordering")

	// ErrNilCurve indicates a nil Curve passed where a curve is required.
	ErrNilCurve = errors.New("curve: curve is nil")

	// ErrUnsupportedCurve indicates a Curve implementation this package does
	// not know how to transform.
	ErrUnsupportedCurve = errors.New("curve: unsupported curve implementation")
)

// Kind distinguishes supply ladders from demand ladders.
type Kind uint8

const (
	// Supply marks a curve of marginal production costs (non-decreasing).
	Supply Kind = iota

	// Demand marks a curve of marginal consumption values (non-increasing).
	Demand
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Supply:
		return "supply"
	case Demand:
		return "demand"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// valid reports whether k is one of the two known kinds.
func (k Kind) valid() bool { return k == Supply || k == Demand }

// Curve is the read-only ladder abstraction the solver depends on.
//
// Kind     – supply or demand, fixing the monotonicity direction.
// Len      – number of units the ladder prices.
// ValueAt  – marginal price/value of the q-th unit, 1-based.
// Validate – full invariant check (ordering, non-negative prices).
type Curve interface {
	Kind() Kind
	Len() int
	ValueAt(q int) (int64, error)
	Validate() error
}

// Values materializes c into one price per unit, index 0 holding unit 1.
// The solver uses this to walk ladders without per-unit error handling.
// Complexity: O(Len).
func Values(c Curve) ([]int64, error) {
	if c == nil {
		return nil, ErrNilCurve
	}
	out := make([]int64, c.Len())
	for q := 1; q <= c.Len(); q++ {
		v, err := c.ValueAt(q)
		if err != nil {
			return nil, err
		}
		out[q-1] = v
	}

	return out, nil
}

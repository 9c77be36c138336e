// Package curve models per-location supply and demand as ladders of unit
// prices: price[q] is the marginal cost of producing the q-th unit (supply)
// or the marginal value of consuming the q-th unit (demand).
//
// Two representations implement the polymorphic Curve abstraction:
//
//   - StepCurve: one explicit price per unit, the piecewise-constant
//     model. ValueAt is O(1), Validate O(N) over the units.
//   - PiecewiseLinearCurve: sparse breakpoints with integer interpolation
//     between them, for long ladders that a dense array would waste.
//     ValueAt is O(log B) over B breakpoints, Validate O(B).
//
// # Contract
//
// Quantities are 1-based. ValueAt(q) fails with ErrOutOfRange outside
// [1, Len]. Validate enforces the model invariants: supply ladders must be
// non-decreasing and demand ladders non-increasing (ErrNonMonotonic), and
// no unit price may be negative (ErrNegativePrice). Curves are immutable
// after construction; constructors copy their inputs.
//
// Prices are int64 minor units throughout. The package never touches
// floating point, so downstream conservation and no-arbitrage checks stay
// exact.
//
// Derived curves come from Shifted (move every unit price by a delta) and
// Extended (append rungs to a step ladder); both re-validate the result.
//
// # Errors
//
//	ErrBadKind          - kind is neither Supply nor Demand.
//	ErrEmptyCurve       - a curve must price at least one unit.
//	ErrBadBreakpoints   - breakpoints must start at quantity 1 and strictly increase.
//	ErrOutOfRange       - quantity outside [1, Len].
//	ErrNegativePrice    - a unit price below zero.
//	ErrNonMonotonic     - ladder ordering violated for the curve's kind.
//	ErrNilCurve         - nil Curve passed to a package helper.
//	ErrUnsupportedCurve - transform applied to a foreign Curve implementation.
package curve

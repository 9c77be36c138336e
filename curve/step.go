package curve

import "fmt"

// StepCurve is the dense ladder representation: one explicit price per
// unit. It is the basic model every scenario can use.
type StepCurve struct {
	kind   Kind
	prices []int64 // prices[i] is the marginal price of unit i+1
}

// NewStepCurve builds a StepCurve of the given kind from per-unit prices.
// The slice is copied; the curve never observes later mutation of it.
// Monotonicity and sign are checked by Validate, not here, so loaders can
// construct first and batch-validate later.
// Complexity: O(N).
func NewStepCurve(kind Kind, prices []int64) (*StepCurve, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, kind)
	}
	if len(prices) == 0 {
		return nil, ErrEmptyCurve
	}
	cp := make([]int64, len(prices))
	copy(cp, prices)

	return &StepCurve{kind: kind, prices: cp}, nil
}

// Kind returns the ladder's kind.
func (c *StepCurve) Kind() Kind { return c.kind }

// Len returns the number of units the ladder prices.
func (c *StepCurve) Len() int { return len(c.prices) }

// ValueAt returns the marginal price of the q-th unit (1-based).
// Complexity: O(1).
func (c *StepCurve) ValueAt(q int) (int64, error) {
	if q < 1 || q > len(c.prices) {
		return 0, fmt.Errorf("%w: quantity %d of %d units", ErrOutOfRange, q, len(c.prices))
	}

	return c.prices[q-1], nil
}

// Validate checks every unit price: non-negative, and ordered for the
// curve's kind (supply non-decreasing, demand non-increasing).
// Complexity: O(N).
func (c *StepCurve) Validate() error {
	var prev int64
	for i, p := range c.prices {
		if p < 0 {
			return fmt.Errorf("%w: unit %d priced %d", ErrNegativePrice, i+1, p)
		}
		if i > 0 {
			if c.kind == Supply && p < prev {
				return fmt.Errorf("%w: supply cost falls from %d to %d at unit %d", ErrNonMonotonic, prev, p, i+1)
			}
			if c.kind == Demand && p > prev {
				return fmt.Errorf("%w: demand value rises from %d to %d at unit %d", ErrNonMonotonic, prev, p, i+1)
			}
		}
		prev = p
	}

	return nil
}

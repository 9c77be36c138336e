package curve

import "fmt"

// Shifted returns a copy of c with every unit price moved by delta.
// Price shocks in simulations are expressed this way: a positive delta on
// supply models costlier production, a negative delta on demand models
// cooling interest. The derived curve is re-validated, so a shift that
// would push any unit price below zero is rejected with ErrNegativePrice.
// Complexity: O(N) for step ladders, O(B) for piecewise ladders.
func Shifted(c Curve, delta int64) (Curve, error) {
	switch cv := c.(type) {
	case *StepCurve:
		prices := make([]int64, len(cv.prices))
		for i, p := range cv.prices {
			prices[i] = p + delta
		}
		out := &StepCurve{kind: cv.kind, prices: prices}
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("shift by %d: %w", delta, err)
		}

		return out, nil

	case *PiecewiseLinearCurve:
		points := make([]Breakpoint, len(cv.points))
		for i, bp := range cv.points {
			points[i] = Breakpoint{Quantity: bp.Quantity, Price: bp.Price + delta}
		}
		out := &PiecewiseLinearCurve{kind: cv.kind, points: points}
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("shift by %d: %w", delta, err)
		}

		return out, nil

	case nil:
		return nil, ErrNilCurve

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedCurve, c)
	}
}

// Extended returns a copy of c with extra unit prices appended at the top
// of the ladder, modeling added capacity (supply) or appetite (demand).
// Only step ladders support appending; the result is re-validated, so
// rungs that break the kind's ordering are rejected with ErrNonMonotonic.
// Complexity: O(N + len(prices)).
func Extended(c Curve, prices ...int64) (Curve, error) {
	step, ok := c.(*StepCurve)
	if !ok {
		if c == nil {
			return nil, ErrNilCurve
		}

		return nil, fmt.Errorf("%w: %T", ErrUnsupportedCurve, c)
	}

	merged := make([]int64, 0, len(step.prices)+len(prices))
	merged = append(merged, step.prices...)
	merged = append(merged, prices...)
	out := &StepCurve{kind: step.kind, prices: merged}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("extend by %d units: %w", len(prices), err)
	}

	return out, nil
}

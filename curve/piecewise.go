package curve

import (
	"fmt"
	"sort"
)

// Breakpoint anchors a PiecewiseLinearCurve: the exact unit price at a
// given 1-based quantity. Units between breakpoints take the integer
// interpolation of the surrounding pair.
type Breakpoint struct {
	Quantity int   // 1-based unit index, strictly increasing across points
	Price    int64 // exact price of that unit, in minor units
}

// PiecewiseLinearCurve is the sparse ladder representation: breakpoints
// plus linear interpolation. A ladder of a million units with three price
// plateaus costs three breakpoints instead of a million entries.
type PiecewiseLinearCurve struct {
	kind   Kind
	points []Breakpoint
}

// NewPiecewiseLinearCurve builds a curve of the given kind from its
// breakpoints. Points are copied. The first breakpoint must sit at
// quantity 1 and quantities must strictly increase; price invariants are
// checked by Validate.
// Complexity: O(B).
func NewPiecewiseLinearCurve(kind Kind, points []Breakpoint) (*PiecewiseLinearCurve, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, kind)
	}
	if len(points) == 0 {
		return nil, ErrEmptyCurve
	}
	if points[0].Quantity != 1 {
		return nil, fmt.Errorf("%w: first quantity is %d", ErrBadBreakpoints, points[0].Quantity)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Quantity <= points[i-1].Quantity {
			return nil, fmt.Errorf("%w: quantity %d follows %d", ErrBadBreakpoints, points[i].Quantity, points[i-1].Quantity)
		}
	}
	cp := make([]Breakpoint, len(points))
	copy(cp, points)

	return &PiecewiseLinearCurve{kind: kind, points: cp}, nil
}

// Kind returns the ladder's kind.
func (c *PiecewiseLinearCurve) Kind() Kind { return c.kind }

// Len returns the number of units the ladder prices: the last breakpoint's
// quantity.
func (c *PiecewiseLinearCurve) Len() int { return c.points[len(c.points)-1].Quantity }

// ValueAt returns the marginal price of the q-th unit (1-based).
//
// Breakpoint units return their exact price. Units inside a segment take
//
//	p1 + (p2-p1)·(q-q1)/(q2-q1)
//
// in pure int64 arithmetic. Go's truncating division rounds the offset
// toward p1, which keeps every segment monotone in the same direction as
// its endpoints, so interpolation can never break a valid ladder.
// Complexity: O(log B).
func (c *PiecewiseLinearCurve) ValueAt(q int) (int64, error) {
	if q < 1 || q > c.Len() {
		return 0, fmt.Errorf("%w: quantity %d of %d units", ErrOutOfRange, q, c.Len())
	}

	// Locate the first breakpoint at or beyond q.
	i := sort.Search(len(c.points), func(i int) bool { return c.points[i].Quantity >= q })
	if c.points[i].Quantity == q {
		return c.points[i].Price, nil
	}

	// q lies strictly inside the segment (i-1, i).
	lo, hi := c.points[i-1], c.points[i]
	span := int64(hi.Quantity - lo.Quantity)
	offset := (hi.Price - lo.Price) * int64(q-lo.Quantity) / span

	return lo.Price + offset, nil
}

// Validate checks the breakpoint prices: non-negative and ordered for the
// curve's kind. Segment interiors inherit both properties from their
// endpoints, so breakpoints alone decide validity.
// Complexity: O(B).
func (c *PiecewiseLinearCurve) Validate() error {
	var prev int64
	for i, bp := range c.points {
		if bp.Price < 0 {
			return fmt.Errorf("%w: unit %d priced %d", ErrNegativePrice, bp.Quantity, bp.Price)
		}
		if i > 0 {
			if c.kind == Supply && bp.Price < prev {
				return fmt.Errorf("%w: supply cost falls from %d to %d at unit %d", ErrNonMonotonic, prev, bp.Price, bp.Quantity)
			}
			if c.kind == Demand && bp.Price > prev {
				return fmt.Errorf("%w: demand value rises from %d to %d at unit %d", ErrNonMonotonic, prev, bp.Price, bp.Quantity)
			}
		}
		prev = bp.Price
	}

	return nil
}

package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/network"
)

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a scenario document and validates it by compiling it
// once. Unknown JSON fields are rejected, so a typo'd key fails instead
// of silently dropping half the economy.
func Parse(data []byte) (*Scenario, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save writes the document as indented JSON.
func (s *Scenario) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}

	return nil
}

// Encode renders the document as indented JSON with a trailing newline.
func (s *Scenario) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scenario: encode: %w", err)
	}

	return append(data, '\n'), nil
}

// Validate compiles the document and discards the market, surfacing
// every structural problem a solve would hit: unknown locations, bad
// decimals, duplicate or non-monotone curves.
func (s *Scenario) Validate() error {
	_, err := s.Market()

	return err
}

// Market compiles the document into a ready-to-solve market.
// Complexity: O(V + E + total curve length).
func (s *Scenario) Market() (*market.Market, error) {
	if s.Scale < 0 || s.Scale > 9 {
		return nil, fmt.Errorf("%w: %d", ErrBadScale, s.Scale)
	}

	// 1) Geography: locations first, then routes against them.
	net := network.New()
	for _, id := range s.Geography.Locations {
		if err := net.AddLocation(id); err != nil {
			return nil, fmt.Errorf("location %q: %w", id, err)
		}
	}
	for _, r := range s.Geography.Routes {
		cost, err := Minor(r.Cost, s.Scale)
		if err != nil {
			return nil, fmt.Errorf("route %s→%s: %w", r.From, r.To, err)
		}
		if err := net.AddRoute(r.From, r.To, cost); err != nil {
			return nil, fmt.Errorf("route %s→%s: %w", r.From, r.To, err)
		}
		if r.Symmetric {
			if err := net.AddRoute(r.To, r.From, cost); err != nil {
				return nil, fmt.Errorf("route %s→%s: %w", r.To, r.From, err)
			}
		}
	}

	// 2) Economy: at most one curve per side per location.
	m, err := market.New(net)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(s.Economy.Supplies))
	for _, b := range s.Economy.Supplies {
		if _, dup := seen[b.Location]; dup {
			return nil, fmt.Errorf("%w: %s supply", ErrDuplicateCurve, b.Location)
		}
		seen[b.Location] = struct{}{}

		c, cerr := s.buildCurve(curve.Supply, b.Curve)
		if cerr != nil {
			return nil, fmt.Errorf("%s supply: %w", b.Location, cerr)
		}
		if berr := m.SetSupply(b.Location, c); berr != nil {
			return nil, fmt.Errorf("%s supply: %w", b.Location, berr)
		}
	}
	seen = make(map[string]struct{}, len(s.Economy.Demands))
	for _, b := range s.Economy.Demands {
		if _, dup := seen[b.Location]; dup {
			return nil, fmt.Errorf("%w: %s demand", ErrDuplicateCurve, b.Location)
		}
		seen[b.Location] = struct{}{}

		c, cerr := s.buildCurve(curve.Demand, b.Curve)
		if cerr != nil {
			return nil, fmt.Errorf("%s demand: %w", b.Location, cerr)
		}
		if berr := m.SetDemand(b.Location, c); berr != nil {
			return nil, fmt.Errorf("%s demand: %w", b.Location, berr)
		}
	}

	// 3) Batch-validate the bound curves, so a non-monotone ladder fails
	//    at load time rather than at the first solve.
	if err := m.Validate(nil); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	return m, nil
}

// buildCurve turns one wire spec into a curve of the given kind.
func (s *Scenario) buildCurve(kind curve.Kind, spec CurveSpec) (curve.Curve, error) {
	switch spec.Type {
	case CurveStep:
		if len(spec.Points) != 0 {
			return nil, fmt.Errorf("%w: step curve carries %d points", ErrBadCurveSpec, len(spec.Points))
		}
		prices := make([]int64, len(spec.Prices))
		for i, p := range spec.Prices {
			v, err := Minor(p, s.Scale)
			if err != nil {
				return nil, fmt.Errorf("unit %d: %w", i+1, err)
			}
			prices[i] = v
		}

		return curve.NewStepCurve(kind, prices)

	case CurvePiecewise:
		if len(spec.Prices) != 0 {
			return nil, fmt.Errorf("%w: piecewise curve carries %d prices", ErrBadCurveSpec, len(spec.Prices))
		}
		points := make([]curve.Breakpoint, len(spec.Points))
		for i, p := range spec.Points {
			v, err := Minor(p.Price, s.Scale)
			if err != nil {
				return nil, fmt.Errorf("breakpoint %d: %w", i+1, err)
			}
			points[i] = curve.Breakpoint{Quantity: p.Quantity, Price: v}
		}

		return curve.NewPiecewiseLinearCurve(kind, points)

	default:
		return nil, fmt.Errorf("%w: %q", ErrBadCurveType, spec.Type)
	}
}

// Minor converts a major-unit decimal to minor units at the given scale.
// The conversion must be exact: "2.50" at scale 2 is 250, "2.505" at
// scale 2 fails with ErrBadAmount. Sign passes through untouched, so
// deltas convert the same way as prices.
func Minor(d decimal.Decimal, scale int32) (int64, error) {
	shifted := d.Shift(scale)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s at scale %d", ErrBadAmount, d, scale)
	}
	bi := shifted.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: %s overflows at scale %d", ErrBadAmount, d, scale)
	}

	return bi.Int64(), nil
}

// Major converts minor units back to a major-unit decimal at the given
// scale. Exact by construction.
func Major(v int64, scale int32) decimal.Decimal {
	return decimal.New(v, -scale)
}

package simulate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/scenario"
)

// shockDoc is the wire form of one shock: prices as decimal strings,
// side as its lowercase name.
type shockDoc struct {
	Epoch      int               `json:"epoch"`
	Location   string            `json:"location"`
	Side       string            `json:"side"`
	PriceDelta decimal.Decimal   `json:"price_delta"`
	AddUnits   []decimal.Decimal `json:"add_units"`
}

// LoadShocks reads a JSON array of shocks, converting amounts to minor
// units at the given scale. The file format mirrors scenario documents:
//
//	[{"epoch": 2, "location": "farm", "side": "supply",
//	  "price_delta": "0.25", "add_units": ["2.50"]}]
//
// A missing price_delta means no shift; a missing add_units means no new
// rungs. Deltas may be negative; the curves reject any rung the shift
// pushes below zero when the shock is applied.
func LoadShocks(path string, scale int32) ([]Shock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simulate: read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var docs []shockDoc
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("simulate: decode %s: %w", path, err)
	}

	out := make([]Shock, 0, len(docs))
	for i, d := range docs {
		var side curve.Kind
		switch d.Side {
		case curve.Supply.String():
			side = curve.Supply
		case curve.Demand.String():
			side = curve.Demand
		default:
			return nil, fmt.Errorf("%w: shock %d says %q", ErrBadSide, i+1, d.Side)
		}

		delta, err := scenario.Minor(d.PriceDelta, scale)
		if err != nil {
			return nil, fmt.Errorf("shock %d price_delta: %w", i+1, err)
		}

		var units []int64
		if len(d.AddUnits) > 0 {
			units = make([]int64, len(d.AddUnits))
			for j, u := range d.AddUnits {
				v, uerr := scenario.Minor(u, scale)
				if uerr != nil {
					return nil, fmt.Errorf("shock %d add_units[%d]: %w", i+1, j, uerr)
				}
				units[j] = v
			}
		}

		out = append(out, Shock{
			Epoch:      d.Epoch,
			Location:   d.Location,
			Side:       side,
			PriceDelta: delta,
			AddUnits:   units,
		})
	}

	return out, nil
}

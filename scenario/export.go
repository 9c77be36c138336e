package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/equiflow/equilibrium"
)

// fixed renders minor units as a major-unit string at the given scale,
// always carrying the full scale digits ("2.50", not "2.5").
func fixed(v int64, scale int32) string {
	return Major(v, scale).StringFixed(scale)
}

// WriteResults writes the plain-text result form: a RESULTS header, then
// one "<location>: <price>" line per location in sorted order.
func WriteResults(w io.Writer, res *equilibrium.Result, scale int32) error {
	if res == nil {
		return ErrNilResult
	}
	if _, err := fmt.Fprintln(w, "RESULTS"); err != nil {
		return fmt.Errorf("scenario: write results: %w", err)
	}
	for _, id := range res.Locations() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, fixed(res.Prices[id], scale)); err != nil {
			return fmt.Errorf("scenario: write results: %w", err)
		}
	}

	return nil
}

// WritePricesCSV writes one row per location: location,price.
func WritePricesCSV(w io.Writer, res *equilibrium.Result, scale int32) error {
	if res == nil {
		return ErrNilResult
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"location", "price"}); err != nil {
		return fmt.Errorf("scenario: write prices: %w", err)
	}
	for _, id := range res.Locations() {
		if err := cw.Write([]string{id, fixed(res.Prices[id], scale)}); err != nil {
			return fmt.Errorf("scenario: write prices: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteFlowsCSV writes one row per cleared transport edge: from,to,units.
// Flows carry quantities, not prices, so no scale applies.
func WriteFlowsCSV(w io.Writer, res *equilibrium.Result) error {
	if res == nil {
		return ErrNilResult
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to", "units"}); err != nil {
		return fmt.Errorf("scenario: write flows: %w", err)
	}
	for _, f := range res.Flows {
		if err := cw.Write([]string{f.From, f.To, strconv.Itoa(f.Units)}); err != nil {
			return fmt.Errorf("scenario: write flows: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteHistoryCSV writes one row per epoch: epoch,<price per location>.
// The header names each location; epochs[e][i] is the price of
// locations[i] after epoch e+1. Rows must all match the location list.
func WriteHistoryCSV(w io.Writer, locations []string, epochs [][]int64, scale int32) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(locations)+1)
	header = append(header, "epoch")
	header = append(header, locations...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("scenario: write history: %w", err)
	}
	row := make([]string, len(locations)+1)
	for e, prices := range epochs {
		if len(prices) != len(locations) {
			return fmt.Errorf("%w: epoch %d has %d prices for %d locations",
				ErrRaggedHistory, e+1, len(prices), len(locations))
		}
		row[0] = strconv.Itoa(e + 1)
		for i, p := range prices {
			row[i+1] = fixed(p, scale)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("scenario: write history: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// Package scenario reads and writes market descriptions, and exports
// solver results.
//
// A scenario is a JSON document carrying three parts:
//
//   - scale: the minor-unit exponent. Every price and cost in the
//     document is a decimal string; multiplying by 10^scale must land
//     exactly on an integer, which becomes the minor-unit amount used
//     everywhere inside the engine. "2.50" at scale 2 is 250; "2.505"
//     at scale 2 is rejected.
//   - geography: location IDs and directed routes between them. A route
//     with "symmetric": true is recorded in both directions.
//   - economy: supply and demand curves bound to locations, either as
//     "step" (explicit per-unit prices) or "piecewise" (breakpoints, the
//     rungs between them interpolated).
//
// Load and Parse validate strictly: unknown JSON fields, unknown
// location references, duplicate curve bindings, and prices that do not
// fit the declared scale all fail with wrapped sentinel errors rather
// than loading a half-usable market. Market compiles the document into a
// ready-to-solve market.Market.
//
// The export side turns solver output back into files: WriteResults
// produces the RESULTS text form, and the CSV writers cover prices,
// flows, and per-epoch price history. All exported prices are formatted
// at the document's scale, so a scenario at scale 2 exports "3.00", not
// "3".
package scenario

// Package simulate runs a market through multiple epochs, re-solving
// after scheduled curve shocks.
//
// A Session owns one market and a uuid identity. Run(epochs, shocks)
// clears the market once per epoch; before an epoch's solve, every
// Shock scheduled for it is applied to the bound curves: PriceDelta
// shifts all rungs of a side's ladder, AddUnits appends capacity (or,
// on a location with no ladder on that side yet, founds a new one).
// Shocks accumulate across epochs because they mutate the session's
// market in place.
//
// The result is a History: the per-epoch price vector over the market's
// sorted locations plus the per-epoch surplus, ready for CSV export.
// Epochs are numbered from 1. Two sessions over equal markets and equal
// shock schedules produce identical histories; epoch re-solves are batch,
// never interactive.
//
// Progress is logged through logrus with session and epoch fields;
// the default logger discards everything.
package simulate

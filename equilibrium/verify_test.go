package equilibrium_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/equiflow/equilibrium"
	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/network"
)

// solvedPair clears the canonical two-town market (A ships both units to
// B at cost 1, prices 2 and 3, surplus 4) and hands back market and result
// ready for tampering.
func solvedPair(t *testing.T) (*market.Market, *equilibrium.Result) {
	t.Helper()
	m := mkMarket(t, []string{"A", "B"}, network.Route{From: "A", To: "B", Cost: 1})
	setSupply(t, m, "A", 1, 2)
	setDemand(t, m, "B", 5, 4)

	res, err := equilibrium.Solve(m)
	require.NoError(t, err)

	return m, res
}

// ---- 1. Arguments and the untouched result ----

func TestVerify_NilArguments(t *testing.T) {
	m, res := solvedPair(t)
	require.ErrorIs(t, equilibrium.Verify(nil, res), equilibrium.ErrNilMarket)
	require.ErrorIs(t, equilibrium.Verify(m, nil), equilibrium.ErrNilResult)
}

func TestVerify_CleanResultPasses(t *testing.T) {
	m, res := solvedPair(t)
	require.NoError(t, equilibrium.Verify(m, res))
}

// ---- 2. Price tampering ----

func TestVerify_MissingPrice(t *testing.T) {
	m, res := solvedPair(t)
	delete(res.Prices, "A")
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadPrice)
}

func TestVerify_NegativePrice(t *testing.T) {
	m, res := solvedPair(t)
	res.Prices["A"] = -1
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadPrice)
}

// ---- 3. Quantity tampering ----

func TestVerify_ProducedBeyondLadder(t *testing.T) {
	m, res := solvedPair(t)
	res.Produced["A"] = 3
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadQuantity)
}

func TestVerify_NegativeConsumption(t *testing.T) {
	m, res := solvedPair(t)
	res.Consumed["B"] = -1
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadQuantity)
}

// ---- 4. Flow tampering ----

func TestVerify_EmptyFlow(t *testing.T) {
	m, res := solvedPair(t)
	res.Flows[0].Units = 0
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadQuantity)
}

func TestVerify_FlowOverMissingRoute(t *testing.T) {
	m, res := solvedPair(t)
	res.Flows[0] = equilibrium.Flow{From: "B", To: "A", Units: 2}
	require.ErrorIs(t, equilibrium.Verify(m, res), network.ErrNoDirectEdge)
}

func TestVerify_TradedRouteSettlesOff(t *testing.T) {
	m, res := solvedPair(t)
	res.Prices["B"] = 4
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrArbitrage)
}

func TestVerify_DroppedFlowBreaksConservation(t *testing.T) {
	m, res := solvedPair(t)
	res.Flows = nil
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrUnbalanced)
}

// ---- 5. Checks no flow can witness ----

func TestVerify_ArbitrageOnUntradedRoute(t *testing.T) {
	// No unit clears here, so nothing trips the per-flow check; only the
	// pairwise sweep can spot the inflated quote at z.
	m := mkMarket(t, []string{"v", "z"}, network.Route{From: "v", To: "z", Cost: 10})
	setDemand(t, m, "z", 3)

	res, err := equilibrium.Solve(m)
	require.NoError(t, err)
	require.NoError(t, equilibrium.Verify(m, res))

	res.Prices["z"] = 11
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrArbitrage)
}

func TestVerify_SurplusMismatch(t *testing.T) {
	m, res := solvedPair(t)
	res.Surplus = 5
	require.ErrorIs(t, equilibrium.Verify(m, res), equilibrium.ErrBadSurplus)
}

package equilibrium_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/equilibrium"
	"github.com/katalvlaran/equiflow/market"
	"github.com/katalvlaran/equiflow/network"
)

// mkMarket builds a market over the given locations and routes.
func mkMarket(t *testing.T, locs []string, routes ...network.Route) *market.Market {
	t.Helper()
	n := network.New()
	for _, id := range locs {
		require.NoError(t, n.AddLocation(id))
	}
	for _, r := range routes {
		require.NoError(t, n.AddRoute(r.From, r.To, r.Cost))
	}
	m, err := market.New(n)
	require.NoError(t, err)

	return m
}

func setSupply(t *testing.T, m *market.Market, id string, prices ...int64) {
	t.Helper()
	c, err := curve.NewStepCurve(curve.Supply, prices)
	require.NoError(t, err)
	require.NoError(t, m.SetSupply(id, c))
}

func setDemand(t *testing.T, m *market.Market, id string, prices ...int64) {
	t.Helper()
	c, err := curve.NewStepCurve(curve.Demand, prices)
	require.NoError(t, err)
	require.NoError(t, m.SetDemand(id, c))
}

// SolveSuite exercises the solver end to end on hand-checked markets.
type SolveSuite struct {
	suite.Suite
}

// TestSingleLocation clears a one-town market against its own curves:
// units priced 1 and 2 trade against values 4 and 3, the third unit
// (cost 3, value 1) does not pay for itself.
func (s *SolveSuite) TestSingleLocation() {
	m := mkMarket(s.T(), []string{"town"})
	setSupply(s.T(), m, "town", 1, 2, 3)
	setDemand(s.T(), m, "town", 4, 3, 1)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, res.Produced["town"])
	require.Equal(s.T(), 2, res.Consumed["town"])
	require.Equal(s.T(), int64(2), res.Prices["town"])
	require.Empty(s.T(), res.Flows)
	require.Equal(s.T(), int64(4), res.Surplus) // (4−1) + (3−2)
}

// TestTwoLocations ships both of A's units to B over the cost-1 route and
// settles B exactly one transport cost above A.
func (s *SolveSuite) TestTwoLocations() {
	m := mkMarket(s.T(), []string{"A", "B"}, network.Route{From: "A", To: "B", Cost: 1})
	setSupply(s.T(), m, "A", 1, 2)
	setDemand(s.T(), m, "B", 5, 4)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, res.Produced["A"])
	require.Equal(s.T(), 2, res.Consumed["B"])
	require.Equal(s.T(), int64(2), res.Prices["A"])
	require.Equal(s.T(), int64(3), res.Prices["B"])
	require.Equal(s.T(), []equilibrium.Flow{{From: "A", To: "B", Units: 2}}, res.Flows)
	require.Equal(s.T(), int64(4), res.Surplus) // (5−1−1) + (4−2−1)
}

// TestDisconnectedMarkets lets two towns with no route between them clear
// independently; quantities match what each would clear alone.
func (s *SolveSuite) TestDisconnectedMarkets() {
	m := mkMarket(s.T(), []string{"x", "y"})
	setSupply(s.T(), m, "x", 1, 2, 3)
	setDemand(s.T(), m, "x", 4, 3, 1)
	setSupply(s.T(), m, "y", 2, 3)
	setDemand(s.T(), m, "y", 9, 1)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, res.Produced["x"])
	require.Equal(s.T(), 2, res.Consumed["x"])
	require.Equal(s.T(), 1, res.Produced["y"])
	require.Equal(s.T(), 1, res.Consumed["y"])
	require.Empty(s.T(), res.Flows)
	require.Equal(s.T(), int64(2), res.Prices["x"])
	require.Equal(s.T(), int64(3), res.Prices["y"])
	require.Equal(s.T(), int64(11), res.Surplus) // 4 locally at x, 7 at y
	require.NoError(s.T(), equilibrium.Verify(m, res))
}

// TestTransshipment prices a middle town with no curves of its own purely
// by the settlement chain along the traded path.
func (s *SolveSuite) TestTransshipment() {
	m := mkMarket(s.T(), []string{"A", "B", "C"},
		network.Route{From: "A", To: "B", Cost: 1},
		network.Route{From: "B", To: "C", Cost: 1},
	)
	setSupply(s.T(), m, "A", 1)
	setDemand(s.T(), m, "C", 9)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []equilibrium.Flow{
		{From: "A", To: "B", Units: 1},
		{From: "B", To: "C", Units: 1},
	}, res.Flows)
	require.Equal(s.T(), int64(1), res.Prices["A"])
	require.Equal(s.T(), int64(2), res.Prices["B"])
	require.Equal(s.T(), int64(3), res.Prices["C"])
	require.Zero(s.T(), res.TradedUnits("B"))
	require.Equal(s.T(), int64(6), res.Surplus) // 9 − 1 − 2 transport
}

// TestReroutesEarlierUnit forces the second unit to undo part of the
// first unit's route: the only profitable path for w's unit runs backwards
// along the flow a shipped to b, handing b to w and redirecting a to v.
func (s *SolveSuite) TestReroutesEarlierUnit() {
	m := mkMarket(s.T(), []string{"a", "b", "v", "w"},
		network.Route{From: "a", To: "b", Cost: 100},
		network.Route{From: "a", To: "v", Cost: 1},
		network.Route{From: "w", To: "b", Cost: 1},
		network.Route{From: "w", To: "v", Cost: 200},
	)
	setSupply(s.T(), m, "a", 1)
	setSupply(s.T(), m, "w", 110)
	setDemand(s.T(), m, "b", 300)
	setDemand(s.T(), m, "v", 150)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)

	// The a→b shipment of unit one is fully canceled in the final flows.
	require.Equal(s.T(), []equilibrium.Flow{
		{From: "a", To: "v", Units: 1},
		{From: "w", To: "b", Units: 1},
	}, res.Flows)
	require.Equal(s.T(), 1, res.Produced["a"])
	require.Equal(s.T(), 1, res.Produced["w"])
	require.Equal(s.T(), 1, res.Consumed["b"])
	require.Equal(s.T(), 1, res.Consumed["v"])
	require.Equal(s.T(), int64(337), res.Surplus) // 450 value − 111 cost − 2 transport
	require.Equal(s.T(), int64(11), res.Prices["a"])
	require.Equal(s.T(), int64(111), res.Prices["b"])
	require.Equal(s.T(), int64(12), res.Prices["v"])
	require.Equal(s.T(), int64(110), res.Prices["w"])
}

// TestTieBreaksLexicographically gives two suppliers identical economics;
// the lexicographically first location must win the single unit, always.
func (s *SolveSuite) TestTieBreaksLexicographically() {
	m := mkMarket(s.T(), []string{"c", "m", "z"},
		network.Route{From: "m", To: "c", Cost: 1},
		network.Route{From: "z", To: "c", Cost: 1},
	)
	setSupply(s.T(), m, "m", 5)
	setSupply(s.T(), m, "z", 5)
	setDemand(s.T(), m, "c", 9)

	for run := 0; run < 10; run++ {
		res, err := equilibrium.Solve(m)
		require.NoError(s.T(), err)
		require.Equal(s.T(), []equilibrium.Flow{{From: "m", To: "c", Units: 1}}, res.Flows)
		require.Equal(s.T(), 1, res.Produced["m"])
		require.Zero(s.T(), res.Produced["z"])
		require.Equal(s.T(), int64(3), res.Surplus)
	}
}

// TestZeroSurplusUnitDoesNotTrade stops at net cost zero: a unit that
// merely breaks even is left uncleared.
func (s *SolveSuite) TestZeroSurplusUnitDoesNotTrade() {
	m := mkMarket(s.T(), []string{"town"})
	setSupply(s.T(), m, "town", 3)
	setDemand(s.T(), m, "town", 3)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Produced["town"])
	require.Zero(s.T(), res.Consumed["town"])
	require.Zero(s.T(), res.Surplus)
}

// TestNonMonotonicSupplyRejected refuses to solve past a supply ladder
// whose marginal cost falls and then rises.
func (s *SolveSuite) TestNonMonotonicSupplyRejected() {
	m := mkMarket(s.T(), []string{"town"})
	bad, err := curve.NewStepCurve(curve.Supply, []int64{5, 3, 8})
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.SetSupply("town", bad))

	_, err = equilibrium.Solve(m)
	require.True(s.T(), errors.Is(err, curve.ErrNonMonotonic))
}

// TestDeterministicAcrossWorkers re-solves one market with different pool
// sizes; every field of the result must be bit-identical.
func (s *SolveSuite) TestDeterministicAcrossWorkers() {
	build := func() *market.Market {
		m := mkMarket(s.T(), []string{"a", "b", "c", "d"},
			network.Route{From: "a", To: "b", Cost: 2},
			network.Route{From: "b", To: "c", Cost: 1},
			network.Route{From: "a", To: "c", Cost: 5},
			network.Route{From: "d", To: "b", Cost: 3},
		)
		setSupply(s.T(), m, "a", 1, 2, 4, 7)
		setSupply(s.T(), m, "d", 2, 2, 5)
		setDemand(s.T(), m, "b", 9, 6, 2)
		setDemand(s.T(), m, "c", 8, 8, 3, 1)

		return m
	}

	base, err := equilibrium.Solve(build(), equilibrium.WithWorkers(1))
	require.NoError(s.T(), err)
	for _, workers := range []int{2, 4, 8} {
		res, err := equilibrium.Solve(build(), equilibrium.WithWorkers(workers))
		require.NoError(s.T(), err)
		require.Equal(s.T(), base, res, "workers=%d", workers)
	}
	require.NoError(s.T(), equilibrium.Verify(build(), base))
}

// TestNilMarket covers the nil-input sentinel.
func (s *SolveSuite) TestNilMarket() {
	_, err := equilibrium.Solve(nil)
	require.True(s.T(), errors.Is(err, equilibrium.ErrNilMarket))
}

// TestNegativeWorkersPanics covers the option-constructor contract.
func (s *SolveSuite) TestNegativeWorkersPanics() {
	m := mkMarket(s.T(), []string{"town"})
	require.Panics(s.T(), func() {
		_, _ = equilibrium.Solve(m, equilibrium.WithWorkers(-1))
	})
}

// TestEmptyMarket solves a market with no curves at all.
func (s *SolveSuite) TestEmptyMarket() {
	m := mkMarket(s.T(), []string{"a", "b"}, network.Route{From: "a", To: "b", Cost: 1})

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Empty(s.T(), res.Flows)
	require.Zero(s.T(), res.Surplus)
	require.Zero(s.T(), res.Prices["a"])
	require.Zero(s.T(), res.Prices["b"])
}

// Entry point for running the suite.
func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}

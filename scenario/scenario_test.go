package scenario_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/equilibrium"
	"github.com/katalvlaran/equiflow/network"
	"github.com/katalvlaran/equiflow/scenario"
)

// doc is a complete scenario at scale 2: two hops of transport, a step
// supply at the farm, a piecewise demand at the town. Both units clear;
// the solved prices are 2.00 / 2.25 / 3.00 with surplus 4.00.
const doc = `{
  "scale": 2,
  "geography": {
    "locations": ["farm", "port", "town"],
    "routes": [
      {"from": "farm", "to": "port", "cost": "0.25"},
      {"from": "port", "to": "town", "cost": "0.75", "symmetric": true}
    ]
  },
  "economy": {
    "supplies": [
      {"location": "farm", "curve": {"type": "step", "prices": ["1.00", "2.00"]}}
    ],
    "demands": [
      {"location": "town", "curve": {"type": "piecewise", "points": [
        {"quantity": 1, "price": "5.00"},
        {"quantity": 2, "price": "4.00"}
      ]}}
    ]
  }
}`

// ScenarioSuite covers parsing, compiling, and file round-trips.
type ScenarioSuite struct {
	suite.Suite
}

func (s *ScenarioSuite) TestParse_Valid() {
	sc, err := scenario.Parse([]byte(doc))
	require.NoError(s.T(), err)
	require.Equal(s.T(), int32(2), sc.Scale)
	require.Len(s.T(), sc.Geography.Locations, 3)
	require.Len(s.T(), sc.Geography.Routes, 2)
	require.Len(s.T(), sc.Economy.Supplies, 1)
	require.Len(s.T(), sc.Economy.Demands, 1)
}

func (s *ScenarioSuite) TestParse_RejectsUnknownField() {
	_, err := scenario.Parse([]byte(`{"scale": 2, "geografy": {}}`))
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "geografy")
}

func (s *ScenarioSuite) TestParse_BadDecimalForScale() {
	_, err := scenario.Parse([]byte(`{
  "scale": 2,
  "geography": {
    "locations": ["a", "b"],
    "routes": [{"from": "a", "to": "b", "cost": "0.255"}]
  },
  "economy": {}
}`))
	require.ErrorIs(s.T(), err, scenario.ErrBadAmount)
}

func (s *ScenarioSuite) TestParse_UnknownRouteEndpoint() {
	_, err := scenario.Parse([]byte(`{
  "scale": 0,
  "geography": {
    "locations": ["farm"],
    "routes": [{"from": "farm", "to": "prt", "cost": "1"}]
  },
  "economy": {}
}`))
	require.ErrorIs(s.T(), err, network.ErrLocationNotFound)
}

func (s *ScenarioSuite) TestParse_DuplicateCurve() {
	_, err := scenario.Parse([]byte(`{
  "scale": 0,
  "geography": {"locations": ["farm"]},
  "economy": {
    "supplies": [
      {"location": "farm", "curve": {"type": "step", "prices": ["1"]}},
      {"location": "farm", "curve": {"type": "step", "prices": ["2"]}}
    ]
  }
}`))
	require.ErrorIs(s.T(), err, scenario.ErrDuplicateCurve)
}

func (s *ScenarioSuite) TestParse_BadCurveType() {
	_, err := scenario.Parse([]byte(`{
  "scale": 0,
  "geography": {"locations": ["farm"]},
  "economy": {
    "supplies": [{"location": "farm", "curve": {"type": "linear", "prices": ["1"]}}]
  }
}`))
	require.ErrorIs(s.T(), err, scenario.ErrBadCurveType)
}

func (s *ScenarioSuite) TestParse_MixedCurveSpec() {
	_, err := scenario.Parse([]byte(`{
  "scale": 0,
  "geography": {"locations": ["farm"]},
  "economy": {
    "supplies": [{"location": "farm", "curve": {
      "type": "step", "prices": ["1"], "points": [{"quantity": 1, "price": "1"}]
    }}]
  }
}`))
	require.ErrorIs(s.T(), err, scenario.ErrBadCurveSpec)
}

func (s *ScenarioSuite) TestParse_BadScale() {
	_, err := scenario.Parse([]byte(`{"scale": 12, "geography": {}, "economy": {}}`))
	require.ErrorIs(s.T(), err, scenario.ErrBadScale)
}

func (s *ScenarioSuite) TestParse_NonMonotoneCurve() {
	_, err := scenario.Parse([]byte(`{
  "scale": 0,
  "geography": {"locations": ["farm"]},
  "economy": {
    "supplies": [{"location": "farm", "curve": {"type": "step", "prices": ["2", "1"]}}]
  }
}`))
	require.ErrorIs(s.T(), err, curve.ErrNonMonotonic)
}

func (s *ScenarioSuite) TestMarket_SolvesLoadedScenario() {
	sc, err := scenario.Parse([]byte(doc))
	require.NoError(s.T(), err)
	m, err := sc.Market()
	require.NoError(s.T(), err)

	res, err := equilibrium.Solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(200), res.Prices["farm"])
	require.Equal(s.T(), int64(225), res.Prices["port"])
	require.Equal(s.T(), int64(300), res.Prices["town"])
	require.Equal(s.T(), int64(400), res.Surplus)
	require.Equal(s.T(), []equilibrium.Flow{
		{From: "farm", To: "port", Units: 2},
		{From: "port", To: "town", Units: 2},
	}, res.Flows)
}

func (s *ScenarioSuite) TestMarket_SymmetricRouteBothWays() {
	sc, err := scenario.Parse([]byte(doc))
	require.NoError(s.T(), err)
	m, err := sc.Market()
	require.NoError(s.T(), err)

	net := m.Network()
	forward, err := net.DirectCost("port", "town")
	require.NoError(s.T(), err)
	back, err := net.DirectCost("town", "port")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(75), forward)
	require.Equal(s.T(), int64(75), back)

	// The asymmetric route stayed one-way.
	_, err = net.DirectCost("port", "farm")
	require.ErrorIs(s.T(), err, network.ErrNoDirectEdge)
}

func (s *ScenarioSuite) TestEncode_RoundTripCompilesIdentically() {
	first, err := scenario.Parse([]byte(doc))
	require.NoError(s.T(), err)
	data, err := first.Encode()
	require.NoError(s.T(), err)
	second, err := scenario.Parse(data)
	require.NoError(s.T(), err)

	m1, err := first.Market()
	require.NoError(s.T(), err)
	m2, err := second.Market()
	require.NoError(s.T(), err)

	r1, err := equilibrium.Solve(m1)
	require.NoError(s.T(), err)
	r2, err := equilibrium.Solve(m2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), r1, r2)
}

func (s *ScenarioSuite) TestSaveLoad_File() {
	sc, err := scenario.Parse([]byte(doc))
	require.NoError(s.T(), err)

	path := filepath.Join(s.T().TempDir(), "market.json")
	require.NoError(s.T(), sc.Save(path))

	loaded, err := scenario.Load(path)
	require.NoError(s.T(), err)
	require.Equal(s.T(), sc.Scale, loaded.Scale)
	require.Equal(s.T(), sc.Geography.Locations, loaded.Geography.Locations)
}

func (s *ScenarioSuite) TestLoad_MissingFile() {
	_, err := scenario.Load(filepath.Join(s.T().TempDir(), "absent.json"))
	require.Error(s.T(), err)
}

func (s *ScenarioSuite) TestMinor_Conversions() {
	d := func(v string) decimal.Decimal {
		out, err := decimal.NewFromString(v)
		require.NoError(s.T(), err)
		return out
	}

	got, err := scenario.Minor(d("2.50"), 2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(250), got)

	got, err = scenario.Minor(d("3"), 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(3), got)

	got, err = scenario.Minor(d("-0.25"), 2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(-25), got)

	_, err = scenario.Minor(d("0.001"), 2)
	require.ErrorIs(s.T(), err, scenario.ErrBadAmount)

	_, err = scenario.Minor(d("99999999999999999999"), 2)
	require.ErrorIs(s.T(), err, scenario.ErrBadAmount)
}

func (s *ScenarioSuite) TestMajor_Formatting() {
	require.Equal(s.T(), "2.5", scenario.Major(250, 2).String())
	require.Equal(s.T(), "2.50", scenario.Major(250, 2).StringFixed(2))
	require.Equal(s.T(), "3", scenario.Major(3, 0).StringFixed(0))
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

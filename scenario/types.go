package scenario

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrBadScale reports a minor-unit exponent outside 0..9.
	ErrBadScale = errors.New("scenario: scale must be between 0 and 9")

	// ErrBadAmount reports a decimal that does not convert exactly to
	// minor units at the declared scale, or overflows them.
	ErrBadAmount = errors.New("scenario: amount does not fit the declared scale")

	// ErrBadCurveType reports a curve type other than "step" or "piecewise".
	ErrBadCurveType = errors.New("scenario: unknown curve type")

	// ErrBadCurveSpec reports a curve whose fields contradict its type,
	// like a step curve carrying breakpoints.
	ErrBadCurveSpec = errors.New("scenario: curve fields do not match its type")

	// ErrDuplicateCurve reports two curves of the same side bound to one
	// location.
	ErrDuplicateCurve = errors.New("scenario: location already has a curve on that side")

	// ErrNilResult reports an export called with no result.
	ErrNilResult = errors.New("scenario: result is nil")

	// ErrRaggedHistory reports a history row whose width differs from
	// the location list.
	ErrRaggedHistory = errors.New("scenario: history row width does not match locations")
)

// Curve type tags accepted in scenario documents.
const (
	CurveStep      = "step"
	CurvePiecewise = "piecewise"
)

// Scenario is the top-level document: one geography, one economy, and
// the scale tying the document's decimal strings to the engine's integer
// minor units.
type Scenario struct {
	Scale     int32     `json:"scale"`
	Geography Geography `json:"geography"`
	Economy   Economy   `json:"economy"`
}

// Geography declares the locations and the directed routes linking them.
type Geography struct {
	Locations []string `json:"locations"`
	Routes    []Route  `json:"routes,omitempty"`
}

// Route is one transport link. Cost is a decimal in major units;
// Symmetric records the reverse direction at the same cost.
type Route struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Cost      decimal.Decimal `json:"cost"`
	Symmetric bool            `json:"symmetric,omitempty"`
}

// Economy binds curves to locations, at most one per side per location.
type Economy struct {
	Supplies []Binding `json:"supplies,omitempty"`
	Demands  []Binding `json:"demands,omitempty"`
}

// Binding attaches one curve to one location.
type Binding struct {
	Location string    `json:"location"`
	Curve    CurveSpec `json:"curve"`
}

// CurveSpec is the wire form of a curve. Exactly one of Prices (step) or
// Points (piecewise) is set, matching Type.
type CurveSpec struct {
	Type   string            `json:"type"`
	Prices []decimal.Decimal `json:"prices,omitempty"`
	Points []Point           `json:"points,omitempty"`
}

// Point is one piecewise breakpoint: the exact price of the unit at a
// 1-based quantity.
type Point struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

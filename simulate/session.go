package simulate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/equiflow/curve"
	"github.com/katalvlaran/equiflow/equilibrium"
	"github.com/katalvlaran/equiflow/market"
)

// Session drives one market through repeated clears. It owns the market
// for the duration: shocks mutate the bound curves in place, so epoch N
// always builds on everything applied before it.
type Session struct {
	id  uuid.UUID
	mkt *market.Market
	cfg Options
	log logrus.FieldLogger
}

// New opens a session over the given market.
func New(m *market.Market, opts ...Option) (*Session, error) {
	if m == nil {
		return nil, ErrNilMarket
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{id: uuid.New(), mkt: m, cfg: cfg}
	s.log = cfg.Logger.WithField("session", s.id.String())

	return s, nil
}

// ID returns the session's uuid.
func (s *Session) ID() uuid.UUID { return s.id }

// Market returns the session's market, current shocks included.
func (s *Session) Market() *market.Market { return s.mkt }

// Run clears the market once per epoch, applying each epoch's shocks
// first, and collects the resulting price history.
//
// The whole schedule is range-checked before anything mutates, so a
// misdated shock fails the run without half-applying it.
// Complexity: epochs · Solve, plus the shock curve rebuilds.
func (s *Session) Run(epochs int, shocks []Shock) (*History, error) {
	if epochs < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadEpochs, epochs)
	}

	// 1) Bucket the schedule by epoch, validating up front.
	byEpoch := make(map[int][]Shock, len(shocks))
	for _, sh := range shocks {
		if sh.Epoch < 1 || sh.Epoch > epochs {
			return nil, fmt.Errorf("%w: epoch %d of %d", ErrBadEpoch, sh.Epoch, epochs)
		}
		byEpoch[sh.Epoch] = append(byEpoch[sh.Epoch], sh)
	}

	ids := s.mkt.Locations()
	hist := &History{
		SessionID: s.id.String(),
		Locations: ids,
		Epochs:    make([][]int64, 0, epochs),
		Surplus:   make([]int64, 0, epochs),
	}
	s.log.WithFields(logrus.Fields{
		"locations": len(ids),
		"epochs":    epochs,
		"shocks":    len(shocks),
	}).Info("session started")

	// 2) Shock, solve, record; repeat.
	for e := 1; e <= epochs; e++ {
		for _, sh := range byEpoch[e] {
			if err := s.apply(sh); err != nil {
				return nil, fmt.Errorf("epoch %d: %w", e, err)
			}
		}

		res, err := equilibrium.Solve(s.mkt,
			equilibrium.WithWorkers(s.cfg.Workers),
			equilibrium.WithLogger(s.log),
		)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", e, err)
		}

		row := make([]int64, len(ids))
		for i, id := range ids {
			row[i] = res.Prices[id]
		}
		hist.Epochs = append(hist.Epochs, row)
		hist.Surplus = append(hist.Surplus, res.Surplus)

		s.log.WithFields(logrus.Fields{
			"epoch":   e,
			"units":   res.Units(),
			"surplus": res.Surplus,
		}).Info("epoch cleared")
	}

	return hist, nil
}

// apply rewrites one ladder according to the shock and binds the result
// back onto the market.
func (s *Session) apply(sh Shock) error {
	var (
		current curve.Curve
		bound   bool
	)
	switch sh.Side {
	case curve.Supply:
		current, bound = s.mkt.Supply(sh.Location)
	case curve.Demand:
		current, bound = s.mkt.Demand(sh.Location)
	default:
		return fmt.Errorf("%w: %s", ErrBadSide, sh.Side)
	}

	next := current
	var err error
	if !bound {
		// Founding a ladder: only AddUnits can do it.
		if sh.PriceDelta != 0 || len(sh.AddUnits) == 0 {
			return fmt.Errorf("%w: %s %s", ErrNoCurve, sh.Location, sh.Side)
		}
		next, err = curve.NewStepCurve(sh.Side, sh.AddUnits)
		if err != nil {
			return fmt.Errorf("%s %s: %w", sh.Location, sh.Side, err)
		}
	} else {
		if sh.PriceDelta != 0 {
			next, err = curve.Shifted(next, sh.PriceDelta)
			if err != nil {
				return fmt.Errorf("%s %s: %w", sh.Location, sh.Side, err)
			}
		}
		if len(sh.AddUnits) > 0 {
			next, err = curve.Extended(next, sh.AddUnits...)
			if err != nil {
				return fmt.Errorf("%s %s: %w", sh.Location, sh.Side, err)
			}
		}
	}

	if sh.Side == curve.Supply {
		err = s.mkt.SetSupply(sh.Location, next)
	} else {
		err = s.mkt.SetDemand(sh.Location, next)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", sh.Location, sh.Side, err)
	}

	return nil
}

package account

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Ssa is a social security income stream. Benefit math is not modeled yet;
// the account carries its inputs and the settings carry the taxation spans,
// but each simulated year contributes nothing to the totals.
type Ssa struct {
	accountBase `yaml:",inline"`

	Base    decimal.Decimal  `json:"base" yaml:"base"`
	StartIn domain.YearInput `json:"startIn" yaml:"startIn"`
	EndIn   domain.YearInput `json:"endIn" yaml:"endIn"`

	analysis *simulation.SingleTable
}

func (a *Ssa) Type() Type { return TypeSsa }

func (a *Ssa) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	if err := errNoLink(linked); err != nil {
		return nil, err
	}
	a.analysis = simulation.NewSingleTable(nil)
	dates, err := resolveDates(a, settings, linked)
	if err != nil {
		return nil, err
	}
	a.dates = dates
	return nil, nil
}

func (a *Ssa) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartIn, a.EndIn, settings, linked, domain.EvalStartIn, domain.EvalEndIn)
}

func (a *Ssa) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return nil, nil
}

func (a *Ssa) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Ssa) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	if err := a.analysis.AddYear(year, false); err != nil {
		return simulation.YearlyImpact{}, err
	}
	return simulation.YearlyImpact{}, nil
}

func (a *Ssa) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Ssa) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

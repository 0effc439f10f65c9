package account

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Income is a source of earned income such as a salary. The yearly value
// grows from base by the raise percentage each year.
type Income struct {
	accountBase `yaml:",inline"`

	Table   History             `json:"table" yaml:"table"`
	Base    decimal.Decimal     `json:"base" yaml:"base"`
	StartIn domain.YearInput    `json:"startIn" yaml:"startIn"`
	EndIn   domain.YearInput    `json:"endIn" yaml:"endIn"`
	Raise   domain.PercentInput `json:"raise" yaml:"raise"`

	analysis *simulation.SingleTable
}

func (a *Income) Type() Type { return TypeIncome }

func (a *Income) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	if err := errNoLink(linked); err != nil {
		return nil, err
	}
	a.analysis = simulation.NewSingleTable(a.Table)
	dates, err := resolveDates(a, settings, linked)
	if err != nil {
		return nil, err
	}
	a.dates = dates
	return nil, nil
}

func (a *Income) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartIn, a.EndIn, settings, linked, domain.EvalStartIn, domain.EvalEndIn)
}

func (a *Income) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return nil, nil
}

func (a *Income) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Income) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, false); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.dates.YearIn.Contains(year) {
		raise := decimal.NewFromInt(1).Add(a.Raise.Value(settings).Div(decimal.NewFromInt(100)))
		result.Earning = a.Base.Mul(raise.Pow(decimal.NewFromInt(int64(year - a.dates.YearIn.Start))))
	}

	a.analysis.Value.Update(year, result.Earning)

	return simulation.YearlyImpact{
		IncomeTaxable: result.Earning,
		Income:        result.Earning,
	}, nil
}

func (a *Income) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Income) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

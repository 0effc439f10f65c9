package account

import (
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Expense is money spent every year the account is active. Healthcare
// expenses are tracked separately so HSA accounts can pay them down before
// the remainder comes out of net worth.
type Expense struct {
	accountBase `yaml:",inline"`

	Table        History               `json:"table" yaml:"table"`
	StartOut     domain.YearInput      `json:"startOut" yaml:"startOut"`
	EndOut       domain.YearInput      `json:"endOut" yaml:"endOut"`
	ExpenseType  domain.ExpenseOptions `json:"expenseType" yaml:"expenseType"`
	ExpenseValue decimal.Decimal       `json:"expenseValue" yaml:"expenseValue"`
	IsHealthcare bool                  `json:"isHealthcare" yaml:"isHealthcare"`
	HsaLink      string                `json:"hsaLink,omitempty" yaml:"hsaLink,omitempty"`

	analysis *simulation.SingleTable
}

func (a *Expense) Type() Type { return TypeExpense }

func (a *Expense) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
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

func (a *Expense) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return nil, nil
}

func (a *Expense) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Expense) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Expense) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, false); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.dates.YearOut.Contains(year) {
		result.Expense = a.ExpenseType.Value(a.ExpenseValue, settings.InflationBase, year-a.dates.YearOut.Start)
	}

	a.analysis.Value.Update(year, result.Expense)

	if a.IsHealthcare {
		return simulation.YearlyImpact{
			HealthcareExpense: result.Expense,
			Col:               result.Expense,
		}, nil
	}
	return simulation.YearlyImpact{
		Expense: result.Expense,
		Col:     result.Expense,
	}, nil
}

func (a *Expense) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Expense) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

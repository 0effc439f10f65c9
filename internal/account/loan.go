package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Loan is a generic loan paid down with yearly payments and charged simple
// yearly interest.
type Loan struct {
	accountBase `yaml:",inline"`

	Table        History               `json:"table" yaml:"table"`
	StartOut     domain.YearInput      `json:"startOut" yaml:"startOut"`
	EndOut       domain.YearInput      `json:"endOut" yaml:"endOut"`
	PaymentType  domain.PaymentOptions `json:"paymentType" yaml:"paymentType"`
	PaymentValue decimal.Decimal       `json:"paymentValue" yaml:"paymentValue"`
	Rate         domain.PercentInput   `json:"rate" yaml:"rate"`

	analysis *simulation.LoanTables
}

func (a *Loan) Type() Type { return TypeLoan }

func (a *Loan) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	if err := errNoLink(linked); err != nil {
		return nil, err
	}
	a.analysis = simulation.NewLoanTables(a.Table, nil, nil, nil, nil)
	dates, err := resolveDates(a, settings, linked)
	if err != nil {
		return nil, err
	}
	a.dates = dates
	return nil, nil
}

func (a *Loan) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return nil, nil
}

func (a *Loan) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Loan) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Loan) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, true); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.analysis.Value.GetOrZero(year).IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("loan account %s has a negative balance", a.Name())
	}

	result.Interest = a.analysis.Value.GetOrZero(year).Mul(a.Rate.Value(settings)).Div(decimal.NewFromInt(100))
	a.analysis.Interest.Update(year, result.Interest)
	a.analysis.Value.Update(year, result.Interest)

	if a.dates.YearOut.Contains(year) {
		result.Payment = a.PaymentType.Value(a.PaymentValue, settings.InflationBase,
			year-a.dates.YearOut.Start, a.analysis.Value.GetOrZero(year))
	}
	a.analysis.Payments.Update(year, result.Payment)
	a.analysis.Value.Update(year, result.Payment.Neg())

	// Clamp away rounding residue once the loan is effectively paid off.
	if a.analysis.Value.GetOrZero(year).LessThan(simulation.Epsilon) {
		a.analysis.Value.Insert(year, decimal.Zero)
	}

	return simulation.YearlyImpact{
		Expense: result.Payment,
	}, nil
}

func (a *Loan) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Loan) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

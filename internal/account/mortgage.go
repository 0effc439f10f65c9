package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Mortgage is a home loan. Interest compounds at the configured frequency,
// escrow is collected every active year, and mortgage insurance is charged
// only while the loan-to-value ratio is above the configured limit.
type Mortgage struct {
	accountBase `yaml:",inline"`

	Table             History               `json:"table" yaml:"table"`
	StartOut          domain.YearInput      `json:"startOut" yaml:"startOut"`
	EndOut            domain.YearInput      `json:"endOut" yaml:"endOut"`
	PaymentType       domain.PaymentOptions `json:"paymentType" yaml:"paymentType"`
	PaymentValue      decimal.Decimal       `json:"paymentValue" yaml:"paymentValue"`
	Rate              domain.PercentInput   `json:"rate" yaml:"rate"`
	CompoundTime      decimal.Decimal       `json:"compoundTime" yaml:"compoundTime"`
	MortgageInsurance decimal.Decimal       `json:"mortgageInsurance" yaml:"mortgageInsurance"`
	LtvLimit          decimal.Decimal       `json:"ltvLimit" yaml:"ltvLimit"`
	EscrowValue       decimal.Decimal       `json:"escrowValue" yaml:"escrowValue"`
	HomeValue         decimal.Decimal       `json:"homeValue" yaml:"homeValue"`

	analysis *simulation.LoanTables
}

func (a *Mortgage) Type() Type { return TypeMortgage }

func (a *Mortgage) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
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

func (a *Mortgage) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return nil, nil
}

func (a *Mortgage) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Mortgage) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Mortgage) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, true); err != nil {
		return simulation.YearlyImpact{}, err
	}

	balance := a.analysis.Value.GetOrZero(year)
	if balance.IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("mortgage account %s has a negative balance", a.Name())
	}

	// Compound interest: P*(1 + r/n)^n - P for one year of n periods.
	rate := a.Rate.Value(settings).Div(hundred)
	growth := one.Add(rate.Div(a.CompoundTime)).Pow(a.CompoundTime)
	result.Interest = balance.Mul(growth).Sub(balance)
	a.analysis.Interest.Update(year, result.Interest)
	a.analysis.Value.Update(year, result.Interest)

	if a.dates.YearOut.Contains(year) {
		// Insurance is due until enough principal is paid off.
		loanToValue := a.analysis.Value.GetOrZero(year).Div(a.HomeValue).Mul(hundred)
		insurance := decimal.Zero
		if loanToValue.GreaterThan(a.LtvLimit) {
			insurance = a.MortgageInsurance
		}
		a.analysis.Insurance.Insert(year, insurance)
		a.analysis.Escrow.Insert(year, a.EscrowValue)

		// The payment covers insurance and escrow first; only the rest
		// pays down principal and interest.
		due := a.analysis.Value.GetOrZero(year).Add(insurance).Add(a.EscrowValue)
		result.Payment = a.PaymentType.Value(a.PaymentValue, settings.InflationBase,
			year-a.dates.YearOut.Start, due)
		a.analysis.Payments.Update(year, result.Payment)

		principal := result.Payment.Sub(insurance).Sub(a.EscrowValue)
		a.analysis.Value.Update(year, principal.Neg())
	}

	// Clamp away rounding residue once the loan is effectively paid off.
	if a.analysis.Value.GetOrZero(year).LessThan(simulation.Epsilon) {
		a.analysis.Value.Insert(year, decimal.Zero)
	}

	return simulation.YearlyImpact{
		Expense: result.Payment,
	}, nil
}

func (a *Mortgage) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Mortgage) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

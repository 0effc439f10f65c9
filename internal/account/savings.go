package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Savings is a generic taxable savings account. Earnings are credited
// before the year's contribution, so new contributions start compounding
// the following year.
type Savings struct {
	accountBase `yaml:",inline"`

	Table              History                    `json:"table" yaml:"table"`
	Contributions      History                    `json:"contributions,omitempty" yaml:"contributions,omitempty"`
	Earnings           History                    `json:"earnings,omitempty" yaml:"earnings,omitempty"`
	Withdrawals        History                    `json:"withdrawals,omitempty" yaml:"withdrawals,omitempty"`
	StartIn            domain.YearInput           `json:"startIn" yaml:"startIn"`
	EndIn              domain.YearInput           `json:"endIn" yaml:"endIn"`
	StartOut           domain.YearInput           `json:"startOut" yaml:"startOut"`
	EndOut             domain.YearInput           `json:"endOut" yaml:"endOut"`
	YearlyContribution decimal.Decimal            `json:"yearlyContribution" yaml:"yearlyContribution"`
	ContributionType   domain.ContributionOptions `json:"contributionType" yaml:"contributionType"`
	YearlyReturn       domain.PercentInput        `json:"yearlyReturn" yaml:"yearlyReturn"`
	WithdrawalType     domain.WithdrawalOptions   `json:"withdrawalType" yaml:"withdrawalType"`
	WithdrawalValue    decimal.Decimal            `json:"withdrawalValue" yaml:"withdrawalValue"`
	TaxStatus          domain.TaxStatus           `json:"taxStatus" yaml:"taxStatus"`

	analysis *simulation.SavingsTables
}

func (a *Savings) Type() Type { return TypeSavings }

func (a *Savings) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	if err := errNoLink(linked); err != nil {
		return nil, err
	}
	a.analysis = simulation.NewSavingsTables(a.Table, a.Contributions, nil, a.Earnings, a.Withdrawals)
	dates, err := resolveDates(a, settings, linked)
	if err != nil {
		return nil, err
	}
	a.dates = dates

	impacts := make([]InitialImpact, 0, len(a.Table))
	for year, value := range a.Table {
		impacts = append(impacts, InitialImpact{
			Year:   year,
			Impact: simulation.YearlyImpact{Saving: value},
		})
	}
	return impacts, nil
}

func (a *Savings) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartIn, a.EndIn, settings, linked, domain.EvalStartIn, domain.EvalEndIn)
}

func (a *Savings) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Savings) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Savings) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, true); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.analysis.Value.GetOrZero(year).IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("savings account %s has a negative balance", a.Name())
	}

	result.Earning = a.analysis.Value.GetOrZero(year).Mul(a.YearlyReturn.Value(settings)).Div(decimal.NewFromInt(100))
	a.analysis.Earnings.Update(year, result.Earning)
	a.analysis.Value.Update(year, result.Earning)

	if a.dates.YearIn.Contains(year) {
		result.Contribution = a.ContributionType.Value(a.YearlyContribution, totals.GetIncome(year),
			year-a.dates.YearIn.Start, settings.InflationBase)
	}
	a.analysis.Contributions.Update(year, result.Contribution)
	a.analysis.Value.Update(year, result.Contribution)

	if a.dates.YearOut.Contains(year) {
		result.Withdrawal = a.WithdrawalType.Value(a.WithdrawalValue, settings, a.dates, year,
			a.analysis.Value.GetOrZero(year), a.analysis.Value.GetOrZero(year-1),
			totals.GetCol(year), totals.GetSaving(year-1), a.TaxStatus)
		result.LimitWithdrawal(a.analysis.Value.GetOrZero(year))
	}
	a.analysis.Withdrawals.Update(year, result.Withdrawal)
	a.analysis.Value.Update(year, result.Withdrawal.Neg())

	return simulation.YearlyImpact{
		Expense:       result.Contribution,
		Saving:        result.Contribution.Add(result.Earning).Sub(result.Withdrawal),
		IncomeTaxable: result.Earning,
		Income:        result.Withdrawal,
	}, nil
}

func (a *Savings) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Savings) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Retirement is a tax-advantaged retirement account (401k, IRA, Roth).
// When an employer match is configured the account must link to an income
// account; the match is computed against that income's value each year.
type Retirement struct {
	accountBase `yaml:",inline"`

	Table                 History                    `json:"table" yaml:"table"`
	Contributions         History                    `json:"contributions,omitempty" yaml:"contributions,omitempty"`
	EmployerContributions History                    `json:"employerContributions,omitempty" yaml:"employerContributions,omitempty"`
	Earnings              History                    `json:"earnings,omitempty" yaml:"earnings,omitempty"`
	Withdrawals           History                    `json:"withdrawals,omitempty" yaml:"withdrawals,omitempty"`
	StartIn               domain.YearInput           `json:"startIn" yaml:"startIn"`
	EndIn                 domain.YearInput           `json:"endIn" yaml:"endIn"`
	StartOut              domain.YearInput           `json:"startOut" yaml:"startOut"`
	EndOut                domain.YearInput           `json:"endOut" yaml:"endOut"`
	YearlyContribution    decimal.Decimal            `json:"yearlyContribution" yaml:"yearlyContribution"`
	ContributionType      domain.ContributionOptions `json:"contributionType" yaml:"contributionType"`
	YearlyReturn          domain.PercentInput        `json:"yearlyReturn" yaml:"yearlyReturn"`
	WithdrawalType        domain.WithdrawalOptions   `json:"withdrawalType" yaml:"withdrawalType"`
	WithdrawalValue       decimal.Decimal            `json:"withdrawalValue" yaml:"withdrawalValue"`
	TaxStatus             domain.TaxStatus           `json:"taxStatus" yaml:"taxStatus"`
	IncomeLink            string                     `json:"incomeLink,omitempty" yaml:"incomeLink,omitempty"`
	Matching              *domain.EmployerMatch      `json:"matching,omitempty" yaml:"matching,omitempty"`

	analysis *simulation.SavingsTables
}

func (a *Retirement) Type() Type     { return TypeRetirement }
func (a *Retirement) LinkID() string { return a.IncomeLink }

func (a *Retirement) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	a.analysis = simulation.NewSavingsTables(a.Table, a.Contributions, a.EmployerContributions, a.Earnings, a.Withdrawals)
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

func (a *Retirement) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartIn, a.EndIn, settings, linked, domain.EvalStartIn, domain.EvalEndIn)
}

func (a *Retirement) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Retirement) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Retirement) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, true); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.analysis.Value.GetOrZero(year).IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("retirement account %s has a negative balance", a.Name())
	}

	result.Earning = a.analysis.Value.GetOrZero(year).Mul(a.YearlyReturn.Value(settings)).Div(decimal.NewFromInt(100))
	a.analysis.Earnings.Update(year, result.Earning)
	a.analysis.Value.Update(year, result.Earning)

	if a.dates.YearIn.Contains(year) {
		result.Contribution = a.ContributionType.Value(a.YearlyContribution, totals.GetIncome(year),
			year-a.dates.YearIn.Start, settings.InflationBase)

		if a.Matching != nil {
			if a.IncomeLink == "" {
				return simulation.YearlyImpact{}, fmt.Errorf("retirement account %s has employer matching but no linked income account", a.Name())
			}
			if linkedValue == nil {
				return simulation.YearlyImpact{}, fmt.Errorf("retirement account %s has no linked income value for year %d", a.Name(), year)
			}
			result.EmployerContribution = employerMatch(*a.Matching, result.Contribution, *linkedValue, settings)
		}
	}

	a.analysis.Contributions.Update(year, result.Contribution)
	a.analysis.EmployerContributions.Update(year, result.EmployerContribution)
	a.analysis.Value.Update(year, result.Contribution.Add(result.EmployerContribution))

	if a.dates.YearOut.Contains(year) {
		result.Withdrawal = a.WithdrawalType.Value(a.WithdrawalValue, settings, a.dates, year,
			a.analysis.Value.GetOrZero(year), a.analysis.Value.GetOrZero(year-1),
			totals.GetCol(year), totals.GetSaving(year-1), a.TaxStatus)
		result.LimitWithdrawal(a.analysis.Value.GetOrZero(year))
	}
	a.analysis.Withdrawals.Update(year, result.Withdrawal)
	a.analysis.Value.Update(year, result.Withdrawal.Neg())

	saving := result.Contribution.Add(result.EmployerContribution).Add(result.Earning).Sub(result.Withdrawal)
	impact := simulation.YearlyImpact{
		Expense: result.Contribution,
		Saving:  saving,
		Income:  result.Withdrawal,
	}
	switch a.TaxStatus {
	case domain.ContributeTaxedEarningsUntaxedWhenUsed:
		// Roth style: nothing further to tax.
	case domain.ContributeTaxedEarningsTaxed:
		impact.IncomeTaxable = result.Earning
	case domain.ContributePretaxTaxedWhenUsed:
		impact.IncomeTaxable = result.Withdrawal.Sub(result.Contribution)
	case domain.ContributePretaxUntaxedWhenUsed:
		impact.IncomeTaxable = result.Contribution.Neg()
	default:
		return simulation.YearlyImpact{}, fmt.Errorf("unknown tax status %q on retirement account %s", string(a.TaxStatus), a.Name())
	}
	return impact, nil
}

// employerMatch computes the employer's contribution: amount percent of the
// employee contribution, capped at limit percent of the linked income.
func employerMatch(m domain.EmployerMatch, contribution, linkedIncome decimal.Decimal, settings *domain.Settings) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	amount := m.Amount.Value(settings).Div(hundred)
	limit := m.Limit.Value(settings).Div(hundred)
	if contribution.GreaterThanOrEqual(limit.Mul(linkedIncome)) {
		return linkedIncome.Mul(amount).Mul(limit)
	}
	return contribution.Mul(amount)
}

func (a *Retirement) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Retirement) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

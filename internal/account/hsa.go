package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Hsa is a health savings account. Each year it withdraws as much of the
// outstanding healthcare expense as its balance covers; whatever remains is
// settled from net worth at year end. Expense accounts therefore simulate
// before HSAs.
type Hsa struct {
	accountBase `yaml:",inline"`

	Table                History                    `json:"table" yaml:"table"`
	StartIn              domain.YearInput           `json:"startIn" yaml:"startIn"`
	EndIn                domain.YearInput           `json:"endIn" yaml:"endIn"`
	StartOut             domain.YearInput           `json:"startOut" yaml:"startOut"`
	EndOut               domain.YearInput           `json:"endOut" yaml:"endOut"`
	YearlyContribution   decimal.Decimal            `json:"yearlyContribution" yaml:"yearlyContribution"`
	ContributionType     domain.ContributionOptions `json:"contributionType" yaml:"contributionType"`
	EmployerContribution decimal.Decimal            `json:"employerContribution" yaml:"employerContribution"`
	YearlyReturn         domain.PercentInput        `json:"yearlyReturn" yaml:"yearlyReturn"`
	TaxStatus            domain.TaxStatus           `json:"taxStatus" yaml:"taxStatus"`

	analysis *simulation.SavingsTables
}

func (a *Hsa) Type() Type { return TypeHsa }

func (a *Hsa) Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error) {
	if err := errNoLink(linked); err != nil {
		return nil, err
	}
	a.analysis = simulation.NewSavingsTables(a.Table, nil, nil, nil, nil)
	dates, err := resolveDates(a, settings, linked)
	if err != nil {
		return nil, err
	}
	a.dates = dates

	impacts := make([]InitialImpact, 0, len(a.Table))
	for year, value := range a.Table {
		impacts = append(impacts, InitialImpact{
			Year:   year,
			Impact: simulation.YearlyImpact{Hsa: value},
		})
	}
	return impacts, nil
}

func (a *Hsa) RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartIn, a.EndIn, settings, linked, domain.EvalStartIn, domain.EvalEndIn)
}

func (a *Hsa) RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error) {
	return resolveRange(a.StartOut, a.EndOut, settings, linked, domain.EvalStartOut, domain.EvalEndOut)
}

func (a *Hsa) Value(year int) (decimal.Decimal, bool) {
	return a.analysis.Value.Get(year)
}

func (a *Hsa) Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error) {
	var result simulation.WorkingValues
	if err := a.analysis.AddYear(year, true); err != nil {
		return simulation.YearlyImpact{}, err
	}

	if a.analysis.Value.GetOrZero(year).IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("hsa account %s has a negative balance", a.Name())
	}

	result.Earning = a.analysis.Value.GetOrZero(year).Mul(a.YearlyReturn.Value(settings)).Div(decimal.NewFromInt(100))
	a.analysis.Earnings.Update(year, result.Earning)
	a.analysis.Value.Update(year, result.Earning)

	if a.dates.YearIn.Contains(year) {
		duration := year - a.dates.YearIn.Start
		result.Contribution = a.ContributionType.Value(a.YearlyContribution, totals.GetIncome(year),
			duration, settings.InflationBase)
		// The employer side never scales with income; a percent-of-income
		// account contributes the employer amount as fixed-with-inflation.
		employerType := a.ContributionType
		if employerType == domain.ContributionPercentOfIncome {
			employerType = domain.ContributionFixedWithInflation
		}
		result.EmployerContribution = employerType.Value(a.EmployerContribution, totals.GetIncome(year),
			duration, settings.InflationBase)
	}
	a.analysis.Contributions.Update(year, result.Contribution)
	a.analysis.EmployerContributions.Update(year, result.EmployerContribution)
	a.analysis.Value.Update(year, result.Contribution.Add(result.EmployerContribution))

	// Cover as much of the year's unpaid healthcare expense as the balance
	// allows. Unpaid healthcare expenses are positive values.
	outstanding := totals.GetHealthcareExpense(year)
	if outstanding.IsNegative() {
		return simulation.YearlyImpact{}, fmt.Errorf("healthcare expense for year %d is negative", year)
	}
	if a.dates.YearOut.Contains(year) {
		balance := a.analysis.Value.GetOrZero(year)
		if outstanding.LessThan(balance) {
			result.Withdrawal = outstanding
		} else {
			result.Withdrawal = balance
		}
	}
	a.analysis.Withdrawals.Update(year, result.Withdrawal)
	a.analysis.Value.Update(year, result.Withdrawal.Neg())

	return simulation.YearlyImpact{
		HealthcareExpense: result.Withdrawal.Neg(),
		Hsa:               result.Contribution.Add(result.EmployerContribution).Add(result.Earning).Sub(result.Withdrawal),
	}, nil
}

func (a *Hsa) PlotData() []simulation.PlotSeries {
	return a.analysis.PlotData()
}

func (a *Hsa) Write(filepath string) error {
	return a.analysis.Write(filepath)
}

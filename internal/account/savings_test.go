package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast/fincast/internal/domain"
)

func newTestSavings() *Savings {
	return &Savings{
		accountBase:        accountBase{Label: "brokerage"},
		StartIn:            domain.ConstantYear(2020),
		EndIn:              domain.ConstantYear(2040),
		StartOut:           domain.ConstantYear(2050),
		EndOut:             domain.ConstantYear(2060),
		YearlyContribution: d(500),
		ContributionType:   domain.ContributionFixed,
		YearlyReturn:       domain.ConstantPercentFloat(20),
		WithdrawalType:     domain.WithdrawalFixed,
		TaxStatus:          domain.ContributeTaxedEarningsTaxed,
	}
}

func TestSavings_EarningsCreditBeforeContribution(t *testing.T) {
	s := testSettings()
	acct := newTestSavings()
	_, err := acct.Init(nil, s)
	require.NoError(t, err)
	totals := emptyTotals(t, 2020, 2021)

	impact, err := acct.Simulate(2020, nil, totals, s)
	require.NoError(t, err)

	// Starting from zero, the first year is contribution only.
	assertDecimal(t, 500, impact.Expense)
	assertDecimal(t, 500, impact.Saving)
	assert.True(t, impact.IncomeTaxable.IsZero(), "Nothing to earn on in the first year")
	v, ok := acct.Value(2020)
	require.True(t, ok)
	assertDecimal(t, 500, v)

	impact, err = acct.Simulate(2021, nil, totals, s)
	require.NoError(t, err)

	// 20 percent on last year's 500, then the new contribution.
	assertDecimal(t, 100, impact.IncomeTaxable)
	assertDecimal(t, 600, impact.Saving)
	v, _ = acct.Value(2021)
	assertDecimal(t, 1100, v)
}

func TestSavings_WithdrawalCappedAtBalance(t *testing.T) {
	s := testSettings()
	acct := newTestSavings()
	acct.Table = map[int]decimal.Decimal{2019: d(100)}
	acct.StartIn = domain.ConstantYear(2000)
	acct.EndIn = domain.ConstantYear(2010)
	acct.StartOut = domain.ConstantYear(2020)
	acct.EndOut = domain.ConstantYear(2030)
	acct.YearlyReturn = domain.ConstantPercentFloat(0)
	acct.WithdrawalValue = d(500)
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	impact, err := acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	assertDecimal(t, 100, impact.Income, "Cannot withdraw more than the account holds")
	assertDecimal(t, -100, impact.Saving)
	v, _ := acct.Value(2020)
	assert.True(t, v.IsZero())
}

func TestSavings_PercentOfIncomeContribution(t *testing.T) {
	s := testSettings()
	acct := newTestSavings()
	acct.ContributionType = domain.ContributionPercentOfIncome
	acct.YearlyContribution = d(25)
	_, err := acct.Init(nil, s)
	require.NoError(t, err)
	totals := emptyTotals(t, 2020)
	totals.Update(2020, yearlyIncome(10000))

	impact, err := acct.Simulate(2020, nil, totals, s)
	require.NoError(t, err)

	assertDecimal(t, 2500, impact.Expense, "25 percent of the year's income")
}

func TestSavings_NegativeBalanceFails(t *testing.T) {
	s := testSettings()
	acct := newTestSavings()
	acct.Table = map[int]decimal.Decimal{2019: d(-100)}
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	_, err = acct.Simulate(2020, nil, emptyTotals(t, 2020), s)

	assert.Error(t, err, "A savings account must never go negative")
}

func TestSavings_InitReportsHistory(t *testing.T) {
	s := testSettings()
	acct := newTestSavings()
	acct.Table = map[int]decimal.Decimal{2018: d(900), 2019: d(1000)}

	impacts, err := acct.Init(nil, s)
	require.NoError(t, err)

	assert.Len(t, impacts, 2)
	for _, imp := range impacts {
		assert.True(t, imp.Impact.Saving.IsPositive(), "History lands in the saving total")
	}
}

func TestSavings_InitRejectsLinkedDates(t *testing.T) {
	acct := newTestSavings()

	_, err := acct.Init(&domain.Dates{}, testSettings())

	assert.Error(t, err, "Savings accounts cannot be linked")
}

package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast/fincast/internal/domain"
)

func newTestCollege() *College {
	return &College{
		accountBase:        accountBase{Label: "529"},
		Table:              map[int]decimal.Decimal{2019: d(1000)},
		StartIn:            domain.ConstantYear(2020),
		EndIn:              domain.ConstantYear(2035),
		StartOut:           domain.ConstantYear(2036),
		EndOut:             domain.ConstantYear(2040),
		YearlyContribution: d(500),
		ContributionType:   domain.ContributionFixed,
		YearlyReturn:       domain.ConstantPercentFloat(10),
		WithdrawalType:     domain.WithdrawalFixed,
		TaxStatus:          domain.ContributeTaxedEarningsUntaxedWhenUsed,
	}
}

func TestCollege_ContributionIsTheOnlyImpact(t *testing.T) {
	s := testSettings()
	acct := newTestCollege()
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	impact, err := acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	assertDecimal(t, 500, impact.Expense)
	assert.True(t, impact.Saving.IsZero(), "A 529 balance is earmarked, not general savings")
	assert.True(t, impact.IncomeTaxable.IsZero())
	v, _ := acct.Value(2020)
	assertDecimal(t, 1600, v, "1000 history plus 100 earnings plus the 500 contribution")
}

func TestCollege_OnlyTaxedInUntaxedOutSupported(t *testing.T) {
	s := testSettings()
	acct := newTestCollege()
	acct.TaxStatus = domain.ContributePretaxTaxedWhenUsed
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	_, err = acct.Simulate(2020, nil, emptyTotals(t, 2020), s)

	assert.Error(t, err, "Unsupported tax treatments must fail rather than mislead")
}

func TestCollege_WithdrawalCappedAtBalance(t *testing.T) {
	s := testSettings()
	acct := newTestCollege()
	acct.StartIn = domain.ConstantYear(2000)
	acct.EndIn = domain.ConstantYear(2010)
	acct.StartOut = domain.ConstantYear(2020)
	acct.YearlyReturn = domain.ConstantPercentFloat(0)
	acct.WithdrawalValue = d(5000)
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	_, err = acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	v, _ := acct.Value(2020)
	assert.True(t, v.IsZero(), "The whole balance is spent and nothing more")
	assertDecimal(t, 1000, acct.analysis.Withdrawals.GetOrZero(2020))
}

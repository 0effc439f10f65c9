package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast/fincast/internal/domain"
)

func newTestMortgage() *Mortgage {
	return &Mortgage{
		accountBase:       accountBase{Label: "house"},
		Table:             map[int]decimal.Decimal{2019: d(100000)},
		StartOut:          domain.ConstantYear(2020),
		EndOut:            domain.ConstantYear(2050),
		PaymentType:       domain.PaymentFixed,
		PaymentValue:      d(20000),
		Rate:              domain.ConstantPercentFloat(12),
		CompoundTime:      d(12),
		MortgageInsurance: d(100),
		LtvLimit:          d(80),
		EscrowValue:       d(1200),
		HomeValue:         d(125000),
	}
}

func TestMortgage_MonthlyCompounding(t *testing.T) {
	s := testSettings()
	acct := newTestMortgage()
	acct.PaymentValue = decimal.Zero
	acct.MortgageInsurance = decimal.Zero
	acct.EscrowValue = decimal.Zero
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	_, err = acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	// 100000 * (1 + 0.12/12)^12, one year of monthly compounding.
	v, _ := acct.Value(2020)
	assertDecimal(t, 112682.50, v)
}

func TestMortgage_PaymentCoversInsuranceAndEscrowFirst(t *testing.T) {
	s := testSettings()
	acct := newTestMortgage()
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	impact, err := acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	assertDecimal(t, 20000, impact.Expense)
	// 90 percent loan-to-value, so insurance is due this year.
	assertDecimal(t, 100, acct.analysis.Insurance.GetOrZero(2020))
	assertDecimal(t, 1200, acct.analysis.Escrow.GetOrZero(2020))
	// Only 20000 - 100 - 1200 pays down the balance.
	v, _ := acct.Value(2020)
	assertDecimal(t, 93982.50, v)
}

func TestMortgage_NoInsuranceBelowLtvLimit(t *testing.T) {
	s := testSettings()
	acct := newTestMortgage()
	acct.Table = map[int]decimal.Decimal{2019: d(80000)}
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	_, err = acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	assert.True(t, acct.analysis.Insurance.GetOrZero(2020).IsZero(),
		"72 percent loan-to-value is under the 80 percent limit")
}

func TestMortgage_InterestAccruesOutsidePaymentWindow(t *testing.T) {
	s := testSettings()
	acct := newTestMortgage()
	acct.StartOut = domain.ConstantYear(2025)
	_, err := acct.Init(nil, s)
	require.NoError(t, err)

	impact, err := acct.Simulate(2020, nil, emptyTotals(t, 2020), s)
	require.NoError(t, err)

	assert.True(t, impact.Expense.IsZero())
	v, _ := acct.Value(2020)
	assertDecimal(t, 112682.50, v, "Interest compounds whether or not payments are due")
}

func TestMortgage_PayoffClampsToZero(t *testing.T) {
	s := testSettings()
	acct := newTestMortgage()
	acct.Table = map[int]decimal.Decimal{2019: d(10000)}
	acct.PaymentValue = d(50000)
	acct.MortgageInsurance = decimal.Zero
	acct.EscrowValue = decimal.Zero
	acct.LtvLimit = d(200)
	_, err := acct.Init(nil, s)
	require.NoError(t, err)
	totals := emptyTotals(t, 2020, 2021)

	impact, err := acct.Simulate(2020, nil, totals, s)
	require.NoError(t, err)

	// The payment caps at the amount due, which retires the loan.
	assertDecimal(t, 11268.25, impact.Expense)
	v, _ := acct.Value(2020)
	assert.True(t, v.IsZero())

	impact, err = acct.Simulate(2021, nil, totals, s)
	require.NoError(t, err)
	assert.True(t, impact.Expense.IsZero(), "A retired mortgage costs nothing")
}

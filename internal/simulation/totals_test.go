package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearlyTotals_AddRejectsDuplicateYear(t *testing.T) {
	totals := NewYearlyTotals()

	require.NoError(t, totals.Add(2020, false))
	err := totals.Add(2020, true)

	assert.Error(t, err, "Historical years must not be overwritten")
}

func TestYearlyTotals_AddPullsStocksForward(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{Saving: d(1000), Hsa: d(200), Income: d(5000)})
	totals.DepositIncomeInNet(2020)

	require.NoError(t, totals.Add(2021, true))

	assert.True(t, totals.GetNet(2021).Equal(d(5000)), "Net should carry forward")
	assert.True(t, totals.GetSaving(2021).Equal(d(1000)), "Saving should carry forward")
	assert.True(t, totals.GetHsa(2021).Equal(d(200)), "HSA should carry forward")
	assert.True(t, totals.GetIncome(2021).IsZero(), "Income is a flow and starts at zero")
	assert.True(t, totals.GetExpense(2021).IsZero(), "Expense is a flow and starts at zero")
}

func TestYearlyTotals_AddWithoutPullStartsAtZero(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{Saving: d(1000)})

	require.NoError(t, totals.Add(2021, false))

	assert.True(t, totals.GetSaving(2021).IsZero())
}

func TestYearlyTotals_UpdateNeverTouchesNet(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))

	totals.Update(2020, YearlyImpact{Income: d(5000), Expense: d(2000), Saving: d(100)})

	assert.True(t, totals.GetNet(2020).IsZero(), "Only settlement moves net")
}

func TestYearlyTotals_Settlement(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{
		Income:            d(10000),
		IncomeTaxable:     d(8000),
		Expense:           d(3000),
		HealthcareExpense: d(500),
	})

	totals.DepositIncomeInNet(2020)
	totals.PayIncomeTaxFromNet(2020, d(20))
	totals.PayExpensesFromNet(2020)
	totals.PayHealthcareExpensesFromNet(2020)

	// 10000 - 1600 tax - 3000 expenses - 500 unpaid healthcare
	assert.True(t, totals.GetNet(2020).Equal(d(4900)), "net was %s", totals.GetNet(2020))
	assert.True(t, totals.GetTaxBurden(2020).Equal(d(1600)))
}

func TestYearlyTotals_PayHealthcareClearsOutstanding(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{HealthcareExpense: d(500)})

	totals.PayHealthcareExpensesFromNet(2020)

	assert.True(t, totals.GetNet(2020).Equal(d(-500)), "net was %s", totals.GetNet(2020))
	assert.True(t, totals.GetHealthcareExpense(2020).IsZero(),
		"a paid healthcare expense must not stay outstanding, got %s", totals.GetHealthcareExpense(2020))

	// Paying again is a no-op once the expense is settled.
	totals.PayHealthcareExpensesFromNet(2020)
	assert.True(t, totals.GetNet(2020).Equal(d(-500)))
}

func TestYearlyTotals_PayHealthcareIgnoresNonPositive(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{HealthcareExpense: d(-100)})

	totals.PayHealthcareExpensesFromNet(2020)

	assert.True(t, totals.GetNet(2020).IsZero(), "only a positive outstanding expense touches net")
}

func TestYearlyTotals_NegativeTaxableIncomeRefunds(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))
	totals.Update(2020, YearlyImpact{IncomeTaxable: d(-1000)})

	totals.PayIncomeTaxFromNet(2020, d(20))

	assert.True(t, totals.GetNet(2020).Equal(d(200)), "A negative taxable income should credit net")
	assert.True(t, totals.GetTaxBurden(2020).Equal(d(-200)))
}

func TestYearlyTotals_GettersZeroWhenAbsent(t *testing.T) {
	totals := NewYearlyTotals()

	assert.True(t, totals.GetIncome(1999).IsZero())
	assert.True(t, totals.GetSaving(1999).IsZero())
	assert.True(t, totals.GetNet(1999).IsZero())
	assert.False(t, totals.HasYear(1999))
}

func TestYearlyTotals_PlotDataCoversAllTables(t *testing.T) {
	totals := NewYearlyTotals()
	require.NoError(t, totals.Add(2020, false))

	series := totals.PlotData()

	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	assert.Contains(t, names, "net")
	assert.Contains(t, names, "taxBurden")
	assert.Len(t, series, 9)
}

func TestWorkingValues_Limits(t *testing.T) {
	w := WorkingValues{Withdrawal: d(500), Payment: d(500)}

	w.LimitWithdrawal(d(100))
	w.LimitPayment(d(250))

	assert.True(t, w.Withdrawal.Equal(d(100)))
	assert.True(t, w.Payment.Equal(d(250)))

	w.LimitWithdrawal(d(200))
	assert.True(t, w.Withdrawal.Equal(d(100)), "Limit should only ever lower the value")
}

func TestSavingsTables_AddYear(t *testing.T) {
	tables := NewSavingsTables(map[int]decimal.Decimal{2019: d(400)}, nil, nil, nil, nil)

	require.NoError(t, tables.AddYear(2020, true))

	assert.True(t, tables.Value.GetOrZero(2020).Equal(d(400)), "Balance should pull forward")
	assert.True(t, tables.Contributions.GetOrZero(2020).IsZero())
	assert.Error(t, tables.AddYear(2020, true), "Duplicate years should be rejected")
}

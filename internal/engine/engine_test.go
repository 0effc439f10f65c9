package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast/fincast/internal/account"
	"github.com/fincast/fincast/internal/domain"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testDocument runs five years, 2020 through 2024, with a flat salary.
func testDocument(accounts map[string]account.Account) *account.UserData {
	wrapped := make(map[string]*account.Wrapper, len(accounts)+1)
	wrapped["salary"] = &account.Wrapper{Account: &account.Income{
		Base:    d(10000),
		StartIn: domain.ConstantYear(2020),
		EndIn:   domain.ConstantYear(2040),
		Raise:   domain.ConstantPercentFloat(0),
	}}
	for id, acct := range accounts {
		wrapped[id] = &account.Wrapper{Account: acct}
	}
	return &account.UserData{
		Settings: domain.Settings{
			AgeRetire:              40,
			AgeDie:                 50,
			YearBorn:               1975,
			YearStart:              2020,
			InflationBase:          decimal.NewFromInt(5),
			TaxIncome:              decimal.NewFromInt(20),
			TaxCapitalGains:        decimal.NewFromInt(10),
			RetirementCostOfLiving: decimal.NewFromInt(100),
		},
		Accounts: wrapped,
	}
}

func assertDecimal(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	diff := got.Sub(decimal.NewFromFloat(want)).Abs()
	if !assert.True(t, diff.LessThan(d(0.01)), msgAndArgs...) {
		t.Logf("want %v, got %s", want, got)
	}
}

func TestRunAnalysis_NetAccumulatesAcrossYears(t *testing.T) {
	data := testDocument(map[string]account.Account{
		"groceries": &account.Expense{
			StartOut:     domain.ConstantYear(2020),
			EndOut:       domain.ConstantYear(2040),
			ExpenseType:  domain.ExpenseFixed,
			ExpenseValue: d(3000),
		},
	})
	data.Accounts["groceries"].Account.(*account.Expense).Label = "groceries"
	data.Accounts["salary"].Account.(*account.Income).Label = "salary"

	result, err := NewEngine().RunAnalysis(context.Background(), data)
	require.NoError(t, err)

	// Each year: 10000 income, 2000 tax, 3000 expenses.
	years := result.Totals.Years()
	assert.Equal(t, []int{2020, 2021, 2022, 2023, 2024}, years)
	assertDecimal(t, 5000, result.Totals.GetNet(2020))
	assertDecimal(t, 25000, result.Totals.GetNet(2024))
	assertDecimal(t, 2000, result.Totals.GetTaxBurden(2024))
	assert.Contains(t, result.PlotData, "salary")
	assert.Contains(t, result.PlotData, "groceries")
}

func TestRunAnalysis_HistoricalYearIsPreserved(t *testing.T) {
	data := testDocument(map[string]account.Account{
		"brokerage": &account.Savings{
			Table:              map[int]decimal.Decimal{2021: d(800)},
			StartIn:            domain.ConstantYear(2030),
			EndIn:              domain.ConstantYear(2035),
			StartOut:           domain.ConstantYear(2036),
			EndOut:             domain.ConstantYear(2040),
			ContributionType:   domain.ContributionFixed,
			YearlyReturn:       domain.ConstantPercentFloat(10),
			WithdrawalType:     domain.WithdrawalFixed,
			TaxStatus:          domain.ContributeTaxedEarningsTaxed,
			YearlyContribution: decimal.Zero,
		},
	})

	result, err := NewEngine().RunAnalysis(context.Background(), data)
	require.NoError(t, err)

	// 2021 holds recorded data and is not simulated over.
	assertDecimal(t, 800, result.Totals.GetSaving(2021))
	assert.True(t, result.Totals.GetIncome(2021).IsZero(), "No income simulates into a historical year")
	assert.True(t, result.Totals.GetNet(2021).IsZero())

	// Simulation resumes in 2022 and the balance keeps earning.
	assertDecimal(t, 10000, result.Totals.GetIncome(2022))
	assertDecimal(t, 880, result.Totals.GetSaving(2022), "The recorded balance grows by its 10 percent return")
}

func TestRunAnalysis_EmployerMatchThroughLink(t *testing.T) {
	data := testDocument(map[string]account.Account{
		"401k": &account.Retirement{
			StartIn:            domain.ConstantYear(2020),
			EndIn:              domain.ConstantYear(2040),
			StartOut:           domain.ConstantYear(2041),
			EndOut:             domain.ConstantYear(2050),
			YearlyContribution: d(500),
			ContributionType:   domain.ContributionFixed,
			YearlyReturn:       domain.ConstantPercentFloat(0),
			WithdrawalType:     domain.WithdrawalFixed,
			TaxStatus:          domain.ContributeTaxedEarningsUntaxedWhenUsed,
			IncomeLink:         "salary",
			Matching: &domain.EmployerMatch{
				Amount: domain.ConstantPercentFloat(50),
				Limit:  domain.ConstantPercentFloat(6),
			},
		},
	})

	result, err := NewEngine().RunAnalysis(context.Background(), data)
	require.NoError(t, err)

	// Income simulates first, so the link sees this year's 10000 salary:
	// 500 is under the 600 limit and the employer adds 250.
	assertDecimal(t, 750, result.Totals.GetSaving(2020))
}

func TestRunAnalysis_MissingLinkTargetFails(t *testing.T) {
	data := testDocument(map[string]account.Account{
		"401k": &account.Retirement{
			StartIn:          domain.ConstantYear(2020),
			EndIn:            domain.ConstantYear(2040),
			StartOut:         domain.ConstantYear(2041),
			EndOut:           domain.ConstantYear(2050),
			ContributionType: domain.ContributionFixed,
			YearlyReturn:     domain.ConstantPercentFloat(0),
			WithdrawalType:   domain.WithdrawalFixed,
			TaxStatus:        domain.ContributeTaxedEarningsUntaxedWhenUsed,
			IncomeLink:       "paycheck",
		},
	})

	_, err := NewEngine().RunAnalysis(context.Background(), data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "paycheck")
}

func TestRunAnalysis_CancelledContext(t *testing.T) {
	data := testDocument(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().RunAnalysis(ctx, data)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetLogger_NilRestoresNop(t *testing.T) {
	e := NewEngine()

	e.SetLogger(nil)

	assert.NotNil(t, e.Logger)
}

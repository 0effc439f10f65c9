package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testSettings() *domain.Settings {
	return &domain.Settings{
		AgeRetire:              50,
		AgeDie:                 100,
		YearBorn:               1980,
		YearStart:              2000,
		InflationBase:          decimal.NewFromInt(5),
		TaxIncome:              decimal.NewFromInt(20),
		TaxCapitalGains:        decimal.NewFromInt(10),
		RetirementCostOfLiving: decimal.NewFromInt(80),
	}
}

// assertDecimal checks equality within the simulation's rounding tolerance.
func assertDecimal(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	diff := got.Sub(decimal.NewFromFloat(want)).Abs()
	if !assert.True(t, diff.LessThan(d(0.01)), msgAndArgs...) {
		t.Logf("want %v, got %s", want, got)
	}
}

// emptyTotals gives accounts a totals sheet with the year opened.
func emptyTotals(t *testing.T, years ...int) *simulation.YearlyTotals {
	t.Helper()
	totals := simulation.NewYearlyTotals()
	for _, year := range years {
		if err := totals.Add(year, false); err != nil {
			t.Fatalf("failed to open year %d: %v", year, err)
		}
	}
	return totals
}

// yearlyIncome builds an impact that only carries income.
func yearlyIncome(v float64) simulation.YearlyImpact {
	return simulation.YearlyImpact{Income: d(v), IncomeTaxable: d(v)}
}

func TestTypeOrder_IncomeFirstExpensesBeforeHsa(t *testing.T) {
	order := TypeOrder()

	assert.Equal(t, TypeIncome, order[0], "Income must simulate first")
	idx := make(map[Type]int, len(order))
	for i, typ := range order {
		idx[typ] = i
	}
	assert.Less(t, idx[TypeExpense], idx[TypeHsa],
		"HSAs need the year's healthcare expenses before they can withdraw")
	assert.Len(t, order, 9)
}

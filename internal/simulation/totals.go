package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// YearlyImpact is the footprint one account leaves on a single simulated
// year. Positive values flow in the direction the field name implies; an
// HSA withdrawal, for example, shows up as a negative HealthcareExpense
// because it pays down the year's outstanding healthcare costs.
type YearlyImpact struct {
	Expense           decimal.Decimal
	HealthcareExpense decimal.Decimal
	Col               decimal.Decimal
	Saving            decimal.Decimal
	Hsa               decimal.Decimal
	IncomeTaxable     decimal.Decimal
	Income            decimal.Decimal
}

// YearlyTotals accumulates every account's impact, year by year. Net,
// Saving and Hsa are stocks that carry across years; the rest are flows
// that reset to zero when a year is added.
type YearlyTotals struct {
	Net               *Table
	Expense           *Table
	HealthcareExpense *Table
	Col               *Table
	Saving            *Table
	Hsa               *Table
	IncomeTaxable     *Table
	Income            *Table
	TaxBurden         *Table
}

// NewYearlyTotals creates an empty totals set.
func NewYearlyTotals() *YearlyTotals {
	return &YearlyTotals{
		Net:               NewTable(),
		Expense:           NewTable(),
		HealthcareExpense: NewTable(),
		Col:               NewTable(),
		Saving:            NewTable(),
		Hsa:               NewTable(),
		IncomeTaxable:     NewTable(),
		Income:            NewTable(),
		TaxBurden:         NewTable(),
	}
}

// HasYear reports whether the year is already tracked.
func (t *YearlyTotals) HasYear(year int) bool {
	_, ok := t.Net.Get(year)
	return ok
}

// Add registers a new year. With pullForward set, the stocks (net, saving,
// hsa) carry their most recent value into the new year; flows always start
// at zero. Adding a year that already exists is an error so historical data
// cannot be silently overwritten.
func (t *YearlyTotals) Add(year int, pullForward bool) error {
	if t.HasYear(year) {
		return fmt.Errorf("year %d already exists in yearly totals", year)
	}
	if pullForward {
		t.Net.Insert(year, t.Net.MostRecentValue(year))
		t.Saving.Insert(year, t.Saving.MostRecentValue(year))
		t.Hsa.Insert(year, t.Hsa.MostRecentValue(year))
	} else {
		t.Net.Insert(year, decimal.Zero)
		t.Saving.Insert(year, decimal.Zero)
		t.Hsa.Insert(year, decimal.Zero)
	}
	t.Expense.Insert(year, decimal.Zero)
	t.HealthcareExpense.Insert(year, decimal.Zero)
	t.Col.Insert(year, decimal.Zero)
	t.IncomeTaxable.Insert(year, decimal.Zero)
	t.Income.Insert(year, decimal.Zero)
	t.TaxBurden.Insert(year, decimal.Zero)
	return nil
}

// Update folds an account's impact into the year. Net is only ever changed
// by the year-end settlement, never here.
func (t *YearlyTotals) Update(year int, impact YearlyImpact) {
	t.Expense.Update(year, impact.Expense)
	t.HealthcareExpense.Update(year, impact.HealthcareExpense)
	t.Col.Update(year, impact.Col)
	t.Saving.Update(year, impact.Saving)
	t.Hsa.Update(year, impact.Hsa)
	t.IncomeTaxable.Update(year, impact.IncomeTaxable)
	t.Income.Update(year, impact.Income)
}

// DepositIncomeInNet moves the year's income into net worth.
func (t *YearlyTotals) DepositIncomeInNet(year int) {
	t.Net.Update(year, t.Income.GetOrZero(year))
}

// PayIncomeTaxFromNet charges income tax on the year's taxable income at
// the given percent rate. Negative taxable income yields a refund.
func (t *YearlyTotals) PayIncomeTaxFromNet(year int, taxRate decimal.Decimal) {
	tax := t.IncomeTaxable.GetOrZero(year).Mul(taxRate).Div(decimal.NewFromInt(100))
	t.Net.Update(year, tax.Neg())
	t.TaxBurden.Insert(year, tax)
}

// PayExpensesFromNet deducts the year's accumulated expenses from net worth.
func (t *YearlyTotals) PayExpensesFromNet(year int) {
	t.Net.Update(year, t.Expense.GetOrZero(year).Neg())
}

// PayHealthcareExpensesFromNet deducts whatever healthcare expense is still
// outstanding after HSA withdrawals, then marks it paid.
func (t *YearlyTotals) PayHealthcareExpensesFromNet(year int) {
	outstanding := t.HealthcareExpense.GetOrZero(year)
	if outstanding.IsPositive() {
		t.Net.Update(year, outstanding.Neg())
		t.HealthcareExpense.Insert(year, decimal.Zero)
	}
}

// GetIncome returns the year's total income, or zero when absent.
func (t *YearlyTotals) GetIncome(year int) decimal.Decimal {
	return t.Income.GetOrZero(year)
}

// GetCol returns the year's total cost of living, or zero when absent.
func (t *YearlyTotals) GetCol(year int) decimal.Decimal {
	return t.Col.GetOrZero(year)
}

// GetSaving returns the year's total savings balance, or zero when absent.
func (t *YearlyTotals) GetSaving(year int) decimal.Decimal {
	return t.Saving.GetOrZero(year)
}

// GetExpense returns the year's total expenses, or zero when absent.
func (t *YearlyTotals) GetExpense(year int) decimal.Decimal {
	return t.Expense.GetOrZero(year)
}

// GetHealthcareExpense returns the year's outstanding healthcare expense.
func (t *YearlyTotals) GetHealthcareExpense(year int) decimal.Decimal {
	return t.HealthcareExpense.GetOrZero(year)
}

// GetHsa returns the year's total HSA balance, or zero when absent.
func (t *YearlyTotals) GetHsa(year int) decimal.Decimal {
	return t.Hsa.GetOrZero(year)
}

// GetNet returns the year's net worth, or zero when absent.
func (t *YearlyTotals) GetNet(year int) decimal.Decimal {
	return t.Net.GetOrZero(year)
}

// GetTaxBurden returns the year's income tax, or zero when absent.
func (t *YearlyTotals) GetTaxBurden(year int) decimal.Decimal {
	return t.TaxBurden.GetOrZero(year)
}

// Years returns every simulated year in ascending order.
func (t *YearlyTotals) Years() []int {
	return t.Net.Years()
}

// PlotData returns one series per totals table.
func (t *YearlyTotals) PlotData() []PlotSeries {
	return []PlotSeries{
		seriesFrom("net", t.Net),
		seriesFrom("income", t.Income),
		seriesFrom("incomeTaxable", t.IncomeTaxable),
		seriesFrom("taxBurden", t.TaxBurden),
		seriesFrom("expense", t.Expense),
		seriesFrom("healthcareExpense", t.HealthcareExpense),
		seriesFrom("col", t.Col),
		seriesFrom("saving", t.Saving),
		seriesFrom("hsa", t.Hsa),
	}
}

// Write dumps the whole grid to a CSV file, one row per year.
func (t *YearlyTotals) Write(filepath string) error {
	return writeCSV(filepath,
		[]string{"net", "income", "incomeTaxable", "taxBurden", "expense", "healthcareExpense", "col", "saving", "hsa"},
		[]*Table{t.Net, t.Income, t.IncomeTaxable, t.TaxBurden, t.Expense, t.HealthcareExpense, t.Col, t.Saving, t.Hsa})
}

package domain

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// growWithInflation compounds an amount at the given percent rate over a
// whole number of years.
func growWithInflation(initial, inflation decimal.Decimal, years int) decimal.Decimal {
	rate := one.Add(inflation.Div(hundred))
	return initial.Mul(rate.Pow(decimal.NewFromInt(int64(years))))
}

// TaxStatus describes how an account's cash flows are treated for taxes.
type TaxStatus string

const (
	// Contributions from taxed income; earnings and withdrawals untaxed (Roth, 529, HSA).
	ContributeTaxedEarningsUntaxedWhenUsed TaxStatus = "contributeTaxedEarningsUntaxedWhenUsed"
	// Contributions from taxed income; earnings taxed yearly (brokerage, bank savings).
	ContributeTaxedEarningsTaxed TaxStatus = "contributeTaxedEarningsTaxed"
	// Pre-tax contributions; withdrawals taxed as income (traditional 401k/IRA).
	ContributePretaxTaxedWhenUsed TaxStatus = "contributePretaxTaxedWhenUsed"
	// Pre-tax contributions; withdrawals untaxed (HSA spent on healthcare).
	ContributePretaxUntaxedWhenUsed TaxStatus = "contributePretaxUntaxedWhenUsed"
)

// ContributionOptions determines how a yearly contribution value is
// interpreted.
type ContributionOptions string

const (
	ContributionFixed              ContributionOptions = "fixed"
	ContributionPercentOfIncome    ContributionOptions = "percentOfIncome"
	ContributionFixedWithInflation ContributionOptions = "fixedWithInflation"
)

// Value resolves the yearly contribution. Income is the year's total
// income; duration is the number of years since contributions started.
func (c ContributionOptions) Value(contribution, income decimal.Decimal, duration int, inflation decimal.Decimal) decimal.Decimal {
	switch c {
	case ContributionPercentOfIncome:
		return income.Mul(contribution).Div(hundred)
	case ContributionFixedWithInflation:
		return growWithInflation(contribution, inflation, duration)
	default:
		return contribution
	}
}

// WithdrawalOptions determines how a yearly withdrawal value is
// interpreted.
type WithdrawalOptions string

const (
	WithdrawalFixed              WithdrawalOptions = "fixed"
	WithdrawalFixedWithInflation WithdrawalOptions = "fixedWithInflation"
	WithdrawalEndAtZero          WithdrawalOptions = "endAtZero"
	WithdrawalColFracOfSavings   WithdrawalOptions = "colFracOfSavings"
	WithdrawalOther              WithdrawalOptions = "other"
)

// Value resolves the yearly withdrawal before it is capped at the account
// balance. balance is the account's current-year balance; prevBalance and
// prevSavings are the account balance and the total savings balance at the
// end of the prior year; col is this year's total cost of living.
func (w WithdrawalOptions) Value(withdrawal decimal.Decimal, settings *Settings, dates Dates, year int,
	balance, prevBalance, col, prevSavings decimal.Decimal, taxStatus TaxStatus) decimal.Decimal {
	switch w {
	case WithdrawalFixed:
		return withdrawal
	case WithdrawalFixedWithInflation:
		return growWithInflation(withdrawal, settings.InflationBase, year-dates.YearOut.Start)
	case WithdrawalEndAtZero:
		// Drain the account evenly over the remaining out years.
		if !dates.YearOut.Contains(year) {
			return decimal.Zero
		}
		yearsLeft := dates.YearOut.End - year + 1
		return balance.Div(decimal.NewFromInt(int64(yearsLeft)))
	case WithdrawalColFracOfSavings:
		// Pay this account's share of the cost of living, proportional to
		// its slice of total savings at the end of last year.
		if !prevBalance.IsPositive() || !prevSavings.IsPositive() {
			return decimal.Zero
		}
		partial := col.Mul(prevBalance).Div(prevSavings)
		if settings.IsRetired(year) {
			partial = partial.Mul(settings.RetirementCostOfLiving).Div(hundred)
		}
		if taxStatus == ContributePretaxTaxedWhenUsed {
			// Gross up so the after-tax proceeds cover the target amount.
			partial = partial.Div(one.Sub(settings.TaxIncome.Div(hundred)))
		}
		return partial
	default:
		return decimal.Zero
	}
}

// PaymentOptions determines how a yearly loan payment value is interpreted.
type PaymentOptions string

const (
	PaymentFixed              PaymentOptions = "fixed"
	PaymentFixedWithInflation PaymentOptions = "fixedWithInflation"
)

// Value resolves the yearly payment, capped at the outstanding amount due.
func (p PaymentOptions) Value(payment, inflation decimal.Decimal, duration int, outstanding decimal.Decimal) decimal.Decimal {
	v := payment
	if p == PaymentFixedWithInflation {
		v = growWithInflation(payment, inflation, duration)
	}
	if v.GreaterThan(outstanding) {
		return outstanding
	}
	return v
}

// ExpenseOptions determines how a yearly expense value is interpreted.
type ExpenseOptions string

const (
	ExpenseFixed              ExpenseOptions = "fixed"
	ExpenseFixedWithInflation ExpenseOptions = "fixedWithInflation"
)

// Value resolves the yearly expense. Duration is the number of years since
// the expense started.
func (e ExpenseOptions) Value(expense, inflation decimal.Decimal, duration int) decimal.Decimal {
	if e == ExpenseFixedWithInflation {
		return growWithInflation(expense, inflation, duration)
	}
	return expense
}

// EmployerMatch describes an employer's retirement match: amount percent of
// the employee contribution, up to limit percent of the linked income.
type EmployerMatch struct {
	Amount PercentInput `json:"amount" yaml:"amount"`
	Limit  PercentInput `json:"limit" yaml:"limit"`
}

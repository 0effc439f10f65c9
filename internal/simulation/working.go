package simulation

import "github.com/shopspring/decimal"

// WorkingValues is the per-year scratch space an account fills in while it
// steps one simulation year.
type WorkingValues struct {
	Earning              decimal.Decimal
	Interest             decimal.Decimal
	Contribution         decimal.Decimal
	EmployerContribution decimal.Decimal
	Payment              decimal.Decimal
	Withdrawal           decimal.Decimal
	Expense              decimal.Decimal
}

// LimitWithdrawal caps the withdrawal at the available balance.
func (w *WorkingValues) LimitWithdrawal(balance decimal.Decimal) {
	if w.Withdrawal.GreaterThan(balance) {
		w.Withdrawal = balance
	}
}

// LimitPayment caps the payment at the outstanding amount due.
func (w *WorkingValues) LimitPayment(due decimal.Decimal) {
	if w.Payment.GreaterThan(due) {
		w.Payment = due
	}
}

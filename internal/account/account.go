// Package account defines the forecastable account types and the
// polymorphic wrapper they are persisted through.
package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Type identifies an account's kind. The string values are the persisted
// type tags.
type Type string

const (
	TypeIncome     Type = "income"
	TypeSsa        Type = "ssa"
	TypeExpense    Type = "expense"
	TypeHsa        Type = "hsa"
	TypeMortgage   Type = "mortgage"
	TypeLoan       Type = "loan"
	TypeCollege    Type = "college"
	TypeRetirement Type = "retirement"
	TypeSavings    Type = "savings"
)

// TypeOrder is the fixed order account types are simulated in each year.
// Income comes first so percent-of-income contributions see the full year's
// income, and expenses must precede HSAs so an HSA withdrawal can see the
// year's outstanding healthcare expense.
func TypeOrder() []Type {
	return []Type{
		TypeIncome,
		TypeSsa,
		TypeExpense,
		TypeHsa,
		TypeMortgage,
		TypeLoan,
		TypeCollege,
		TypeRetirement,
		TypeSavings,
	}
}

// InitialImpact is a historical data point an account contributes to the
// totals before simulation starts.
type InitialImpact struct {
	Year   int
	Impact simulation.YearlyImpact
}

// Account is one forecastable money stream or balance. Implementations
// keep their own per-year result tables, populated by Simulate one year at
// a time in ascending order.
type Account interface {
	// Type returns the account's kind.
	Type() Type
	// Name returns the user-facing account name.
	Name() string
	// LinkID returns the ID of the linked income account, or "" when the
	// account is not linked.
	LinkID() string
	// Init builds the runtime tables from persisted history, resolves the
	// account's activity windows and returns the impacts of any historical
	// data so the driver can fold them into the totals.
	Init(linked *domain.Dates, settings *domain.Settings) ([]InitialImpact, error)
	// RangeIn resolves the years money flows into the account, nil when
	// the account type has no inflow window.
	RangeIn(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error)
	// RangeOut resolves the years money flows out of the account, nil when
	// the account type has no outflow window.
	RangeOut(settings *domain.Settings, linked *domain.Dates) (*domain.YearRange, error)
	// Value returns the account's balance or amount for the year.
	Value(year int) (decimal.Decimal, bool)
	// Simulate steps the account through one year and returns its impact
	// on the yearly totals. linkedValue is the linked account's value for
	// the year when the account has a link, nil otherwise.
	Simulate(year int, linkedValue *decimal.Decimal, totals *simulation.YearlyTotals, settings *domain.Settings) (simulation.YearlyImpact, error)
	// PlotData returns the account's result tables as named series.
	PlotData() []simulation.PlotSeries
	// Write dumps the account's result tables to a CSV file.
	Write(filepath string) error
}

// accountBase carries the fields every account type persists.
type accountBase struct {
	Label string `json:"name" yaml:"name"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	dates domain.Dates
}

func (b *accountBase) Name() string   { return b.Label }
func (b *accountBase) LinkID() string { return "" }

// errNoLink is returned when linked dates are handed to an account type
// that cannot use them.
func errNoLink(linked *domain.Dates) error {
	if linked != nil {
		return fmt.Errorf("linked account dates provided but not used")
	}
	return nil
}

// resolveRange evaluates a start/end input pair against the settings.
func resolveRange(start, end domain.YearInput, settings *domain.Settings, linked *domain.Dates,
	startEval, endEval domain.YearEvalType) (*domain.YearRange, error) {
	s, err := start.Value(settings, linked, startEval)
	if err != nil {
		return nil, err
	}
	e, err := end.Value(settings, linked, endEval)
	if err != nil {
		return nil, err
	}
	return &domain.YearRange{Start: s, End: e}, nil
}

// resolveDates bundles RangeIn and RangeOut into the account's Dates.
func resolveDates(a Account, settings *domain.Settings, linked *domain.Dates) (domain.Dates, error) {
	in, err := a.RangeIn(settings, linked)
	if err != nil {
		return domain.Dates{}, err
	}
	out, err := a.RangeOut(settings, linked)
	if err != nil {
		return domain.Dates{}, err
	}
	return domain.Dates{YearIn: in, YearOut: out}, nil
}

// Package engine runs the year-by-year forecast over a user's accounts.
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/account"
	"github.com/fincast/fincast/internal/domain"
	"github.com/fincast/fincast/internal/simulation"
)

// Logger is the minimal logging surface the engine needs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Engine drives the simulation. It is deliberately single threaded: each
// year depends on the totals accumulated by every account in the years
// before it.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger. A nil logger restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// Result is the outcome of a forecast run: per-account plot series keyed by
// account ID, plus the populated yearly totals.
type Result struct {
	PlotData map[string][]simulation.PlotSeries
	Totals   *simulation.YearlyTotals
}

// RunAnalysis simulates every account in the document from the settings'
// start year up to (but not including) the end year and returns the
// accumulated results. The first account error aborts the run.
func (e *Engine) RunAnalysis(ctx context.Context, data *account.UserData) (*Result, error) {
	settings := &data.Settings
	order := data.Order()
	totals := simulation.NewYearlyTotals()

	// Initialize accounts and fold their historical data into the totals.
	for _, id := range order {
		acct, _ := data.Account(id)

		linkedDates, err := e.linkedDates(data, acct)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", id, err)
		}

		impacts, err := acct.Init(linkedDates, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize account %s: %w", id, err)
		}
		for _, initial := range impacts {
			if !totals.HasYear(initial.Year) {
				if err := totals.Add(initial.Year, false); err != nil {
					return nil, err
				}
			}
			totals.Update(initial.Year, initial.Impact)
		}
		e.Logger.Debugf("initialized %s account %s (%s)", acct.Type(), id, acct.Name())
	}

	e.Logger.Infof("simulating years %d through %d", settings.YearStart, settings.YearEnd()-1)

	for year := settings.YearStart; year < settings.YearEnd(); year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// A year already present holds historical data; leave it as is.
		if err := totals.Add(year, true); err != nil {
			e.Logger.Debugf("year %d holds historical data, skipping", year)
			continue
		}

		for _, id := range order {
			acct, _ := data.Account(id)
			linkedValue := e.linkedValue(data, acct, year)

			impact, err := acct.Simulate(year, linkedValue, totals, settings)
			if err != nil {
				return nil, fmt.Errorf("failed to simulate account %s for year %d: %w", id, year, err)
			}
			totals.Update(year, impact)
		}

		// Close out the year. Ordering matters: income lands in net before
		// taxes, and plain expenses settle before leftover healthcare.
		totals.DepositIncomeInNet(year)
		totals.PayIncomeTaxFromNet(year, settings.TaxIncome)
		totals.PayExpensesFromNet(year)
		totals.PayHealthcareExpensesFromNet(year)
	}

	plotData := make(map[string][]simulation.PlotSeries, len(order))
	for _, id := range order {
		acct, _ := data.Account(id)
		plotData[id] = acct.PlotData()
	}
	return &Result{PlotData: plotData, Totals: totals}, nil
}

// linkedDates resolves the activity windows of the account's link target.
// Links are resolved exactly one hop deep: the linked account's own ranges
// are evaluated without link context, so link chains cannot recurse.
func (e *Engine) linkedDates(data *account.UserData, acct account.Account) (*domain.Dates, error) {
	linkID := acct.LinkID()
	if linkID == "" {
		return nil, nil
	}
	linked, ok := data.Account(linkID)
	if !ok {
		return nil, fmt.Errorf("linked account %s does not exist", linkID)
	}
	in, err := linked.RangeIn(&data.Settings, nil)
	if err != nil {
		return nil, fmt.Errorf("linked account %s: %w", linkID, err)
	}
	out, err := linked.RangeOut(&data.Settings, nil)
	if err != nil {
		return nil, fmt.Errorf("linked account %s: %w", linkID, err)
	}
	return &domain.Dates{YearIn: in, YearOut: out}, nil
}

// linkedValue resolves the linked account's value for the year, nil when
// the account has no link or the linked account has no value yet.
func (e *Engine) linkedValue(data *account.UserData, acct account.Account, year int) *decimal.Decimal {
	linkID := acct.LinkID()
	if linkID == "" {
		return nil
	}
	linked, ok := data.Account(linkID)
	if !ok {
		return nil
	}
	if v, ok := linked.Value(year); ok {
		return &v
	}
	return nil
}

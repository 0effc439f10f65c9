package simulation

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// PlotPoint is a single (year, amount) sample of a result table.
type PlotPoint struct {
	Year  int             `json:"year" yaml:"year"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// PlotSeries is a named sequence of samples, one table's worth of data.
type PlotSeries struct {
	Name   string      `json:"name" yaml:"name"`
	Points []PlotPoint `json:"points" yaml:"points"`
}

func seriesFrom(name string, t *Table) PlotSeries {
	points := make([]PlotPoint, 0, t.Len())
	for _, year := range t.Years() {
		points = append(points, PlotPoint{Year: year, Value: t.GetOrZero(year)})
	}
	return PlotSeries{Name: name, Points: points}
}

// SingleTable tracks accounts that only need a running value, such as
// income streams and expenses.
type SingleTable struct {
	Value *Table
}

// NewSingleTable seeds the value table from persisted history.
func NewSingleTable(value map[int]decimal.Decimal) *SingleTable {
	return &SingleTable{Value: NewTableFrom(value)}
}

// AddYear registers a new simulation year. The year must not already exist.
func (s *SingleTable) AddYear(year int, pullForward bool) error {
	carry := decimal.Zero
	if pullForward {
		carry = s.Value.MostRecentValue(year)
	}
	return s.Value.Add(year, carry)
}

// PlotData returns the value series.
func (s *SingleTable) PlotData() []PlotSeries {
	return []PlotSeries{seriesFrom("value", s.Value)}
}

// Write dumps the table to a CSV file with year and value columns.
func (s *SingleTable) Write(filepath string) error {
	return writeCSV(filepath, []string{"value"}, []*Table{s.Value})
}

// SavingsTables tracks accounts that accumulate a balance: generic savings,
// retirement, college and HSA accounts.
type SavingsTables struct {
	Value                 *Table
	Contributions         *Table
	EmployerContributions *Table
	Earnings              *Table
	Withdrawals           *Table
}

// NewSavingsTables seeds the value table from persisted history; the flow
// tables may be nil when no history exists.
func NewSavingsTables(value, contributions, employerContributions, earnings, withdrawals map[int]decimal.Decimal) *SavingsTables {
	return &SavingsTables{
		Value:                 NewTableFrom(value),
		Contributions:         NewTableFrom(contributions),
		EmployerContributions: NewTableFrom(employerContributions),
		Earnings:              NewTableFrom(earnings),
		Withdrawals:           NewTableFrom(withdrawals),
	}
}

// AddYear registers a new simulation year across every table. The balance
// carries forward; the flow tables start the year at zero.
func (s *SavingsTables) AddYear(year int, pullForward bool) error {
	carry := decimal.Zero
	if pullForward {
		carry = s.Value.MostRecentValue(year)
	}
	if err := s.Value.Add(year, carry); err != nil {
		return err
	}
	s.Contributions.Insert(year, decimal.Zero)
	s.EmployerContributions.Insert(year, decimal.Zero)
	s.Earnings.Insert(year, decimal.Zero)
	s.Withdrawals.Insert(year, decimal.Zero)
	return nil
}

// PlotData returns one series per table.
func (s *SavingsTables) PlotData() []PlotSeries {
	return []PlotSeries{
		seriesFrom("value", s.Value),
		seriesFrom("contributions", s.Contributions),
		seriesFrom("employerContributions", s.EmployerContributions),
		seriesFrom("earnings", s.Earnings),
		seriesFrom("withdrawals", s.Withdrawals),
	}
}

// Write dumps every table to a CSV file, one column per table.
func (s *SavingsTables) Write(filepath string) error {
	return writeCSV(filepath,
		[]string{"value", "contributions", "employerContributions", "earnings", "withdrawals"},
		[]*Table{s.Value, s.Contributions, s.EmployerContributions, s.Earnings, s.Withdrawals})
}

// LoanTables tracks amortizing debt: loans and mortgages.
type LoanTables struct {
	Value     *Table
	Interest  *Table
	Payments  *Table
	Escrow    *Table
	Insurance *Table
}

// NewLoanTables seeds the balance table from persisted history.
func NewLoanTables(value, interest, payments, escrow, insurance map[int]decimal.Decimal) *LoanTables {
	return &LoanTables{
		Value:     NewTableFrom(value),
		Interest:  NewTableFrom(interest),
		Payments:  NewTableFrom(payments),
		Escrow:    NewTableFrom(escrow),
		Insurance: NewTableFrom(insurance),
	}
}

// AddYear registers a new simulation year across every table.
func (l *LoanTables) AddYear(year int, pullForward bool) error {
	carry := decimal.Zero
	if pullForward {
		carry = l.Value.MostRecentValue(year)
	}
	if err := l.Value.Add(year, carry); err != nil {
		return err
	}
	l.Interest.Insert(year, decimal.Zero)
	l.Payments.Insert(year, decimal.Zero)
	l.Escrow.Insert(year, decimal.Zero)
	l.Insurance.Insert(year, decimal.Zero)
	return nil
}

// PlotData returns one series per table.
func (l *LoanTables) PlotData() []PlotSeries {
	return []PlotSeries{
		seriesFrom("value", l.Value),
		seriesFrom("interest", l.Interest),
		seriesFrom("payments", l.Payments),
		seriesFrom("escrow", l.Escrow),
		seriesFrom("insurance", l.Insurance),
	}
}

// Write dumps every table to a CSV file, one column per table.
func (l *LoanTables) Write(filepath string) error {
	return writeCSV(filepath,
		[]string{"value", "interest", "payments", "escrow", "insurance"},
		[]*Table{l.Value, l.Interest, l.Payments, l.Escrow, l.Insurance})
}

// writeCSV writes one row per year spanning the union of the tables' years.
func writeCSV(filepath string, names []string, tables []*Table) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"year"}, names...)); err != nil {
		return err
	}
	yearSet := make(map[int]struct{})
	for _, t := range tables {
		for _, year := range t.Years() {
			yearSet[year] = struct{}{}
		}
	}
	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)
	for _, year := range years {
		row := make([]string, 0, len(tables)+1)
		row = append(row, fmt.Sprintf("%d", year))
		for _, t := range tables {
			row = append(row, t.GetOrZero(year).StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

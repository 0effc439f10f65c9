// Package simulation holds the year-indexed result tables and the running
// yearly totals that the forecast engine populates.
package simulation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon is the smallest balance treated as non-zero. Residual amounts
// below this are rounding noise and are clamped or ignored.
var Epsilon = decimal.NewFromFloat(0.0001)

// Table maps a calendar year to a dollar amount. Iteration order is always
// ascending by year.
type Table struct {
	values map[int]decimal.Decimal
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{values: make(map[int]decimal.Decimal)}
}

// NewTableFrom creates a table seeded with the given year/amount pairs.
func NewTableFrom(values map[int]decimal.Decimal) *Table {
	t := NewTable()
	for year, v := range values {
		t.values[year] = v
	}
	return t
}

// Get returns the value stored for year.
func (t *Table) Get(year int) (decimal.Decimal, bool) {
	v, ok := t.values[year]
	return v, ok
}

// GetOrZero returns the value stored for year, or zero when absent.
func (t *Table) GetOrZero(year int) decimal.Decimal {
	return t.values[year]
}

// Insert stores value for year, overwriting any existing entry.
func (t *Table) Insert(year int, value decimal.Decimal) {
	t.values[year] = value
}

// Add stores value for year and fails if the year is already present.
func (t *Table) Add(year int, value decimal.Decimal) error {
	if _, ok := t.values[year]; ok {
		return fmt.Errorf("year %d already exists in table", year)
	}
	t.values[year] = value
	return nil
}

// Update adds delta to the value stored for year. Years not yet present
// start from zero.
func (t *Table) Update(year int, delta decimal.Decimal) {
	t.values[year] = t.values[year].Add(delta)
}

// Len returns the number of populated years.
func (t *Table) Len() int {
	return len(t.values)
}

// Years returns the populated years in ascending order.
func (t *Table) Years() []int {
	years := make([]int, 0, len(t.values))
	for year := range t.values {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Values returns the stored amounts in ascending year order.
func (t *Table) Values() []decimal.Decimal {
	years := t.Years()
	values := make([]decimal.Decimal, len(years))
	for i, year := range years {
		values[i] = t.values[year]
	}
	return values
}

// MostRecentPopulatedYear returns the latest year holding a non-negligible
// value, strictly before the given year.
func (t *Table) MostRecentPopulatedYear(before int) (int, bool) {
	found := 0
	ok := false
	for year, v := range t.values {
		if year >= before {
			continue
		}
		if v.Abs().LessThanOrEqual(Epsilon) {
			continue
		}
		if !ok || year > found {
			found = year
			ok = true
		}
	}
	return found, ok
}

// MostRecentValue returns the latest recorded value strictly before the
// given year, or zero when there is none. Unlike MostRecentPopulatedYear it
// does not skip zero entries: a balance recorded as zero stays zero.
func (t *Table) MostRecentValue(before int) decimal.Decimal {
	found := 0
	ok := false
	for year := range t.values {
		if year >= before {
			continue
		}
		if !ok || year > found {
			found = year
			ok = true
		}
	}
	if !ok {
		return decimal.Zero
	}
	return t.values[found]
}

// PullValueForward copies the most recent non-negligible earlier value into
// year, so a freshly added zero year inherits the prior balance. Gaps of any
// width are bridged.
func (t *Table) PullValueForward(year int) {
	if prev, ok := t.MostRecentPopulatedYear(year); ok {
		t.values[year] = t.values[prev]
	}
}

// Domain returns the smallest and largest populated years.
func (t *Table) Domain() (min, max int, ok bool) {
	years := t.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

// Range returns the smallest and largest stored amounts.
func (t *Table) Range() (min, max decimal.Decimal, ok bool) {
	first := true
	for _, v := range t.values {
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	return min, max, !first
}

// Package output renders forecast results for files and the console.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/fincast/fincast/internal/engine"
)

// Formatter renders a forecast result to bytes.
type Formatter interface {
	Name() string
	Format(result *engine.Result) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "csv":
		return CSVFormatter{}, nil
	case "report":
		return ReportFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected csv or report)", name)
}

// CSVFormatter writes the yearly totals grid, one row per year.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *engine.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Net", "Income", "TaxableIncome", "TaxBurden", "Expense", "HealthcareExpense", "CostOfLiving", "Saving", "Hsa"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	totals := result.Totals
	for _, year := range totals.Years() {
		row := []string{
			fmt.Sprintf("%d", year),
			totals.GetNet(year).StringFixed(2),
			totals.GetIncome(year).StringFixed(2),
			totals.IncomeTaxable.GetOrZero(year).StringFixed(2),
			totals.GetTaxBurden(year).StringFixed(2),
			totals.GetExpense(year).StringFixed(2),
			totals.GetHealthcareExpense(year).StringFixed(2),
			totals.GetCol(year).StringFixed(2),
			totals.GetSaving(year).StringFixed(2),
			totals.GetHsa(year).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

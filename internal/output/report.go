package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fincast/fincast/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(22)
	valueStyle = lipgloss.NewStyle().Bold(true)
	redStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// ReportFormatter writes a human readable summary of the forecast.
type ReportFormatter struct{}

func (ReportFormatter) Name() string { return "report" }

func (ReportFormatter) Format(result *engine.Result) ([]byte, error) {
	totals := result.Totals
	years := totals.Years()
	if len(years) == 0 {
		return nil, fmt.Errorf("forecast produced no years")
	}
	firstYear := years[0]
	lastYear := years[len(years)-1]

	peakSaving := decimal.Zero
	peakYear := firstYear
	taxTotal := decimal.Zero
	for _, year := range years {
		if s := totals.GetSaving(year); s.GreaterThan(peakSaving) {
			peakSaving = s
			peakYear = year
		}
		taxTotal = taxTotal.Add(totals.GetTaxBurden(year))
	}

	finalNet := totals.GetNet(lastYear)
	netStyle := valueStyle
	if finalNet.IsNegative() {
		netStyle = redStyle
	}

	buf := &bytes.Buffer{}
	fmt.Fprintln(buf, titleStyle.Render(fmt.Sprintf("Forecast %d-%d", firstYear, lastYear)))
	row := func(label, value string, style lipgloss.Style) {
		fmt.Fprintf(buf, "%s %s\n", labelStyle.Render(label), style.Render(value))
	}
	row("Final net worth", finalNet.StringFixed(2), netStyle)
	row("Final savings", totals.GetSaving(lastYear).StringFixed(2), valueStyle)
	row("Final HSA balance", totals.GetHsa(lastYear).StringFixed(2), valueStyle)
	row("Peak savings", fmt.Sprintf("%s (%d)", peakSaving.StringFixed(2), peakYear), valueStyle)
	row("Lifetime tax paid", taxTotal.StringFixed(2), valueStyle)
	return buf.Bytes(), nil
}

// Package tui presents a forecast's yearly totals as a scrollable table.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fincast/fincast/internal/config"
	"github.com/fincast/fincast/internal/engine"
)

// resultMsg carries a finished forecast into the update loop.
type resultMsg struct {
	result *engine.Result
}

// errMsg carries a failed load or run into the update loop.
type errMsg struct {
	err error
}

// Model is the application state: a document path, and once the forecast
// has run, the yearly totals rendered into a table.
type Model struct {
	documentPath string
	totalsTable  table.Model
	result       *engine.Result
	err          error
	width        int
	height       int
	loading      bool
}

// NewModel creates the model for a document path. The document is loaded
// and simulated asynchronously by Init.
func NewModel(documentPath string) Model {
	return Model{documentPath: documentPath, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.runForecast
}

// runForecast loads the document and runs the full analysis.
func (m Model) runForecast() tea.Msg {
	parser := config.NewInputParser()
	doc, err := parser.LoadFromFile(m.documentPath)
	if err != nil {
		return errMsg{err}
	}
	eng := engine.NewEngine()
	result, err := eng.RunAnalysis(context.Background(), doc)
	if err != nil {
		return errMsg{err}
	}
	return resultMsg{result}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.result != nil {
			m.totalsTable.SetHeight(m.tableHeight())
		}
		return m, nil
	case resultMsg:
		m.loading = false
		m.result = msg.result
		m.totalsTable = newTotalsTable(msg.result, m.tableHeight())
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.totalsTable, cmd = m.totalsTable.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := TitleStyle.Render(fmt.Sprintf("fincast — %s", m.documentPath))
	switch {
	case m.loading:
		return lipgloss.JoinVertical(lipgloss.Left, title, StatusBarStyle.Render("running forecast..."))
	case m.err != nil:
		return lipgloss.JoinVertical(lipgloss.Left, title, ErrorStyle.Render(m.err.Error()))
	default:
		status := StatusBarStyle.Render("↑/↓ scroll · q quit")
		return lipgloss.JoinVertical(lipgloss.Left, title,
			TableBorderStyle.Render(m.totalsTable.View()), status)
	}
}

func (m Model) tableHeight() int {
	// Leave room for the title, border and status bar.
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func newTotalsTable(result *engine.Result, height int) table.Model {
	columns := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Net", Width: 14},
		{Title: "Income", Width: 12},
		{Title: "Tax", Width: 12},
		{Title: "Expense", Width: 12},
		{Title: "Saving", Width: 14},
		{Title: "HSA", Width: 10},
	}

	totals := result.Totals
	years := totals.Years()
	rows := make([]table.Row, 0, len(years))
	for _, year := range years {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", year),
			totals.GetNet(year).StringFixed(2),
			totals.GetIncome(year).StringFixed(2),
			totals.GetTaxBurden(year).StringFixed(2),
			totals.GetExpense(year).StringFixed(2),
			totals.GetSaving(year).StringFixed(2),
			totals.GetHsa(year).StringFixed(2),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorPrimary)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(ColorPrimary)
	t.SetStyles(styles)
	return t
}

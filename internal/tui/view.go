package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/tui/components"
	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
)

// maxCrossoverRows limits the crossover list under the chart
const maxCrossoverRows = 8

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneCalculator:
		content = m.renderCalculator()
	case SceneChart:
		content = m.renderChart()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and help line
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), content}
	if m.err != nil {
		parts = append(parts, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTitleBar renders the application title and the current scene
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("ESNET · Spanish tax regime calculator")
	scene := tuistyles.SubtitleStyle.Render(m.scene.String())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", scene) + "\n"
}

// renderCalculator shows the controls next to the ranked results
func (m Model) renderCalculator() string {
	controls := tuistyles.ActivePanelStyle.Render(m.renderControls())
	results := tuistyles.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, m.renderResultsTable(), "", m.renderNetChart()))

	if m.width >= lipgloss.Width(controls)+lipgloss.Width(results) {
		return lipgloss.JoinHorizontal(lipgloss.Top, controls, results)
	}
	return lipgloss.JoinVertical(lipgloss.Left, controls, results)
}

// renderControls lists every parameter control and the regime toggles
func (m Model) renderControls() string {
	var b strings.Builder
	b.WriteString(tuistyles.ParameterLabelStyle.Render("PARAMETERS"))
	b.WriteString("\n\n")

	for _, line := range []string{
		m.revenue.Render(),
		m.expenses.Render(),
		m.children.Render(),
		m.community.Render(),
		m.status.Render(),
		m.companyAge.Render(),
		m.beckhamYear.Render(),
	} {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.ParameterLabelStyle.Render("REGIMES"))
	b.WriteString("\n")
	for i, r := range m.regimes {
		cursor := "  "
		if m.focus == ctrlRegimes+i {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.enabled[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, box, r.DisplayName())
		if m.focus == ctrlRegimes+i {
			line = lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderResultsTable shows the ranked regimes with the monthly split
func (m Model) renderResultsTable() string {
	if len(m.results) == 0 {
		return tuistyles.InfoStyle.Render("Select at least one regime")
	}

	header := fmt.Sprintf("%-3s %-22s %12s %12s %10s %10s %8s",
		"#", "Regime", "Net/Month", "Net/Year", "Tax/Mo", "SS/Mo", "Rate")

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, r := range m.results {
		row := fmt.Sprintf("%-3d %-22s %12s %12s %10s %10s %7s%%",
			r.Rank,
			r.Regime.DisplayName(),
			tuistyles.FormatEuro(r.NetMonthly),
			tuistyles.FormatEuro(r.NetAnnual),
			tuistyles.FormatEuro(r.MonthlyTax),
			tuistyles.FormatEuro(r.MonthlySS),
			r.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(1))

		switch {
		case i == 0:
			b.WriteString(tuistyles.TableHighlightStyle.Render(row + " ★"))
		case r.NetAnnual.IsNegative():
			b.WriteString(tuistyles.MetricNegativeStyle.Render(row))
		default:
			b.WriteString(tuistyles.TableCellStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(m.results) > 1 {
		best, worst := m.results[0], m.results[len(m.results)-1]
		b.WriteString("\n")
		b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s leaves %s more per year than %s",
			best.Regime.DisplayName(),
			tuistyles.FormatEuro(best.NetAnnual.Sub(worst.NetAnnual)),
			worst.Regime.DisplayName())))
		b.WriteString("\n")
	}
	return b.String()
}

// renderNetChart draws net monthly income as bars in ranking order
func (m Model) renderNetChart() string {
	chart := components.NewBarChart("NET MONTHLY INCOME")
	for i, r := range m.results {
		chart.AddBar(components.Bar{
			Label:     r.Regime.DisplayName(),
			Value:     r.NetMonthly.InexactFloat64(),
			Display:   tuistyles.FormatEuro(r.NetMonthly),
			Color:     m.regimeColor(r.Regime),
			Highlight: i == 0,
		})
	}
	return chart.Render()
}

// renderChart plots net monthly income across the sweep range and lists the
// crossovers between regimes
func (m Model) renderChart() string {
	chart := components.NewLineChart("NET MONTHLY INCOME BY ANNUAL REVENUE").
		WithXRange(tuistyles.FormatEuro(m.sweep.From), tuistyles.FormatEuro(m.sweep.To))
	if m.width > 40 {
		chart.WithSize(min(m.width-20, 100), 14)
	}

	for i, r := range m.regimes {
		if !m.enabled[i] || len(m.points) == 0 {
			continue
		}
		series := components.Series{Name: r.DisplayName(), Color: m.regimeColor(r)}
		for _, p := range m.points {
			if res, ok := p.Results[r]; ok {
				series.Points = append(series.Points, res.NetMonthly.InexactFloat64())
			}
		}
		chart.AddSeries(series)
	}

	var b strings.Builder
	b.WriteString(chart.Render())
	b.WriteString("\n\n")
	b.WriteString(tuistyles.ParameterLabelStyle.Render("CROSSOVER POINTS"))
	b.WriteString("\n")

	if len(m.crossovers) == 0 {
		b.WriteString(tuistyles.InfoStyle.Render("No crossovers in range"))
		b.WriteString("\n")
		return tuistyles.PanelStyle.Render(b.String())
	}

	for i, c := range m.crossovers {
		if i == maxCrossoverRows {
			b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("… and %d more", len(m.crossovers)-maxCrossoverRows)))
			b.WriteString("\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %12s  %s ⇄ %s\n",
			tuistyles.FormatEuro(c.Revenue), c.Regime1.DisplayName(), c.Regime2.DisplayName()))
	}
	return tuistyles.PanelStyle.Render(b.String())
}

// regimeColor keeps a regime's color stable across scenes
func (m Model) regimeColor(r domain.Regime) lipgloss.Color {
	for i, candidate := range m.regimes {
		if candidate == r {
			return tuistyles.SeriesColor(i)
		}
	}
	return tuistyles.ColorMuted
}

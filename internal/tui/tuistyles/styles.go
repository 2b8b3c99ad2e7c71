// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#C60B1E") // rojo
	ColorSecondary = lipgloss.Color("#FFC400") // gualda
	ColorAccent    = lipgloss.Color("#F97316")
	ColorSuccess   = lipgloss.Color("#22C55E")
	ColorDanger    = lipgloss.Color("#EF4444")
	ColorInfo      = lipgloss.Color("#38BDF8")

	ColorForeground = lipgloss.Color("#E5E7EB")
	ColorMuted      = lipgloss.Color("#6B7280")
	ColorBorder     = lipgloss.Color("#374151")
)

// SeriesColors assigns one color per regime in chart legends and bars
var SeriesColors = []lipgloss.Color{
	lipgloss.Color("#60A5FA"),
	lipgloss.Color("#F472B6"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#FBBF24"),
	lipgloss.Color("#A78BFA"),
	lipgloss.Color("#F87171"),
	lipgloss.Color("#2DD4BF"),
}

// SeriesColor returns the color for the i-th series, cycling when needed
func SeriesColor(i int) lipgloss.Color {
	return SeriesColors[i%len(SeriesColors)]
}

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActivePanelStyle = PanelStyle.
				BorderForeground(ColorPrimary)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)
)

// FormatEuro formats an amount as whole euros with thousands separators
func FormatEuro(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)
	out := make([]byte, 0, len(s)+len(s)/3+4)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if d.Round(0).IsNegative() {
		return "-" + string(out) + " €"
	}
	return string(out) + " €"
}

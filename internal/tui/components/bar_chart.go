package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
)

// Bar is one labelled value of a BarChart
type Bar struct {
	Label     string
	Value     float64
	Display   string // Shown after the bar; defaults to the rounded value
	Color     lipgloss.Color
	Highlight bool
}

// BarChart renders horizontal bars scaled to the largest value. Negative
// values draw an empty bar.
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int
	LabelWidth int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{
		Title:      title,
		Width:      40,
		LabelWidth: 22,
	}
}

// AddBar appends a bar
func (c *BarChart) AddBar(bar Bar) *BarChart {
	c.Bars = append(c.Bars, bar)
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary).Render(c.Title))
		content.WriteString("\n\n")
	}

	top := 0.0
	for _, b := range c.Bars {
		top = math.Max(top, b.Value)
	}

	for _, b := range c.Bars {
		length := 0
		if top > 0 && b.Value > 0 {
			length = int(math.Round(b.Value / top * float64(c.Width)))
		}

		color := b.Color
		if color == "" {
			color = tuistyles.ColorInfo
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", length))

		display := b.Display
		if display == "" {
			display = fmt.Sprintf("%.0f", b.Value)
		}
		valueStyle := tuistyles.TableCellStyle
		if b.Highlight {
			valueStyle = tuistyles.TableHighlightStyle
		}
		if b.Value < 0 {
			valueStyle = tuistyles.MetricNegativeStyle
		}

		content.WriteString(fmt.Sprintf("%s %s%s %s\n",
			tuistyles.TableCellStyle.Width(c.LabelWidth).Render(truncate(b.Label, c.LabelWidth)),
			bar,
			strings.Repeat(" ", c.Width-length),
			valueStyle.Render(display)))
	}

	return content.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

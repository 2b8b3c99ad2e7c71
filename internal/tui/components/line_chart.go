package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
)

// Series is one line of a LineChart
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// LineChart plots several series sharing an x axis on a character grid
type LineChart struct {
	Title  string
	Series []Series
	XFrom  string // Label of the first x value
	XTo    string // Label of the last x value
	Width  int
	Height int
}

const yAxisWidth = 9

// NewLineChart creates a new line chart
func NewLineChart(title string) *LineChart {
	return &LineChart{
		Title:  title,
		Width:  64,
		Height: 14,
	}
}

// AddSeries adds a series to the chart
func (c *LineChart) AddSeries(s Series) *LineChart {
	c.Series = append(c.Series, s)
	return c
}

// WithSize sets the plot area dimensions
func (c *LineChart) WithSize(width, height int) *LineChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXRange sets the labels printed under both ends of the x axis
func (c *LineChart) WithXRange(from, to string) *LineChart {
	c.XFrom = from
	c.XTo = to
	return c
}

// Render returns the styled chart
func (c *LineChart) Render() string {
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	grid := make([][]int, c.Height)
	for y := range grid {
		grid[y] = make([]int, c.Width)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	for si, s := range c.Series {
		prevX, prevY := -1, -1
		for i, v := range s.Points {
			x, y := c.project(i, len(s.Points), v, lo, hi)
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y, si)
			} else {
				grid[y][x] = si
			}
			prevX, prevY = x, y
		}
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary).Render(c.Title))
		out.WriteString("\n\n")
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for y, row := range grid {
		label := ""
		switch y {
		case 0:
			label = shortEuro(hi)
		case c.Height / 2:
			label = shortEuro((hi + lo) / 2)
		case c.Height - 1:
			label = shortEuro(lo)
		}
		out.WriteString(axis.Width(yAxisWidth).Align(lipgloss.Right).Render(label))
		out.WriteString(axis.Render(" │"))
		for _, si := range row {
			if si < 0 {
				out.WriteString(" ")
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[si].Color).Render("•"))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth+1))
	out.WriteString(axis.Render("└" + strings.Repeat("─", c.Width)))
	out.WriteString("\n")

	if c.XFrom != "" || c.XTo != "" {
		gap := c.Width - len([]rune(c.XFrom)) - len([]rune(c.XTo))
		if gap < 1 {
			gap = 1
		}
		out.WriteString(strings.Repeat(" ", yAxisWidth+2))
		out.WriteString(axis.Render(c.XFrom + strings.Repeat(" ", gap) + c.XTo))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(c.renderLegend())

	return out.String()
}

// bounds returns the value range across all series
func (c *LineChart) bounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) || c.Width < 2 || c.Height < 2 {
		return 0, 0, false
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi, true
}

// project maps the i-th of n points to grid coordinates
func (c *LineChart) project(i, n int, v, lo, hi float64) (int, int) {
	x := 0
	if n > 1 {
		x = int(math.Round(float64(i) / float64(n-1) * float64(c.Width-1)))
	}
	y := c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
	return x, y
}

func (c *LineChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		items = append(items, lipgloss.NewStyle().Foreground(s.Color).Render("■")+" "+s.Name)
	}
	return strings.Join(items, "  ")
}

// drawLine connects two grid cells (Bresenham), keeping cells already set
func drawLine(grid [][]int, x0, y0, x1, y1, series int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if grid[y0][x0] < 0 {
			grid[y0][x0] = series
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// shortEuro formats an axis value: 4.2k €, 950 €
func shortEuro(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.1fk €", v/1000)
	}
	return fmt.Sprintf("%.0f €", v)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

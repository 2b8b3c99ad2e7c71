package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider_ClampsToRange(t *testing.T) {
	s := NewSlider("Revenue", 75000, 10000, 100000, 5000)
	assert.Equal(t, int64(75000), s.Value)

	assert.True(t, s.Increment())
	assert.Equal(t, int64(80000), s.Value)

	assert.True(t, s.SetValue(250000))
	assert.Equal(t, int64(100000), s.Value)
	assert.False(t, s.Increment(), "already at max")

	assert.True(t, s.SetValue(-5))
	assert.Equal(t, int64(10000), s.Value)
	assert.False(t, s.Decrement(), "already at min")
	assert.Equal(t, 0.0, s.Fraction())

	clamped := NewSlider("Children", 9, 0, 6, 1)
	assert.Equal(t, int64(6), clamped.Value)
	assert.Equal(t, 1.0, clamped.Fraction())
}

func TestSlider_Render(t *testing.T) {
	s := NewSlider("Children", 2, 0, 6, 1).WithWidth(10).WithFormat(func(v int64) string {
		return strings.Repeat("*", int(v))
	})

	out := s.Render()
	assert.Contains(t, out, "Children")
	assert.Contains(t, out, "**")
	assert.Contains(t, out, "●")
	assert.NotContains(t, out, "▸")

	s.IsFocused = true
	assert.Contains(t, s.Render(), "▸")
}

func TestSelector_Wraps(t *testing.T) {
	options := []Option{
		{Value: "madrid", Label: "Madrid"},
		{Value: "catalunya", Label: "Catalunya"},
		{Value: "valencia", Label: "Valencia"},
	}

	s := NewSelector("Community", options, "valencia")
	assert.Equal(t, "valencia", s.Value())

	s.Next()
	assert.Equal(t, "madrid", s.Value())
	s.Prev()
	assert.Equal(t, "valencia", s.Value())

	unknown := NewSelector("Community", options, "galicia")
	assert.Equal(t, "madrid", unknown.Value())
	assert.Contains(t, unknown.Render(), "Madrid")

	empty := NewSelector("Nothing", nil, "")
	empty.Next()
	empty.Prev()
	assert.Equal(t, "", empty.Value())
	assert.Contains(t, empty.Render(), "-")
}

func TestBarChart_Render(t *testing.T) {
	assert.Contains(t, NewBarChart("Empty").Render(), "No data to display")

	chart := NewBarChart("NET").WithWidth(20)
	chart.AddBar(Bar{Label: "SL Microempresa", Value: 4000, Display: "4.000 €", Highlight: true})
	chart.AddBar(Bar{Label: "Empleado", Value: 2000})
	chart.AddBar(Bar{Label: "Autónomo Tarifa Plana con nombre largo", Value: -100})

	out := chart.Render()
	assert.Contains(t, out, "NET")
	assert.Contains(t, out, "4.000 €")
	assert.Contains(t, out, "2000")
	assert.Contains(t, out, strings.Repeat("█", 20))
	assert.Contains(t, out, "…")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Empleado", truncate("Empleado", 10))
	assert.Equal(t, "Autó…", truncate("Autónomo", 5))
}

func TestLineChart_Render(t *testing.T) {
	assert.Contains(t, NewLineChart("Empty").Render(), "No data to display")

	chart := NewLineChart("NET BY REVENUE").WithSize(20, 6).WithXRange("30.000 €", "300.000 €")
	chart.AddSeries(Series{Name: "Empleado", Points: []float64{1000, 2000, 3000}})
	chart.AddSeries(Series{Name: "SL Microempresa", Points: []float64{3000, 2000, 1000}})

	out := chart.Render()
	assert.Contains(t, out, "NET BY REVENUE")
	assert.Contains(t, out, "3.0k €")
	assert.Contains(t, out, "1.0k €")
	assert.Contains(t, out, "30.000 €")
	assert.Contains(t, out, "300.000 €")
	assert.Contains(t, out, "Empleado")
	assert.Contains(t, out, "SL Microempresa")
	assert.Contains(t, out, "•")
}

func TestDrawLine_ConnectsEndpoints(t *testing.T) {
	grid := make([][]int, 4)
	for y := range grid {
		grid[y] = []int{-1, -1, -1, -1}
	}

	drawLine(grid, 0, 3, 3, 0, 2)
	for i := 0; i < 4; i++ {
		require.Equal(t, 2, grid[3-i][i])
	}
	assert.Equal(t, -1, grid[0][0])
}

func TestShortEuro(t *testing.T) {
	assert.Equal(t, "950 €", shortEuro(950))
	assert.Equal(t, "4.2k €", shortEuro(4200))
	assert.Equal(t, "-1.5k €", shortEuro(-1500))
}

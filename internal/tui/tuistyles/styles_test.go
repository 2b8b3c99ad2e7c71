package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "0 €"},
		{"950.4", "950 €"},
		{"39093.168616", "39.093 €"},
		{"1234567", "1.234.567 €"},
		{"-2460", "-2.460 €"},
		{"-0.2", "0 €"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatEuro(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestSeriesColor_Cycles(t *testing.T) {
	assert.Equal(t, SeriesColors[0], SeriesColor(0))
	assert.Equal(t, SeriesColors[0], SeriesColor(len(SeriesColors)))
}

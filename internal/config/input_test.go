package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `
regimes: [empleado, autonomo_regular, sl_micro, beckham]
community: catalunya
marital_status: casado
children: 2
annual_revenue: 95000.50
monthly_expenses: 1500
company_age: 3
beckham_year: 2
planned_dividends: 20000
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInputParser_BeckhamYearFollowsConstants(t *testing.T) {
	constants, err := NewInputParser().ParseConstants([]byte("beckham:\n  max_years: 8\n"))
	require.NoError(t, err)

	year := 8
	params := domain.DefaultParams()
	params.BeckhamYear = &year

	assert.NoError(t, NewInputParserWithConstants(constants).ValidateParams(&params))

	err = NewInputParser().ValidateParams(&params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 6, got 8")
}

func TestInputParser_LoadFromFile(t *testing.T) {
	parser := NewInputParser()
	params, err := parser.LoadFromFile(writeTemp(t, "input.yaml", sampleInput))
	require.NoError(t, err)

	assert.Equal(t, []domain.Regime{domain.RegimeEmpleado, domain.RegimeAutonomoRegular, domain.RegimeSLMicro, domain.RegimeBeckham}, params.Regimes)
	assert.Equal(t, domain.CommunityCatalunya, params.Community)
	assert.Equal(t, domain.MaritalMarried, params.MaritalStatus)
	assert.Equal(t, 2, params.Children)
	assert.True(t, decimal.RequireFromString("95000.50").Equal(params.AnnualRevenue))
	assert.True(t, decimal.NewFromInt(1500).Equal(params.MonthlyExpenses))
	require.NotNil(t, params.CompanyAge)
	assert.Equal(t, 3, *params.CompanyAge)
	require.NotNil(t, params.BeckhamYear)
	assert.Equal(t, 2, *params.BeckhamYear)
	require.NotNil(t, params.PlannedDividends)
	assert.True(t, decimal.NewFromInt(20000).Equal(*params.PlannedDividends))
}

func TestInputParser_Parse_Defaults(t *testing.T) {
	parser := NewInputParser()
	params, err := parser.Parse([]byte("annual_revenue: 50000\n"))
	require.NoError(t, err)

	defaults := domain.DefaultParams()
	assert.Equal(t, defaults.Regimes, params.Regimes)
	assert.Equal(t, defaults.Community, params.Community)
	assert.True(t, decimal.NewFromInt(50000).Equal(params.AnnualRevenue))
	assert.True(t, defaults.MonthlyExpenses.Equal(params.MonthlyExpenses))
}

func TestInputParser_LoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeTemp(t, "bad.yaml", "regimes: [empleado\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_ValidateParams(t *testing.T) {
	parser := NewInputParser()
	intPtr := func(v int) *int { return &v }
	decPtr := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }

	tests := []struct {
		name    string
		mutate  func(p *domain.CalculatorParams)
		wantErr string
	}{
		{"valid defaults", func(p *domain.CalculatorParams) {}, ""},
		{"no regimes", func(p *domain.CalculatorParams) { p.Regimes = nil }, "at least one regime"},
		{"unknown regime", func(p *domain.CalculatorParams) { p.Regimes = []domain.Regime{"pyme"} }, "unknown tax regime"},
		{"duplicate regime", func(p *domain.CalculatorParams) {
			p.Regimes = []domain.Regime{domain.RegimeEmpleado, domain.RegimeEmpleado}
		}, "more than once"},
		{"unknown community", func(p *domain.CalculatorParams) { p.Community = "galicia" }, "unknown autonomous community"},
		{"unknown status", func(p *domain.CalculatorParams) { p.MaritalStatus = "viudo" }, "unknown marital status"},
		{"negative children", func(p *domain.CalculatorParams) { p.Children = -1 }, "children cannot be negative"},
		{"single parent without children", func(p *domain.CalculatorParams) { p.MaritalStatus = domain.MaritalSingleParent }, "requires at least one child"},
		{"negative revenue", func(p *domain.CalculatorParams) { p.AnnualRevenue = decimal.NewFromInt(-1) }, "annual revenue"},
		{"negative expenses", func(p *domain.CalculatorParams) { p.MonthlyExpenses = decimal.NewFromInt(-1) }, "monthly expenses"},
		{"negative company age", func(p *domain.CalculatorParams) { p.CompanyAge = intPtr(-2) }, "company age"},
		{"beckham year zero", func(p *domain.CalculatorParams) { p.BeckhamYear = intPtr(0) }, "beckham year"},
		{"beckham year seven", func(p *domain.CalculatorParams) { p.BeckhamYear = intPtr(7) }, "beckham year"},
		{"negative dividends", func(p *domain.CalculatorParams) { p.PlannedDividends = decPtr(-5) }, "planned dividends"},
		{"negative stock options", func(p *domain.CalculatorParams) { p.StockOptions = decPtr(-5) }, "stock options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domain.DefaultParams()
			tt.mutate(&params)
			err := parser.ValidateParams(&params)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_ValidateParams_WrapsSentinels(t *testing.T) {
	parser := NewInputParser()
	params := domain.DefaultParams()
	params.Regimes = []domain.Regime{"pyme"}

	err := parser.ValidateParams(&params)
	assert.ErrorIs(t, err, calculation.ErrUnknownRegime)
}

func TestInputParser_ParseConstants(t *testing.T) {
	parser := NewInputParser()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		constants, err := parser.ParseConstants([]byte("{}"))
		require.NoError(t, err)
		assert.Equal(t, 2025, constants.Metadata.DataYear)
		assert.Len(t, constants.AutonomoBrackets, 15)
	})

	t.Run("partial override", func(t *testing.T) {
		override := `
metadata:
  data_year: 2026
corporate_tax:
  micro_rate: 0.21
tarifa_plana:
  monthly_amount: 88
irpf:
  regional:
    madrid:
      - {min: 0, max: 20000, rate: 0.10}
      - {min: 20000, rate: 0.20}
`
		constants, err := parser.ParseConstants([]byte(override))
		require.NoError(t, err)

		assert.Equal(t, 2026, constants.Metadata.DataYear)
		assert.True(t, decimal.RequireFromString("0.21").Equal(constants.CorporateTax.MicroRate))
		assert.True(t, decimal.RequireFromString("0.25").Equal(constants.CorporateTax.RegularRate), "untouched fields keep defaults")
		assert.True(t, decimal.NewFromInt(88).Equal(constants.TarifaPlana.MonthlyAmount))
		assert.Equal(t, 12, constants.TarifaPlana.Months)
		assert.Len(t, constants.IRPF.Regional[domain.CommunityMadrid], 2)
		assert.Len(t, constants.IRPF.Regional[domain.CommunityCatalunya], 9, "other communities keep defaults")
	})

	t.Run("override feeds the engine", func(t *testing.T) {
		constants, err := parser.ParseConstants([]byte("tarifa_plana:\n  monthly_amount: 0\n"))
		require.NoError(t, err)

		engine := calculation.NewCalculationEngineWithConstants(constants)
		result, err := engine.Calculate(domain.RegimeAutonomoTarifaPlana, domain.DefaultParams())
		require.NoError(t, err)
		assert.True(t, result.Breakdown.SocialSecurity.IsZero())
	})
}

func TestInputParser_ValidateConstants(t *testing.T) {
	parser := NewInputParser()

	assert.NoError(t, parser.ValidateConstants(calculation.DefaultConstants()))

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"rate above one", "corporate_tax:\n  regular_rate: 1.5\n", "regular corporate rate"},
		{"gap in state scale", "irpf:\n  state:\n    - {min: 0, max: 1000, rate: 0.1}\n    - {min: 2000, rate: 0.2}\n", "does not start where"},
		{"bounded last bracket", "dividend_brackets:\n  - {min: 0, max: 1000, rate: 0.1}\n", "last bracket must be unbounded"},
		{"scale not starting at zero", "dividend_brackets:\n  - {min: 10, rate: 0.1}\n", "must start at zero"},
		{"inverted bases", "social_security:\n  bases:\n    min: 5000\n    max: 1000\n", "contribution bases"},
		{"no autonomo brackets", "autonomo_brackets: []\n", "autonomo brackets are required"},
		{"no beckham years", "beckham:\n  max_years: 0\n", "beckham max years"},
		{"no child allowances", "personal_allowances:\n  children: []\n", "child allowances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseConstants([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadConstantsFromFile(t *testing.T) {
	parser := NewInputParser()
	constants, err := parser.LoadConstantsFromFile(writeTemp(t, "constants.yaml", "beckham:\n  rate: 0.25\n"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.25").Equal(constants.Beckham.Rate))

	_, err = parser.LoadConstantsFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

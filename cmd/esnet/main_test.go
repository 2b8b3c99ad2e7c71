package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns its standard output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "esnet", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, expected := range []string{"calculate", "compare", "sweep", "crossover", "validate", "regimes", "templates", "version"} {
		assert.True(t, names[expected], "missing command %s", expected)
	}

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish tax regime")
}

func TestCalculate_Console(t *testing.T) {
	out, err := run(t, "calculate")
	require.NoError(t, err)
	assert.Contains(t, out, "RANKING BY NET INCOME")
	assert.Contains(t, out, "Recommended: SL Microempresa")
	assert.Contains(t, out, "39,093.17€")
}

func TestCalculate_JSON(t *testing.T) {
	out, err := run(t, "calculate", "--regimes", "empleado,beckham", "--format", "json")
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Regime string `json:"regime"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, "empleado", report.Results[0].Regime)
	assert.Equal(t, "beckham", report.Results[1].Regime)
}

func TestCalculate_CSVAllRegimes(t *testing.T) {
	out, err := run(t, "calculate", "--regimes", "all", "--format", "csv", "--community", "valencia", "--children", "1")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 8)
	assert.Equal(t, "Regime", records[0][0])
}

func TestCalculate_InputFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
regimes: [autonomo_regular]
community: catalunya
marital_status: casado
children: 2
annual_revenue: 60000
monthly_expenses: 500
`), 0o600))

	out, err := run(t, "calculate", path, "--revenue", "75000", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "autonomo_regular", records[1][0])
	assert.Equal(t, "75000.00", records[1][1])
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad revenue", []string{"calculate", "--revenue", "lots"}, "invalid --revenue"},
		{"unknown regime", []string{"calculate", "--regimes", "funcionario"}, "unknown regime"},
		{"unknown community", []string{"calculate", "--community", "galicia"}, "unknown autonomous community"},
		{"single parent without children", []string{"calculate", "--status", "con_hijos"}, "requires at least one child"},
		{"beckham year out of range", []string{"calculate", "--beckham-year", "9"}, "beckham year"},
		{"unsupported format", []string{"calculate", "--format", "xml"}, "unsupported format"},
		{"missing file", []string{"calculate", "does-not-exist.yaml"}, "failed to read file"},
		{"missing constants", []string{"calculate", "--constants", "does-not-exist.yaml"}, "failed to read file"},
		{"bad log level", []string{"calculate", "--log-level", "verbose"}, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompare_Table(t *testing.T) {
	out, err := run(t, "compare", "--regimes", "all", "--with", "income_plus_20")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX REGIME COMPARISON")
	assert.Contains(t, out, "Base Regime: beckham")
	assert.Contains(t, out, "beckham+income_plus_20")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestCompare_CSVWithBaseAndTransform(t *testing.T) {
	out, err := run(t, "compare", "--base", "empleado", "--transform", "set_community:community=valencia", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "empleado", records[1][0])
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare", "--base", "beckham")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among the compared regimes")

	_, err = run(t, "compare", "--base", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown base regime")

	_, err = run(t, "compare", "--with", "lottery_win")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template lottery_win not found")

	_, err = run(t, "compare", "--transform", "set_community")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --transform")
}

func TestSweep_CSV(t *testing.T) {
	out, err := run(t, "sweep", "--regimes", "empleado,sl_micro", "--from", "30000", "--to", "40000", "--step", "5000")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Revenue", "empleado", "sl_micro"}, records[0])
	assert.Equal(t, "30000", records[1][0])
	assert.Equal(t, "40000", records[3][0])
}

func TestSweep_Table(t *testing.T) {
	out, err := run(t, "sweep", "--from", "50000", "--to", "60000", "--step", "10000", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "NET MONTHLY INCOME BY REVENUE")
}

func TestSweep_InvalidRange(t *testing.T) {
	_, err := run(t, "sweep", "--step", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step must be positive")

	_, err = run(t, "sweep", "--from", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --from")

	_, err = run(t, "sweep", "--to", "1e40", "--step", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 10000")
}

func TestCrossover(t *testing.T) {
	args := []string{"crossover", "--regimes", "empleado,sl_micro", "--expenses", "0",
		"--from", "10000", "--to", "75000", "--step", "5000"}

	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "REGIME CROSSOVER POINTS")
	assert.Contains(t, out, "Empleado")
	assert.Contains(t, out, "SL Microempresa")

	out, err = run(t, append(args, "--format", "json")...)
	require.NoError(t, err)
	var doc struct {
		Crossovers []json.RawMessage `json:"crossovers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.Crossovers)

	_, err = run(t, append(args, "--format", "csv")...)
	require.Error(t, err)
}

func TestCustomBeckhamYears(t *testing.T) {
	dir := t.TempDir()
	longer := filepath.Join(dir, "longer.yaml")
	require.NoError(t, os.WriteFile(longer, []byte("beckham:\n  max_years: 8\n"), 0o600))
	shorter := filepath.Join(dir, "shorter.yaml")
	require.NoError(t, os.WriteFile(shorter, []byte("beckham:\n  max_years: 3\n"), 0o600))

	_, err := run(t, "calculate", "--regimes", "beckham", "--beckham-year", "8", "--constants", longer)
	require.NoError(t, err)

	_, err = run(t, "calculate", "--regimes", "beckham", "--beckham-year", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 6")

	_, err = run(t, "compare", "--regimes", "empleado,sl_micro", "--constants", shorter,
		"--transform", "set_beckham_year:year=5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameters after --transform")
	assert.Contains(t, err.Error(), "between 1 and 3")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("regimes: [empleado]\nannual_revenue: 50000\n"), 0o600))
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("regimes: [empleado]\ncommunity: galicia\n"), 0o600))

	out, err := run(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = run(t, "validate", invalid)
	require.Error(t, err)

	_, err = run(t, "validate")
	require.Error(t, err)
}

func TestListingCommands(t *testing.T) {
	out, err := run(t, "regimes")
	require.NoError(t, err)
	assert.Contains(t, out, "startup_certificada")
	assert.Contains(t, out, "Régimen Beckham")
	assert.Contains(t, out, "catalunya")
	assert.Contains(t, out, "con_hijos")

	out, err = run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
	assert.Contains(t, out, "income_plus_20")
	assert.Contains(t, out, "set_community")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "esnet dev")
}

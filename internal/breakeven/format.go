package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats sweep and crossover results as console tables
type TableFormatter struct{}

// FormatCrossovers generates a report of the revenues where regimes swap places
func (tf *TableFormatter) FormatCrossovers(crossovers []domain.CrossoverPoint, opts SweepOptions) string {
	var sb strings.Builder

	sb.WriteString("REGIME CROSSOVER POINTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Revenue Range: €%s - €%s (step €%s)\n",
		tf.formatShort(opts.From), tf.formatShort(opts.To), tf.formatShort(opts.Step)))
	sb.WriteString("\n")

	if len(crossovers) == 0 {
		sb.WriteString("No crossovers in range: the ranking of every regime pair is stable.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-14s %-24s %-24s %12s\n", "Revenue", "Regime 1", "Regime 2", "Difference"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, cp := range crossovers {
		sb.WriteString(fmt.Sprintf("%-14s %-24s %-24s %12s\n",
			"€"+tf.formatCurrency(cp.Revenue),
			tf.truncate(cp.Regime1.DisplayName(), 24),
			tf.truncate(cp.Regime2.DisplayName(), 24),
			tf.deltaSymbol(cp.Difference)+tf.formatCurrency(cp.Difference)))
	}
	sb.WriteString("\n")

	sb.WriteString("Difference is the net annual income of regime 1 minus regime 2 at that revenue.\n")

	return sb.String()
}

// FormatSweep generates a table of net monthly income per regime and revenue
func (tf *TableFormatter) FormatSweep(points []domain.SweepPoint, regimes []domain.Regime) string {
	var sb strings.Builder

	sb.WriteString("NET MONTHLY INCOME BY REVENUE\n")
	width := 10 + 11*len(regimes)
	sb.WriteString(strings.Repeat("=", width) + "\n")

	sb.WriteString(fmt.Sprintf("%-10s", "Revenue"))
	for _, r := range regimes {
		sb.WriteString(fmt.Sprintf(" %10s", tf.truncate(string(r), 10)))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", width) + "\n")

	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%-10s", "€"+tf.formatShort(p.Revenue)))
		for _, r := range regimes {
			result, ok := p.Results[r]
			if !ok {
				sb.WriteString(fmt.Sprintf(" %10s", "-"))
				continue
			}
			sb.WriteString(fmt.Sprintf(" %10s", result.NetMonthly.StringFixed(0)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats crossover results as JSON
type JSONFormatter struct {
	Pretty bool
}

// crossoverReport is the JSON document for a crossover search
type crossoverReport struct {
	Range      SweepOptions            `json:"range"`
	Crossovers []domain.CrossoverPoint `json:"crossovers"`
}

// FormatCrossovers generates JSON output
func (jf *JSONFormatter) FormatCrossovers(crossovers []domain.CrossoverPoint, opts SweepOptions) (string, error) {
	if crossovers == nil {
		crossovers = []domain.CrossoverPoint{}
	}
	report := crossoverReport{Range: opts, Crossovers: crossovers}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

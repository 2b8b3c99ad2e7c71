package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

const (
	tableWidth   = 88
	minNameWidth = 28
)

// Format renders the base regime and its alternatives as a ranked table,
// followed by each alternative's difference from the base
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder
	rule := func(ch string) { sb.WriteString(strings.Repeat(ch, tableWidth) + "\n") }

	sb.WriteString("TAX REGIME COMPARISON\n")
	rule("=")
	fmt.Fprintf(&sb, "Base Regime: %s\n", compSet.BaseName)
	if compSet.ConfigPath != "" {
		fmt.Fprintf(&sb, "Configuration: %s\n", compSet.ConfigPath)
	}
	sb.WriteString("\n")

	nameWidth := tf.nameWidth(compSet)
	fmt.Fprintf(&sb, "%3s  %-*s %10s %10s %9s %9s %10s\n",
		"#", nameWidth, "Regime", "Net/Year", "Net/Month", "Tax/Mo", "SS/Mo", "Eff. Rate")
	rule("-")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, true))
	}
	if len(compSet.AlternativeResults) > 0 {
		rule("-")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, false))
		}
	}
	rule("=")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		rule("-")
		for _, alt := range compSet.AlternativeResults {
			fmt.Fprintf(&sb, "\n%s:\n", alt.Name)
			fmt.Fprintf(&sb, "  Net Income:   %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				tf.formatDecimal(alt.NetDiffFromBase.Abs()),
				alt.NetPctFromBase.StringFixed(1))
			fmt.Fprintf(&sb, "  Per Month:    %s€%s\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				alt.NetDiffFromBase.Abs().Div(decimal.NewFromInt(12)).StringFixed(0))

			// A tax decrease is shown as a gain
			if !alt.TaxDiffFromBase.IsZero() {
				fmt.Fprintf(&sb, "  Tax Impact:   %s€%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase.Neg()),
					tf.formatDecimal(alt.TaxDiffFromBase.Abs()))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		rule("-")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow renders one regime line. What-if variants carry no rank.
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}
	rank := "-"
	if result.Rank > 0 {
		rank = fmt.Sprintf("%d", result.Rank)
	}

	return fmt.Sprintf("%3s  %-*s %10s %10s %9s %9s %10s\n",
		rank,
		nameWidth, name,
		"€"+tf.formatDecimal(result.NetAnnual),
		"€"+result.NetMonthly.StringFixed(0),
		"€"+result.MonthlyTax.StringFixed(0),
		"€"+result.MonthlySS.StringFixed(0),
		percent(result.EffectiveRate)+"%")
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix for a delta printed as an absolute value
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// nameWidth fits the longest row name so what-if variants stay distinguishable
func (tf *TableFormatter) nameWidth(compSet *ComparisonSet) int {
	width := minNameWidth
	if compSet.BaseResult != nil {
		width = max(width, utf8.RuneCountInString(compSet.BaseResult.Name+" (base)"))
	}
	for _, alt := range compSet.AlternativeResults {
		width = max(width, utf8.RuneCountInString(alt.Name))
	}
	return width
}

// FormatCompact creates a compact single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		netChange := "="
		if alt.NetDiffFromBase.IsPositive() {
			netChange = fmt.Sprintf("+€%s", tf.formatDecimal(alt.NetDiffFromBase))
		} else if alt.NetDiffFromBase.IsNegative() {
			netChange = fmt.Sprintf("-€%s", tf.formatDecimal(alt.NetDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, netChange))
	}

	return sb.String()
}

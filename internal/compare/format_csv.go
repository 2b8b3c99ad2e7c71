package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Name",
		"Type",
		"Regime",
		"Rank",
		"Net Annual",
		"Net Monthly",
		"Total Taxes",
		"Effective Rate",
		"Monthly Tax",
		"Monthly SS",
		"Net Diff from Base",
		"Net % Change",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.Name,
		rowType,
		string(result.Regime),
		strconv.Itoa(result.Rank),
		result.NetAnnual.StringFixed(2),
		result.NetMonthly.StringFixed(2),
		result.TotalTaxes.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.MonthlyTax.StringFixed(2),
		result.MonthlySS.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}

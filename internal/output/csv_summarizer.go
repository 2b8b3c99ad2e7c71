package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
)

// CSVSummarizer implements the summary CSV output (one row per regime, in request order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "GrossAnnual", "IRPF", "SocialSecurity", "CorporateTax", "DividendTax", "TotalTaxes", "NetAnnual", "NetMonthly", "EffectiveRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		row := []string{
			string(r.Regime),
			r.GrossAnnual.StringFixed(2),
			r.Breakdown.IRPF.StringFixed(2),
			r.Breakdown.SocialSecurity.StringFixed(2),
			optional(r.Breakdown.CorporateTax),
			optional(r.Breakdown.DividendTax),
			r.TotalTaxes().StringFixed(2),
			r.NetAnnual.StringFixed(2),
			r.NetMonthly.StringFixed(2),
			r.EffectiveRate.StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

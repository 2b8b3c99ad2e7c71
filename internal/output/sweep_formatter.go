package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepFormatter renders a revenue sweep as a series per regime
type SweepFormatter interface {
	Name() string
	FormatSweep(points []domain.SweepPoint, regimes []domain.Regime) ([]byte, error)
}

// SweepFormatterFor returns the sweep formatter for name (csv or json)
func SweepFormatterFor(name string) (SweepFormatter, error) {
	switch strings.ToLower(name) {
	case "csv":
		return SweepCSVFormatter{}, nil
	case "json":
		return SweepJSONFormatter{Pretty: true}, nil
	default:
		return nil, fmt.Errorf("unsupported sweep format: %s (available: csv, json)", name)
	}
}

// SweepCSVFormatter writes one row per revenue with the net monthly income of
// each regime, the series the chart plots.
type SweepCSVFormatter struct{}

func (s SweepCSVFormatter) Name() string { return "csv" }

func (s SweepCSVFormatter) FormatSweep(points []domain.SweepPoint, regimes []domain.Regime) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := make([]string, 0, len(regimes)+1)
	header = append(header, "Revenue")
	for _, r := range regimes {
		header = append(header, string(r))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range points {
		row := make([]string, 0, len(regimes)+1)
		row = append(row, p.Revenue.StringFixed(0))
		for _, r := range regimes {
			result, ok := p.Results[r]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, result.NetMonthly.StringFixed(2))
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

// SweepJSONFormatter writes the sweep as named series
type SweepJSONFormatter struct {
	Pretty bool
}

type sweepSeries struct {
	Regime     domain.Regime     `json:"regime"`
	Name       string            `json:"name"`
	NetMonthly []decimal.Decimal `json:"net_monthly"`
}

type sweepDocument struct {
	Revenue []decimal.Decimal `json:"revenue"`
	Series  []sweepSeries     `json:"series"`
}

func (s SweepJSONFormatter) Name() string { return "json" }

func (s SweepJSONFormatter) FormatSweep(points []domain.SweepPoint, regimes []domain.Regime) ([]byte, error) {
	doc := sweepDocument{
		Revenue: make([]decimal.Decimal, 0, len(points)),
		Series:  make([]sweepSeries, 0, len(regimes)),
	}
	for _, p := range points {
		doc.Revenue = append(doc.Revenue, p.Revenue)
	}
	for _, r := range regimes {
		series := sweepSeries{Regime: r, Name: r.DisplayName(), NetMonthly: make([]decimal.Decimal, 0, len(points))}
		for _, p := range points {
			series.NetMonthly = append(series.NetMonthly, p.Results[r].NetMonthly.Round(2))
		}
		doc.Series = append(doc.Series, series)
	}

	if s.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

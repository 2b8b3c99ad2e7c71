package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/esnet/internal/domain"
)

// ConsoleFormatter renders the detailed per-regime console report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	if report.DataYear > 0 {
		fmt.Fprintf(&buf, "SPANISH TAX REGIME ANALYSIS (%d TABLES)\n", report.DataYear)
	} else {
		fmt.Fprintln(&buf, "SPANISH TAX REGIME ANALYSIS")
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	p := report.Params
	fmt.Fprintln(&buf, "INPUT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Annual Revenue:    %s\n", FormatCurrency(p.AnnualRevenue))
	fmt.Fprintf(&buf, "  Monthly Expenses:  %s\n", FormatCurrency(p.MonthlyExpenses))
	fmt.Fprintf(&buf, "  Community:         %s\n", p.Community.DisplayName())
	fmt.Fprintf(&buf, "  Marital Status:    %s\n", p.MaritalStatus.DisplayName())
	fmt.Fprintf(&buf, "  Children:          %d\n", p.Children)
	if p.CompanyAge != nil {
		fmt.Fprintf(&buf, "  Company Age:       %d years\n", *p.CompanyAge)
	}
	if p.BeckhamYear != nil {
		fmt.Fprintf(&buf, "  Beckham Year:      %d\n", *p.BeckhamYear)
	}
	fmt.Fprintln(&buf)

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Results) == 0 {
		fmt.Fprintln(&buf, "No regimes calculated.")
		return buf.Bytes(), nil
	}

	for i := range report.Results {
		writeRegime(&buf, &report.Results[i])
	}

	writeRanking(&buf, report)

	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, r *domain.TaxCalculationResult) {
	fmt.Fprintf(buf, "%s\n", strings.ToUpper(r.Regime.DisplayName()))
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	b := r.Breakdown
	fmt.Fprintf(buf, "  IRPF:                %s\n", FormatCurrency(b.IRPF))
	fmt.Fprintf(buf, "  Social Security:     %s\n", FormatCurrency(b.SocialSecurity))
	if b.MEI != nil {
		fmt.Fprintf(buf, "    of which MEI:      %s\n", FormatCurrency(*b.MEI))
	}
	if b.CorporateTax != nil {
		fmt.Fprintf(buf, "  Corporate Tax:       %s\n", FormatCurrency(*b.CorporateTax))
	}
	if b.DividendTax != nil {
		fmt.Fprintf(buf, "  Dividend Tax:        %s\n", FormatCurrency(*b.DividendTax))
	}
	fmt.Fprintf(buf, "  TOTAL:               %s\n", FormatCurrency(r.TotalTaxes()))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  Net Annual:          %s\n", FormatCurrency(r.NetAnnual))
	fmt.Fprintf(buf, "  Net Monthly:         %s\n", FormatCurrency(r.NetMonthly))
	fmt.Fprintf(buf, "  Effective Rate:      %s\n", FormatPercentage(r.EffectiveRate))
	fmt.Fprintln(buf)

	writeList(buf, "Advantages", "+", r.Advantages)
	writeList(buf, "Disadvantages", "-", r.Disadvantages)
	writeList(buf, "Requirements", "•", r.Requirements)
}

func writeList(buf *bytes.Buffer, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(buf, "    %s %s\n", bullet, item)
	}
	fmt.Fprintln(buf)
}

func writeRanking(buf *bytes.Buffer, report *Report) {
	ranked := append([]domain.TaxCalculationResult(nil), report.Results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetAnnual.GreaterThan(ranked[j].NetAnnual)
	})

	fmt.Fprintln(buf, "RANKING BY NET INCOME")
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	for i, r := range ranked {
		marker := " "
		if i == 0 {
			marker = "★"
		}
		fmt.Fprintf(buf, "%s %d. %-24s %16s/year %14s/month  %s\n",
			marker, i+1, r.Regime.DisplayName(),
			FormatCurrency(r.NetAnnual), FormatCurrency(r.NetMonthly), FormatPercentage(r.EffectiveRate))
	}
	fmt.Fprintln(buf)

	if best := report.Best(); best != nil && len(ranked) > 1 {
		worst := ranked[len(ranked)-1]
		fmt.Fprintf(buf, "Recommended: %s (%s more per year than %s)\n",
			best.Regime.DisplayName(),
			FormatCurrency(best.NetAnnual.Sub(worst.NetAnnual)),
			worst.Regime.DisplayName())
	}
}

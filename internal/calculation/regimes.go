package calculation

import (
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}

// buildResult fills in the derived figures. Net income is revenue minus the
// breakdown total and is allowed to go negative so the two always add up.
func buildResult(regime domain.Regime, revenue decimal.Decimal, breakdown domain.Breakdown, advisory Advisory) domain.TaxCalculationResult {
	total := breakdown.Total()
	net := revenue.Sub(total)

	effective := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		effective = total.Div(revenue)
	}

	return domain.TaxCalculationResult{
		Regime:        regime,
		GrossAnnual:   revenue,
		NetAnnual:     net,
		NetMonthly:    net.Div(twelve),
		EffectiveRate: effective,
		Breakdown:     breakdown,
		Advantages:    advisory.Advantages,
		Disadvantages: advisory.Disadvantages,
		Requirements:  advisory.Requirements,
	}
}

// calculateEmpleado taxes salaried employment: contributions come off gross
// before IRPF
func (ce *CalculationEngine) calculateEmpleado(params domain.CalculatorParams) (domain.TaxCalculationResult, error) {
	tc := ce.TaxCalc
	revenue := params.AnnualRevenue

	ss := nonNegative(tc.SSCalc.EmployeeContributions(revenue))
	joint := tc.IRPFCalc.JointFilingReduction(params.MaritalStatus, params.Children)
	taxable := nonNegative(revenue.Sub(ss).Sub(joint))
	familyMin := tc.IRPFCalc.FamilyMinimum(params.Children)

	irpf, err := tc.IRPFCalc.CalculateIRPF(taxable, params.Community, familyMin)
	if err != nil {
		return domain.TaxCalculationResult{}, err
	}

	ce.Logger.Debugf("empleado: ss=%s joint=%s taxable=%s family_min=%s irpf=%s",
		ss.StringFixed(2), joint.StringFixed(2), taxable.StringFixed(2), familyMin.StringFixed(2), irpf.StringFixed(2))

	breakdown := domain.Breakdown{
		IRPF:           irpf,
		SocialSecurity: ss,
		MEI:            decimalPtr(tc.SSCalc.MEI(revenue)),
	}
	return buildResult(domain.RegimeEmpleado, revenue, breakdown, AdvisoryFor(domain.RegimeEmpleado, decimal.Zero)), nil
}

// calculateAutonomo covers both autónomo regimes. They share the IRPF base and
// differ only in the RETA quota.
func (ce *CalculationEngine) calculateAutonomo(regime domain.Regime, params domain.CalculatorParams) (domain.TaxCalculationResult, error) {
	tc := ce.TaxCalc
	revenue := params.AnnualRevenue
	netIncome := revenue.Sub(params.AnnualExpenses())

	joint := tc.IRPFCalc.JointFilingReduction(params.MaritalStatus, params.Children)
	taxable := nonNegative(netIncome.Sub(joint))
	familyMin := tc.IRPFCalc.FamilyMinimum(params.Children)

	irpf, err := tc.IRPFCalc.CalculateIRPF(taxable, params.Community, familyMin)
	if err != nil {
		return domain.TaxCalculationResult{}, err
	}

	var quota decimal.Decimal
	if regime == domain.RegimeAutonomoTarifaPlana {
		quota = tc.SSCalc.TarifaPlanaQuota()
	} else {
		quota = tc.SSCalc.AutonomoQuota(netIncome.Div(twelve)).Mul(twelve)
	}
	quota = nonNegative(quota)

	ce.Logger.Debugf("%s: net_income=%s taxable=%s irpf=%s quota=%s",
		regime, netIncome.StringFixed(2), taxable.StringFixed(2), irpf.StringFixed(2), quota.StringFixed(2))

	breakdown := domain.Breakdown{
		IRPF:           irpf,
		SocialSecurity: quota,
	}
	return buildResult(regime, revenue, breakdown, AdvisoryFor(regime, decimal.Zero)), nil
}

// calculateCompany covers the three SL regimes: corporate tax on profit, then
// the whole after-tax profit distributed as dividends
func (ce *CalculationEngine) calculateCompany(regime domain.Regime, params domain.CalculatorParams) (domain.TaxCalculationResult, error) {
	tc := ce.TaxCalc
	revenue := params.AnnualRevenue

	adminSS := nonNegative(tc.SSCalc.AdministratorQuota())
	profit := nonNegative(revenue.Sub(params.AnnualExpenses()).Sub(adminSS))

	rate := tc.CorporateCalc.Rate(regime, params.CompanyAge)
	corporate := profit.Mul(rate)
	dividends := profit.Sub(corporate)
	dividendTax := tc.CorporateCalc.DividendTax(dividends)

	ce.Logger.Debugf("%s: admin_ss=%s profit=%s rate=%s corporate=%s dividends=%s dividend_tax=%s",
		regime, adminSS.StringFixed(2), profit.StringFixed(2), rate.String(),
		corporate.StringFixed(2), dividends.StringFixed(2), dividendTax.StringFixed(2))

	breakdown := domain.Breakdown{
		IRPF:           decimal.Zero,
		SocialSecurity: adminSS,
		CorporateTax:   decimalPtr(corporate),
		DividendTax:    decimalPtr(dividendTax),
	}
	return buildResult(regime, revenue, breakdown, AdvisoryFor(regime, rate)), nil
}

// calculateBeckham applies the flat expatriate rate to revenue net of expenses.
// Contributions are paid as an employee.
func (ce *CalculationEngine) calculateBeckham(params domain.CalculatorParams) (domain.TaxCalculationResult, error) {
	tc := ce.TaxCalc
	revenue := params.AnnualRevenue

	taxable := revenue.Sub(params.AnnualExpenses())
	irpf := nonNegative(tc.BeckhamCalc.CalculateTax(taxable))
	ss := nonNegative(tc.SSCalc.EmployeeContributions(revenue))

	ce.Logger.Debugf("beckham: taxable=%s irpf=%s ss=%s", taxable.StringFixed(2), irpf.StringFixed(2), ss.StringFixed(2))

	breakdown := domain.Breakdown{
		IRPF:           irpf,
		SocialSecurity: ss,
	}
	return buildResult(domain.RegimeBeckham, revenue, breakdown, AdvisoryFor(domain.RegimeBeckham, decimal.Zero)), nil
}

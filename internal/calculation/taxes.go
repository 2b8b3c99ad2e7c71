package calculation

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ProgressiveTax applies ordered brackets to income. Each bracket taxes at most
// its own width; whatever is left falls into the next one.
func ProgressiveTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	remaining := income

	for _, bracket := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		inBracket := remaining
		if width, bounded := bracket.Width(); bounded {
			if width.LessThanOrEqual(decimal.Zero) {
				continue
			}
			inBracket = decimal.Min(remaining, width)
		}

		tax = tax.Add(inBracket.Mul(bracket.Rate))
		remaining = remaining.Sub(inBracket)
	}

	return tax
}

// IRPFCalculator handles personal income tax (state + regional scales)
type IRPFCalculator struct {
	State      []domain.TaxBracket
	Regional   map[domain.Community][]domain.TaxBracket
	Allowances domain.PersonalAllowances
}

// NewIRPFCalculator creates an IRPF calculator from the given tables
func NewIRPFCalculator(c *domain.TaxConstants) *IRPFCalculator {
	return &IRPFCalculator{
		State:      c.IRPF.State,
		Regional:   c.IRPF.Regional,
		Allowances: c.PersonalAllowances,
	}
}

// CalculateIRPF returns the tax on income after the family minimum.
// The minimum is taxed at the same scales and the result subtracted, so the
// outcome is never negative.
func (ic *IRPFCalculator) CalculateIRPF(income decimal.Decimal, community domain.Community, familyMinimum decimal.Decimal) (decimal.Decimal, error) {
	regional, ok := ic.Regional[community]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCommunity, community)
	}

	totalTax := ProgressiveTax(income, ic.State).Add(ProgressiveTax(income, regional))
	minimumTax := ProgressiveTax(familyMinimum, ic.State).Add(ProgressiveTax(familyMinimum, regional))

	return decimal.Max(decimal.Zero, totalTax.Sub(minimumTax)), nil
}

// FamilyMinimum returns the personal minimum plus the allowance for each child.
// The last configured child amount applies to every further child.
func (ic *IRPFCalculator) FamilyMinimum(children int) decimal.Decimal {
	total := ic.Allowances.General
	amounts := ic.Allowances.Children
	if len(amounts) == 0 {
		return total
	}

	for i := 0; i < children; i++ {
		idx := i
		if idx >= len(amounts) {
			idx = len(amounts) - 1
		}
		total = total.Add(amounts[idx])
	}
	return total
}

// JointFilingReduction returns the direct reduction of the tax base for
// joint filers: single-parent families first, then married couples
func (ic *IRPFCalculator) JointFilingReduction(status domain.MaritalStatus, children int) decimal.Decimal {
	if status == domain.MaritalSingleParent && children > 0 {
		return ic.Allowances.JointFilingSingleParent
	}
	if status == domain.MaritalMarried {
		return ic.Allowances.JointFilingMarried
	}
	return decimal.Zero
}

// SocialSecurityCalculator handles employee contributions and RETA quotas
type SocialSecurityCalculator struct {
	Rules       domain.SocialSecurityRules
	Brackets    []domain.AutonomoIncomeBracket
	TarifaPlana domain.TarifaPlanaRules
}

// NewSocialSecurityCalculator creates a social security calculator from the given tables
func NewSocialSecurityCalculator(c *domain.TaxConstants) *SocialSecurityCalculator {
	return &SocialSecurityCalculator{
		Rules:       c.SocialSecurity,
		Brackets:    c.AutonomoBrackets,
		TarifaPlana: c.TarifaPlana,
	}
}

// ContributionBase returns the monthly employee contribution base for an annual gross
func (sc *SocialSecurityCalculator) ContributionBase(grossAnnual decimal.Decimal) decimal.Decimal {
	monthly := grossAnnual.Div(twelve)
	return decimal.Min(decimal.Max(monthly, sc.Rules.Bases.Min), sc.Rules.Bases.Max)
}

// EmployeeContributions returns the worker's annual contributions. The monthly
// base is clamped to the legal floor and ceiling before the rates are applied.
func (sc *SocialSecurityCalculator) EmployeeContributions(grossAnnual decimal.Decimal) decimal.Decimal {
	base := sc.ContributionBase(grossAnnual)
	return base.Mul(twelve).Mul(sc.Rules.Employee.Total())
}

// MEI returns the intergenerational equity contribution on gross (informational)
func (sc *SocialSecurityCalculator) MEI(grossAnnual decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, grossAnnual.Mul(sc.Rules.Employee.MEI))
}

// AutonomoQuota returns the monthly RETA quota for a monthly net income, using
// the minimum base of the bracket the income falls into. Income above the table
// pays on the top maximum base; losses pay on the first bracket.
func (sc *SocialSecurityCalculator) AutonomoQuota(monthlyIncome decimal.Decimal) decimal.Decimal {
	if len(sc.Brackets) == 0 {
		return decimal.Zero
	}

	for _, b := range sc.Brackets {
		if b.Contains(monthlyIncome) {
			return b.BaseMin.Mul(sc.Rules.AutonomoRate)
		}
	}

	first := sc.Brackets[0]
	if monthlyIncome.LessThan(first.Min) {
		return first.BaseMin.Mul(sc.Rules.AutonomoRate)
	}
	last := sc.Brackets[len(sc.Brackets)-1]
	return last.BaseMax.Mul(sc.Rules.AutonomoRate)
}

// TarifaPlanaQuota returns the annual quota under the flat rate
func (sc *SocialSecurityCalculator) TarifaPlanaQuota() decimal.Decimal {
	return sc.TarifaPlana.MonthlyAmount.Mul(decimal.NewFromInt(int64(sc.TarifaPlana.Months)))
}

// AdministratorQuota returns the annual RETA quota of an SL administrator
func (sc *SocialSecurityCalculator) AdministratorQuota() decimal.Decimal {
	return sc.Rules.AdminMonthly.Mul(twelve)
}

// CorporateTaxCalculator handles company profit and dividend taxation
type CorporateTaxCalculator struct {
	Rules            domain.CorporateTaxRules
	DividendBrackets []domain.TaxBracket
}

// NewCorporateTaxCalculator creates a corporate tax calculator from the given tables
func NewCorporateTaxCalculator(c *domain.TaxConstants) *CorporateTaxCalculator {
	return &CorporateTaxCalculator{
		Rules:            c.CorporateTax,
		DividendBrackets: c.DividendBrackets,
	}
}

// Rate returns the corporate rate for a company regime. Certified startups pay
// the reduced rate only during their first StartupYears years.
func (cc *CorporateTaxCalculator) Rate(regime domain.Regime, companyAge *int) decimal.Decimal {
	switch regime {
	case domain.RegimeSLMicro:
		return cc.Rules.MicroRate
	case domain.RegimeStartupCertificada:
		if companyAge != nil && cc.Rules.StartupYears > 0 && *companyAge > cc.Rules.StartupYears {
			return cc.Rules.RegularRate
		}
		return cc.Rules.StartupRate
	default:
		return cc.Rules.RegularRate
	}
}

// DividendTax taxes distributed dividends on the savings scale
func (cc *CorporateTaxCalculator) DividendTax(dividends decimal.Decimal) decimal.Decimal {
	if dividends.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return ProgressiveTax(dividends, cc.DividendBrackets)
}

// BeckhamTaxCalculator handles the special regime for posted workers
type BeckhamTaxCalculator struct {
	Rules domain.BeckhamRules
}

// NewBeckhamTaxCalculator creates a Beckham calculator from the given tables
func NewBeckhamTaxCalculator(c *domain.TaxConstants) *BeckhamTaxCalculator {
	return &BeckhamTaxCalculator{Rules: c.Beckham}
}

// CalculateTax applies the flat rate up to the threshold and the high rate above it
func (bc *BeckhamTaxCalculator) CalculateTax(taxable decimal.Decimal) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if taxable.LessThanOrEqual(bc.Rules.Threshold) {
		return taxable.Mul(bc.Rules.Rate)
	}
	return bc.Rules.Threshold.Mul(bc.Rules.Rate).
		Add(taxable.Sub(bc.Rules.Threshold).Mul(bc.Rules.HighRate))
}

// ComprehensiveTaxCalculator bundles every calculator built from one set of tables
type ComprehensiveTaxCalculator struct {
	IRPFCalc      *IRPFCalculator
	SSCalc        *SocialSecurityCalculator
	CorporateCalc *CorporateTaxCalculator
	BeckhamCalc   *BeckhamTaxCalculator
}

// NewComprehensiveTaxCalculator creates a calculator with the 2025 tables
func NewComprehensiveTaxCalculator() *ComprehensiveTaxCalculator {
	return NewComprehensiveTaxCalculatorWithConstants(DefaultConstants())
}

// NewComprehensiveTaxCalculatorWithConstants creates a calculator with configurable tables
func NewComprehensiveTaxCalculatorWithConstants(c *domain.TaxConstants) *ComprehensiveTaxCalculator {
	return &ComprehensiveTaxCalculator{
		IRPFCalc:      NewIRPFCalculator(c),
		SSCalc:        NewSocialSecurityCalculator(c),
		CorporateCalc: NewCorporateTaxCalculator(c),
		BeckhamCalc:   NewBeckhamTaxCalculator(c),
	}
}

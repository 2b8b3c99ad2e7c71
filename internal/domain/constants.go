package domain

import (
	"github.com/shopspring/decimal"
)

// TaxConstants contains the statutory tables all regime calculations read.
// It is loaded from a YAML file or built from the compiled-in defaults and is
// never modified after construction.
type TaxConstants struct {
	Metadata           ConstantsMetadata       `yaml:"metadata" json:"metadata"`
	IRPF               IRPFScales              `yaml:"irpf" json:"irpf"`
	SocialSecurity     SocialSecurityRules     `yaml:"social_security" json:"social_security"`
	AutonomoBrackets   []AutonomoIncomeBracket `yaml:"autonomo_brackets" json:"autonomo_brackets"`
	CorporateTax       CorporateTaxRules       `yaml:"corporate_tax" json:"corporate_tax"`
	DividendBrackets   []TaxBracket            `yaml:"dividend_brackets" json:"dividend_brackets"`
	TarifaPlana        TarifaPlanaRules        `yaml:"tarifa_plana" json:"tarifa_plana"`
	Beckham            BeckhamRules            `yaml:"beckham" json:"beckham"`
	PersonalAllowances PersonalAllowances      `yaml:"personal_allowances" json:"personal_allowances"`
}

// ConstantsMetadata describes where the tables come from
type ConstantsMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is one progressive segment. A nil Max means the bracket is unbounded.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Width returns the bracket width and whether the bracket is bounded
func (b TaxBracket) Width() (decimal.Decimal, bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return b.Max.Sub(b.Min), true
}

// IRPFScales holds the state scale and one regional scale per community
type IRPFScales struct {
	State    []TaxBracket               `yaml:"state" json:"state"`
	Regional map[Community][]TaxBracket `yaml:"regional" json:"regional"`
}

// SocialSecurityRules contains contribution rates and bases
type SocialSecurityRules struct {
	Employee     EmployeeContributionRates `yaml:"employee" json:"employee"`
	Bases        ContributionBases         `yaml:"bases" json:"bases"`
	AutonomoRate decimal.Decimal           `yaml:"autonomo_rate" json:"autonomo_rate"`
	AdminMonthly decimal.Decimal           `yaml:"sl_administrator_monthly" json:"sl_administrator_monthly"`
}

// EmployeeContributionRates are the worker's share of general regime contributions
type EmployeeContributionRates struct {
	General      decimal.Decimal `yaml:"general" json:"general"`
	Unemployment decimal.Decimal `yaml:"unemployment" json:"unemployment"`
	Training     decimal.Decimal `yaml:"training" json:"training"`
	MEI          decimal.Decimal `yaml:"mei" json:"mei"`
}

// Total returns the combined employee rate
func (r EmployeeContributionRates) Total() decimal.Decimal {
	return r.General.Add(r.Unemployment).Add(r.Training).Add(r.MEI)
}

// ContributionBases are the monthly floor and ceiling for employee contributions
type ContributionBases struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// AutonomoIncomeBracket maps monthly net income to a RETA contribution base.
// A nil Max means the bracket is unbounded.
type AutonomoIncomeBracket struct {
	Min     decimal.Decimal  `yaml:"min" json:"min"`
	Max     *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	BaseMin decimal.Decimal  `yaml:"base_min" json:"base_min"`
	BaseMax decimal.Decimal  `yaml:"base_max" json:"base_max"`
}

// Contains reports whether monthly income falls inside the bracket
func (b AutonomoIncomeBracket) Contains(monthly decimal.Decimal) bool {
	if monthly.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || monthly.LessThan(*b.Max)
}

// CorporateTaxRules contains Impuesto sobre Sociedades rates
type CorporateTaxRules struct {
	MicroRate    decimal.Decimal `yaml:"micro_rate" json:"micro_rate"`
	RegularRate  decimal.Decimal `yaml:"regular_rate" json:"regular_rate"`
	StartupRate  decimal.Decimal `yaml:"startup_rate" json:"startup_rate"`
	StartupYears int             `yaml:"startup_years" json:"startup_years"`
}

// TarifaPlanaRules describes the reduced flat quota for new autónomos
type TarifaPlanaRules struct {
	Months        int             `yaml:"months" json:"months"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
}

// BeckhamRules contains the special expatriate regime rates
type BeckhamRules struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	HighRate  decimal.Decimal `yaml:"high_rate" json:"high_rate"`
	MaxYears  int             `yaml:"max_years" json:"max_years"`
}

// PersonalAllowances contains the personal and family minimum amounts and the
// joint filing reductions
type PersonalAllowances struct {
	General                 decimal.Decimal   `yaml:"general" json:"general"`
	JointFilingMarried      decimal.Decimal   `yaml:"joint_filing_married" json:"joint_filing_married"`
	JointFilingSingleParent decimal.Decimal   `yaml:"joint_filing_single_parent" json:"joint_filing_single_parent"`
	Children                []decimal.Decimal `yaml:"children" json:"children"` // the last entry repeats for further children
	ChildUnder3             decimal.Decimal   `yaml:"child_under_3" json:"child_under_3"`
}

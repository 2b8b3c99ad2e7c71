package calculation

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// Advisory is the static guidance attached to every result
type Advisory struct {
	Advantages    []string
	Disadvantages []string
	Requirements  []string
}

var companyRequirements = []string{
	"Incorporate a limited company (SL)",
	"Register the administrator in RETA",
	"Keep company accounts",
	"File annual accounts",
}

// AdvisoryFor returns the guidance for a regime. Company regimes mention the
// corporate rate actually applied.
func AdvisoryFor(regime domain.Regime, corporateRate decimal.Decimal) Advisory {
	switch regime {
	case domain.RegimeEmpleado:
		return Advisory{
			Advantages: []string{
				"Full social protection",
				"Paid holidays and sick leave",
				"Entitled to unemployment benefit",
			},
			Disadvantages: []string{
				"High taxes on large incomes",
				"Expenses cannot be deducted",
				"Few optimisation options",
			},
			Requirements: []string{
				"Employment contract with a Spanish company",
				"Any nationality",
			},
		}
	case domain.RegimeAutonomoRegular:
		return Advisory{
			Advantages: []string{
				"Business expenses reduce the tax base",
				"Flexible working",
				"Social protection",
			},
			Disadvantages: []string{
				"High fixed contributions",
				"Quarterly filings and bookkeeping",
			},
			Requirements: []string{
				"Registration in RETA",
				"Income and expense books",
			},
		}
	case domain.RegimeAutonomoTarifaPlana:
		return Advisory{
			Advantages: []string{
				"Business expenses reduce the tax base",
				"Very low starting quota (80€/month)",
				"Time to grow the business",
			},
			Disadvantages: []string{
				"Limited to the first 12 months",
				"Sharp quota increase afterwards",
			},
			Requirements: []string{
				"First registration as autónomo",
				"Not autónomo in the last 2 years",
				"No debts with Hacienda or Social Security",
			},
		}
	case domain.RegimeSLMicro, domain.RegimeSLRegular, domain.RegimeStartupCertificada:
		return Advisory{
			Advantages: []string{
				"Business expenses reduce company profit",
				"Limited liability",
				"Income can be taken as dividends",
				fmt.Sprintf("Corporate tax: %s%%", corporateRate.Mul(decimal.NewFromInt(100)).String()),
				"No social security on dividends",
			},
			Disadvantages: []string{
				"Mandatory administrator contributions: 205€/month",
				"Heavier administration",
				"Profits are taxed twice",
				"Minimum share capital 3,000€",
			},
			Requirements: append([]string(nil), companyRequirements...),
		}
	case domain.RegimeBeckham:
		return Advisory{
			Advantages: []string{
				"Business expenses reduce the tax base",
				"Flat 24% rate up to 600k€",
				"Only Spanish-source income is taxed",
				"Simple return",
			},
			Disadvantages: []string{
				"No standard allowances (rent, children)",
				"47% above 600k€",
				"Not available to everyone",
				"Limited to 6 years",
			},
			Requirements: []string{
				"Not resident in Spain for the last 5 years",
				"Moving to Spain for work",
				"Spanish employment contract",
				"Apply within 6 months of arrival",
			},
		}
	}
	return Advisory{}
}

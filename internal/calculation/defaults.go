package calculation

import (
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. IRPF: 2025 state scale plus the 2025 regional scale of the selected
//    community. The personal and family minimum is applied by taxing it at
//    the same scales and subtracting (cuota sobre el mínimo).
//
// 2. Employee social security: worker share only (4.7% + 1.55% + 0.1% + MEI 0.13%),
//    monthly base clamped between the 2025 minimum and maximum bases.
//
// 3. RETA: income-bracket system with the minimum base of each bracket.
//
// 4. Corporate tax: flat 23% for companies under 1M€ turnover (Ley 38/2024),
//    25% general rate, 15% for certified startups during their first 4 years.
//
// 5. Children under 3 supplement is in the tables but not applied: ages are
//    not part of the input.

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func upTo(f float64) *decimal.Decimal {
	v := decimal.NewFromFloat(f)
	return &v
}

// DefaultConstants returns the 2025 tax tables
func DefaultConstants() *domain.TaxConstants {
	return &domain.TaxConstants{
		Metadata: domain.ConstantsMetadata{
			DataYear:    2025,
			Description: "Spanish IRPF, Seguridad Social and Impuesto sobre Sociedades 2025",
		},
		IRPF: domain.IRPFScales{
			State: []domain.TaxBracket{
				{Min: dec(0), Max: upTo(12450), Rate: dec(0.19)},
				{Min: dec(12450), Max: upTo(20200), Rate: dec(0.24)},
				{Min: dec(20200), Max: upTo(35200), Rate: dec(0.30)},
				{Min: dec(35200), Max: upTo(60000), Rate: dec(0.37)},
				{Min: dec(60000), Max: upTo(300000), Rate: dec(0.45)},
				{Min: dec(300000), Rate: dec(0.47)},
			},
			Regional: map[domain.Community][]domain.TaxBracket{
				domain.CommunityMadrid: {
					{Min: dec(0), Max: upTo(12450), Rate: dec(0.085)},
					{Min: dec(12450), Max: upTo(20200), Rate: dec(0.115)},
					{Min: dec(20200), Max: upTo(35200), Rate: dec(0.14)},
					{Min: dec(35200), Max: upTo(60000), Rate: dec(0.175)},
					{Min: dec(60000), Rate: dec(0.205)},
				},
				// Llei 2/2025
				domain.CommunityCatalunya: {
					{Min: dec(0), Max: upTo(12450), Rate: dec(0.105)},
					{Min: dec(12450), Max: upTo(17707), Rate: dec(0.12)},
					{Min: dec(17707), Max: upTo(21000), Rate: dec(0.14)},
					{Min: dec(21000), Max: upTo(33007), Rate: dec(0.15)},
					{Min: dec(33007), Max: upTo(53407), Rate: dec(0.188)},
					{Min: dec(53407), Max: upTo(90000), Rate: dec(0.215)},
					{Min: dec(90000), Max: upTo(120000), Rate: dec(0.235)},
					{Min: dec(120000), Max: upTo(175000), Rate: dec(0.245)},
					{Min: dec(175000), Rate: dec(0.255)},
				},
				domain.CommunityValencia: {
					{Min: dec(0), Max: upTo(12450), Rate: dec(0.09)},
					{Min: dec(12450), Max: upTo(20200), Rate: dec(0.12)},
					{Min: dec(20200), Max: upTo(35200), Rate: dec(0.15)},
					{Min: dec(35200), Max: upTo(60000), Rate: dec(0.185)},
					{Min: dec(60000), Rate: dec(0.225)},
				},
			},
		},
		SocialSecurity: domain.SocialSecurityRules{
			Employee: domain.EmployeeContributionRates{
				General:      dec(0.047),
				Unemployment: dec(0.0155),
				Training:     dec(0.001),
				MEI:          dec(0.0013),
			},
			Bases: domain.ContributionBases{
				Min: dec(1381.20),
				Max: dec(4909.50),
			},
			AutonomoRate: dec(0.283),
			AdminMonthly: dec(205), // lowest RETA bracket for SL administrators
		},
		// Tabla reducida (first three rows) + tabla general
		AutonomoBrackets: []domain.AutonomoIncomeBracket{
			{Min: dec(0), Max: upTo(670), BaseMin: dec(653.59), BaseMax: dec(718.94)},
			{Min: dec(670), Max: upTo(900), BaseMin: dec(718.95), BaseMax: dec(900)},
			{Min: dec(900), Max: upTo(1166.70), BaseMin: dec(849.67), BaseMax: dec(1166.70)},
			{Min: dec(1166.70), Max: upTo(1300), BaseMin: dec(950.98), BaseMax: dec(1300)},
			{Min: dec(1300), Max: upTo(1500), BaseMin: dec(960.78), BaseMax: dec(1500)},
			{Min: dec(1500), Max: upTo(1700), BaseMin: dec(960.78), BaseMax: dec(1700)},
			{Min: dec(1700), Max: upTo(1850), BaseMin: dec(1143.79), BaseMax: dec(1850)},
			{Min: dec(1850), Max: upTo(2030), BaseMin: dec(1209.15), BaseMax: dec(2030)},
			{Min: dec(2030), Max: upTo(2330), BaseMin: dec(1274.51), BaseMax: dec(2330)},
			{Min: dec(2330), Max: upTo(2760), BaseMin: dec(1356.21), BaseMax: dec(2760)},
			{Min: dec(2760), Max: upTo(3190), BaseMin: dec(1437.91), BaseMax: dec(3190)},
			{Min: dec(3190), Max: upTo(3620), BaseMin: dec(1519.61), BaseMax: dec(3620)},
			{Min: dec(3620), Max: upTo(4050), BaseMin: dec(1601.31), BaseMax: dec(4050)},
			{Min: dec(4050), Max: upTo(6000), BaseMin: dec(1732.03), BaseMax: dec(4909.50)},
			{Min: dec(6000), BaseMin: dec(1928.10), BaseMax: dec(4909.50)},
		},
		CorporateTax: domain.CorporateTaxRules{
			MicroRate:    dec(0.23),
			RegularRate:  dec(0.25),
			StartupRate:  dec(0.15),
			StartupYears: 4,
		},
		// Savings base scale applied to distributed dividends
		DividendBrackets: []domain.TaxBracket{
			{Min: dec(0), Max: upTo(6000), Rate: dec(0.19)},
			{Min: dec(6000), Max: upTo(50000), Rate: dec(0.21)},
			{Min: dec(50000), Max: upTo(200000), Rate: dec(0.23)},
			{Min: dec(200000), Max: upTo(300000), Rate: dec(0.27)},
			{Min: dec(300000), Rate: dec(0.30)},
		},
		TarifaPlana: domain.TarifaPlanaRules{
			Months:        12,
			MonthlyAmount: dec(80),
		},
		Beckham: domain.BeckhamRules{
			Rate:      dec(0.24),
			Threshold: dec(600000),
			HighRate:  dec(0.47),
			MaxYears:  6,
		},
		PersonalAllowances: domain.PersonalAllowances{
			General:                 dec(5550),
			JointFilingMarried:      dec(3400),
			JointFilingSingleParent: dec(2150),
			Children:                []decimal.Decimal{dec(2400), dec(2700), dec(4000), dec(4500)},
			ChildUnder3:             dec(2800),
		},
	}
}

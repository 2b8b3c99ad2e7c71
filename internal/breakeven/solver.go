package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver evaluates regimes across revenue levels
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Sweep calculates every regime in params at each revenue level of the range.
// All other parameters stay fixed.
func (s *Solver) Sweep(ctx context.Context, params domain.CalculatorParams, opts SweepOptions) ([]domain.SweepPoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(params.Regimes) == 0 {
		return nil, &BreakEvenError{Operation: "sweep", Message: "no regimes to sweep"}
	}

	points := make([]domain.SweepPoint, 0, opts.Points())
	for revenue := opts.From; revenue.LessThanOrEqual(opts.To); revenue = revenue.Add(opts.Step) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		point, err := s.evaluate(params.WithRevenue(revenue))
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "sweep",
				Message:   fmt.Sprintf("failed at revenue %s", revenue.StringFixed(0)),
				Cause:     err,
			}
		}
		points = append(points, point)
	}

	return points, nil
}

// FindCrossovers locates every revenue in the range where two regimes yield
// the same net annual income. A sweep brackets sign changes of the net
// difference and bisection narrows each bracket to the solver tolerance.
func (s *Solver) FindCrossovers(ctx context.Context, params domain.CalculatorParams, opts SweepOptions) ([]domain.CrossoverPoint, error) {
	points, err := s.Sweep(ctx, params, opts)
	if err != nil {
		return nil, err
	}
	return s.CrossoversFromSweep(ctx, params, points)
}

// CrossoversFromSweep locates crossovers using points already produced by
// Sweep for the same params. Only the bisection steps are recalculated.
func (s *Solver) CrossoversFromSweep(ctx context.Context, params domain.CalculatorParams, points []domain.SweepPoint) ([]domain.CrossoverPoint, error) {
	regimes := params.Regimes
	crossovers := []domain.CrossoverPoint{}

	for i := 0; i < len(regimes); i++ {
		for j := i + 1; j < len(regimes); j++ {
			r1, r2 := regimes[i], regimes[j]
			if r1 == r2 {
				continue
			}

			for k := range points {
				d1 := netDifference(points[k], r1, r2)
				if k == 0 {
					if d1.IsZero() {
						crossovers = append(crossovers, crossoverAt(points[k].Revenue, r1, r2, d1))
					}
					continue
				}

				d0 := netDifference(points[k-1], r1, r2)
				switch {
				case d0.IsZero():
					// Already recorded at the previous point
				case d1.IsZero():
					crossovers = append(crossovers, crossoverAt(points[k].Revenue, r1, r2, d1))
				case d0.Sign() != d1.Sign():
					cp, err := s.bisect(ctx, params, r1, r2, points[k-1].Revenue, points[k].Revenue, d0)
					if err != nil {
						return nil, err
					}
					crossovers = append(crossovers, cp)
				}
			}
		}
	}

	return crossovers, nil
}

// bisect narrows [lo, hi] around the sign change of net(r1) - net(r2)
func (s *Solver) bisect(
	ctx context.Context,
	params domain.CalculatorParams,
	r1, r2 domain.Regime,
	lo, hi decimal.Decimal,
	dLo decimal.Decimal,
) (domain.CrossoverPoint, error) {
	two := decimal.NewFromInt(2)
	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}

	mid := lo.Add(hi).Div(two)
	diff := dLo
	for iterations := 0; iterations < maxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return domain.CrossoverPoint{}, ctx.Err()
		default:
		}

		mid = lo.Add(hi).Div(two)
		var err error
		diff, err = s.difference(params.WithRevenue(mid), r1, r2)
		if err != nil {
			return domain.CrossoverPoint{}, &BreakEvenError{
				Operation: "find_crossovers",
				Message:   fmt.Sprintf("failed to evaluate %s vs %s at %s", r1, r2, mid.StringFixed(2)),
				Cause:     err,
			}
		}

		if diff.IsZero() || hi.Sub(lo).LessThanOrEqual(s.Options.Tolerance) {
			break
		}
		if diff.Sign() == dLo.Sign() {
			lo = mid
		} else {
			hi = mid
		}
	}

	return crossoverAt(mid.Round(2), r1, r2, diff), nil
}

func (s *Solver) evaluate(params domain.CalculatorParams) (domain.SweepPoint, error) {
	point := domain.SweepPoint{
		Revenue: params.AnnualRevenue,
		Results: make(map[domain.Regime]domain.TaxCalculationResult, len(params.Regimes)),
	}
	for _, regime := range params.Regimes {
		result, err := s.CalcEngine.Calculate(regime, params)
		if err != nil {
			return domain.SweepPoint{}, err
		}
		point.Results[regime] = *result
	}
	return point, nil
}

func (s *Solver) difference(params domain.CalculatorParams, r1, r2 domain.Regime) (decimal.Decimal, error) {
	a, err := s.CalcEngine.Calculate(r1, params)
	if err != nil {
		return decimal.Zero, err
	}
	b, err := s.CalcEngine.Calculate(r2, params)
	if err != nil {
		return decimal.Zero, err
	}
	return a.NetAnnual.Sub(b.NetAnnual), nil
}

func netDifference(point domain.SweepPoint, r1, r2 domain.Regime) decimal.Decimal {
	return point.Results[r1].NetAnnual.Sub(point.Results[r2].NetAnnual)
}

func crossoverAt(revenue decimal.Decimal, r1, r2 domain.Regime, diff decimal.Decimal) domain.CrossoverPoint {
	return domain.CrossoverPoint{
		Revenue:    revenue,
		Regime1:    r1,
		Regime2:    r2,
		Difference: diff,
	}
}

// NetMonthlySeries extracts the net monthly income of one regime across a sweep
func NetMonthlySeries(points []domain.SweepPoint, regime domain.Regime) []decimal.Decimal {
	series := make([]decimal.Decimal, 0, len(points))
	for _, p := range points {
		if result, ok := p.Results[regime]; ok {
			series = append(series, result.NetMonthly)
		}
	}
	return series
}

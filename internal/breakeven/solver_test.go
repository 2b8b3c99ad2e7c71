package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	options := SolverOptions{Tolerance: decimal.NewFromInt(10), MaxIterations: 5}

	solver := NewSolver(calcEngine, options)
	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, 5, solver.Options.MaxIterations)

	solver = NewDefaultSolver(calcEngine)
	assert.Equal(t, DefaultSolverOptions().MaxIterations, solver.Options.MaxIterations)
	assert.True(t, decimal.NewFromInt(1).Equal(solver.Options.Tolerance))
}

func TestSweepOptions(t *testing.T) {
	assert.Equal(t, 55, DefaultSweepOptions().Points())
	assert.NoError(t, DefaultSweepOptions().Validate())

	tests := []struct {
		name    string
		opts    SweepOptions
		points  int
		wantErr bool
	}{
		{"single point", SweepOptions{From: decimal.NewFromInt(50000), To: decimal.NewFromInt(50000), Step: decimal.NewFromInt(1000)}, 1, false},
		{"uneven step", SweepOptions{From: decimal.Zero, To: decimal.NewFromInt(10500), Step: decimal.NewFromInt(5000)}, 3, false},
		{"negative from", SweepOptions{From: decimal.NewFromInt(-1), To: decimal.NewFromInt(10), Step: decimal.NewFromInt(1)}, 12, true},
		{"inverted", SweepOptions{From: decimal.NewFromInt(10), To: decimal.NewFromInt(5), Step: decimal.NewFromInt(1)}, 0, true},
		{"zero step", SweepOptions{From: decimal.Zero, To: decimal.NewFromInt(5), Step: decimal.Zero}, 0, true},
		{"too many points", SweepOptions{From: decimal.Zero, To: decimal.NewFromInt(1000000), Step: decimal.NewFromInt(1)}, MaxSweepPoints + 1, true},
		{"beyond int64", SweepOptions{From: decimal.Zero, To: decimal.RequireFromString("1e40"), Step: decimal.NewFromInt(1)}, MaxSweepPoints + 1, true},
		{"wraps to one", SweepOptions{From: decimal.Zero, To: decimal.RequireFromString("18446744073709551616000"), Step: decimal.NewFromInt(1000)}, MaxSweepPoints + 1, true},
		{"at the limit", SweepOptions{From: decimal.NewFromInt(1), To: decimal.NewFromInt(MaxSweepPoints), Step: decimal.NewFromInt(1)}, MaxSweepPoints, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.points, tt.opts.Points())

			err := tt.opts.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var beErr *BreakEvenError
			require.True(t, errors.As(err, &beErr))
			assert.Equal(t, "validate_sweep", beErr.Operation)
		})
	}
}

func TestSolver_Sweep_Default(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	params := domain.DefaultParams()
	params.Regimes = domain.AllRegimes()

	points, err := solver.Sweep(context.Background(), params, DefaultSweepOptions())
	require.NoError(t, err)
	require.Len(t, points, 55)

	assert.True(t, decimal.NewFromInt(30000).Equal(points[0].Revenue))
	assert.True(t, decimal.NewFromInt(300000).Equal(points[54].Revenue))

	for _, p := range points {
		assert.Len(t, p.Results, len(domain.AllRegimes()))
		for regime, result := range p.Results {
			assert.Equal(t, regime, result.Regime)
			assert.True(t, p.Revenue.Equal(result.GrossAnnual))
		}
	}

	// The sweep point at 75k matches a direct calculation
	at75k := points[9]
	require.True(t, decimal.NewFromInt(75000).Equal(at75k.Revenue))
	assert.True(t, decimal.RequireFromString("39093.168616").Equal(at75k.Results[domain.RegimeEmpleado].NetAnnual))

	series := NetMonthlySeries(points, domain.RegimeSLMicro)
	require.Len(t, series, 55)
	assert.True(t, series[54].GreaterThan(series[0]))

	assert.Empty(t, NetMonthlySeries(points, domain.Regime("cooperativa")))
}

func TestSolver_Sweep_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	params := domain.DefaultParams()

	_, err := solver.Sweep(context.Background(), params, SweepOptions{Step: decimal.Zero})
	assert.Error(t, err)

	empty := params
	empty.Regimes = nil
	_, err = solver.Sweep(context.Background(), empty, DefaultSweepOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no regimes to sweep")

	bad := params.DeepCopy()
	bad.Community = "galicia"
	_, err = solver.Sweep(context.Background(), bad, DefaultSweepOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrUnknownCommunity)
	assert.Contains(t, err.Error(), "sweep: failed at revenue 30000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.Sweep(ctx, params, DefaultSweepOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_FindCrossovers(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	// Without deductible expenses a salary beats a company at low revenue
	// and the company wins at 75k.
	params := domain.DefaultParams()
	params.MonthlyExpenses = decimal.Zero
	params.Regimes = []domain.Regime{domain.RegimeEmpleado, domain.RegimeSLMicro}

	opts := SweepOptions{
		From: decimal.NewFromInt(10000),
		To:   decimal.NewFromInt(75000),
		Step: decimal.NewFromInt(5000),
	}

	crossovers, err := solver.FindCrossovers(context.Background(), params, opts)
	require.NoError(t, err)
	require.NotEmpty(t, crossovers)

	cp := crossovers[0]
	assert.Equal(t, domain.RegimeEmpleado, cp.Regime1)
	assert.Equal(t, domain.RegimeSLMicro, cp.Regime2)
	assert.True(t, cp.Revenue.GreaterThan(opts.From))
	assert.True(t, cp.Revenue.LessThan(opts.To))
	assert.True(t, cp.Difference.Abs().LessThan(decimal.NewFromInt(5)), "difference %s", cp.Difference)

	netDiff := func(revenue decimal.Decimal) decimal.Decimal {
		p := params.WithRevenue(revenue)
		a, err := engine.Calculate(domain.RegimeEmpleado, p)
		require.NoError(t, err)
		b, err := engine.Calculate(domain.RegimeSLMicro, p)
		require.NoError(t, err)
		return a.NetAnnual.Sub(b.NetAnnual)
	}

	assert.True(t, netDiff(cp.Revenue.Sub(decimal.NewFromInt(100))).IsPositive())
	assert.True(t, netDiff(cp.Revenue.Add(decimal.NewFromInt(100))).IsNegative())
}

func TestSolver_CrossoversFromSweep(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	params := domain.DefaultParams()
	params.MonthlyExpenses = decimal.Zero
	params.Regimes = []domain.Regime{domain.RegimeEmpleado, domain.RegimeSLMicro}
	opts := SweepOptions{
		From: decimal.NewFromInt(10000),
		To:   decimal.NewFromInt(75000),
		Step: decimal.NewFromInt(5000),
	}

	points, err := solver.Sweep(context.Background(), params, opts)
	require.NoError(t, err)

	fromPoints, err := solver.CrossoversFromSweep(context.Background(), params, points)
	require.NoError(t, err)
	direct, err := solver.FindCrossovers(context.Background(), params, opts)
	require.NoError(t, err)

	require.Len(t, fromPoints, len(direct))
	for i := range direct {
		assert.True(t, direct[i].Revenue.Equal(fromPoints[i].Revenue))
		assert.Equal(t, direct[i].Regime1, fromPoints[i].Regime1)
		assert.Equal(t, direct[i].Regime2, fromPoints[i].Regime2)
	}

	none, err := solver.CrossoversFromSweep(context.Background(), params, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSolver_FindCrossovers_NoneWhenRankingStable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	// The flat-rate quota is always below the regular quota
	params := domain.DefaultParams()
	params.Regimes = []domain.Regime{domain.RegimeAutonomoRegular, domain.RegimeAutonomoTarifaPlana}

	crossovers, err := solver.FindCrossovers(context.Background(), params, DefaultSweepOptions())
	require.NoError(t, err)
	assert.Empty(t, crossovers)
}

func TestSolver_FindCrossovers_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.FindCrossovers(ctx, domain.DefaultParams(), DefaultSweepOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")

	err := &BreakEvenError{Operation: "sweep", Message: "failed", Cause: cause}
	assert.Equal(t, "sweep: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &BreakEvenError{Operation: "validate_sweep", Message: "step must be positive"}
	assert.Equal(t, "validate_sweep: step must be positive", err.Error())
	assert.Nil(t, err.Unwrap())
}

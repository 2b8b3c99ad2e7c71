package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/esnet/internal/breakeven"
	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/compare"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/tui/components"
	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Focusable controls, in display order. Regime toggles follow the last one.
const (
	ctrlRevenue = iota
	ctrlExpenses
	ctrlChildren
	ctrlCommunity
	ctrlStatus
	ctrlCompanyAge
	ctrlBeckhamYear
	ctrlRegimes
)

// Model represents the entire application state
type Model struct {
	scene  Scene
	width  int
	height int

	engine *calculation.CalculationEngine
	solver *breakeven.Solver
	ranker *compare.MetricsCalculator
	sweep  breakeven.SweepOptions

	initial domain.CalculatorParams

	revenue     *components.Slider
	expenses    *components.Slider
	children    *components.Slider
	companyAge  *components.Slider
	beckhamYear *components.Slider
	community   *components.Selector
	status      *components.Selector
	regimes     []domain.Regime
	enabled     []bool
	focus       int

	// seq increases with every parameter change so stale results are dropped
	seq        int
	results    []compare.ComparisonResult
	points     []domain.SweepPoint
	crossovers []domain.CrossoverPoint
	err        error

	keys keyMap
	help help.Model
}

// NewModel creates the application model starting from params
func NewModel(engine *calculation.CalculationEngine, params domain.CalculatorParams) Model {
	m := Model{
		scene:   SceneCalculator,
		width:   100,
		height:  40,
		engine:  engine,
		solver:  breakeven.NewDefaultSolver(engine),
		ranker:  compare.NewMetricsCalculator(),
		sweep:   breakeven.DefaultSweepOptions(),
		initial: params.DeepCopy(),
		regimes: domain.AllRegimes(),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}

	communities := make([]components.Option, 0, len(domain.AllCommunities()))
	for _, c := range domain.AllCommunities() {
		communities = append(communities, components.Option{Value: string(c), Label: c.DisplayName()})
	}
	statuses := make([]components.Option, 0, len(domain.AllMaritalStatuses()))
	for _, s := range domain.AllMaritalStatuses() {
		statuses = append(statuses, components.Option{Value: string(s), Label: s.DisplayName()})
	}

	euros := func(v int64) string { return tuistyles.FormatEuro(decimal.NewFromInt(v)) }
	m.revenue = components.NewSlider("Annual revenue", 0, 10000, 500000, 5000).WithFormat(euros)
	m.expenses = components.NewSlider("Expenses / month", 0, 0, 10000, 100).WithFormat(euros)
	m.children = components.NewSlider("Children", 0, 0, 6, 1)
	m.companyAge = components.NewSlider("Company age", 0, 0, 10, 1).WithFormat(func(v int64) string {
		return fmt.Sprintf("%d years", v)
	})
	m.beckhamYear = components.NewSlider("Beckham year", 1, 1, int64(max(1, engine.Constants.Beckham.MaxYears)), 1)
	m.community = components.NewSelector("Community", communities, "")
	m.status = components.NewSelector("Marital status", statuses, "")
	m.enabled = make([]bool, len(m.regimes))

	m.load(params)
	m.syncFocus()
	return m
}

// load sets every control from params
func (m *Model) load(params domain.CalculatorParams) {
	m.revenue.SetValue(params.AnnualRevenue.IntPart())
	m.expenses.SetValue(params.MonthlyExpenses.IntPart())
	m.children.SetValue(int64(params.Children))
	if params.CompanyAge != nil {
		m.companyAge.SetValue(int64(*params.CompanyAge))
	}
	if params.BeckhamYear != nil {
		m.beckhamYear.SetValue(int64(*params.BeckhamYear))
	}
	selectValue(m.community, string(params.Community))
	selectValue(m.status, string(params.MaritalStatus))

	selected := params.Regimes
	if len(selected) == 0 {
		selected = domain.AllRegimes()
	}
	for i, r := range m.regimes {
		m.enabled[i] = false
		for _, s := range selected {
			if s == r {
				m.enabled[i] = true
			}
		}
	}
}

func selectValue(s *components.Selector, value string) {
	for i, o := range s.Options {
		if o.Value == value {
			s.Index = i
			return
		}
	}
}

// Params builds calculator parameters from the current control values
func (m Model) Params() domain.CalculatorParams {
	companyAge := int(m.companyAge.Value)
	beckhamYear := int(m.beckhamYear.Value)

	params := m.initial.DeepCopy()
	params.AnnualRevenue = decimal.NewFromInt(m.revenue.Value)
	params.MonthlyExpenses = decimal.NewFromInt(m.expenses.Value)
	params.Children = int(m.children.Value)
	params.Community = domain.Community(m.community.Value())
	params.MaritalStatus = domain.MaritalStatus(m.status.Value())
	params.CompanyAge = &companyAge
	params.BeckhamYear = &beckhamYear

	params.Regimes = []domain.Regime{}
	for i, r := range m.regimes {
		if m.enabled[i] {
			params.Regimes = append(params.Regimes, r)
		}
	}
	return params
}

// Init starts the first calculation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.calculateCmd(), m.sweepCmd())
}

// controlCount returns the number of focusable rows
func (m Model) controlCount() int {
	return ctrlRegimes + len(m.regimes)
}

// syncFocus marks the focused control
func (m *Model) syncFocus() {
	m.revenue.IsFocused = m.focus == ctrlRevenue
	m.expenses.IsFocused = m.focus == ctrlExpenses
	m.children.IsFocused = m.focus == ctrlChildren
	m.community.IsFocused = m.focus == ctrlCommunity
	m.status.IsFocused = m.focus == ctrlStatus
	m.companyAge.IsFocused = m.focus == ctrlCompanyAge
	m.beckhamYear.IsFocused = m.focus == ctrlBeckhamYear
}

// calculateCmd returns a command that calculates the enabled regimes
func (m Model) calculateCmd() tea.Cmd {
	engine, params, seq := m.engine, m.Params(), m.seq
	return func() tea.Msg {
		results, err := engine.CalculateAll(params)
		if err != nil {
			return CalculationCompleteMsg{Seq: seq, Err: err}
		}
		return CalculationCompleteMsg{Seq: seq, Results: results}
	}
}

// sweepCmd returns a command that computes the chart series and crossovers
func (m Model) sweepCmd() tea.Cmd {
	solver, opts, params, seq := m.solver, m.sweep, m.Params(), m.seq
	return func() tea.Msg {
		if len(params.Regimes) == 0 {
			return SweepCompleteMsg{Seq: seq}
		}
		ctx := context.Background()
		points, err := solver.Sweep(ctx, params, opts)
		if err != nil {
			return SweepCompleteMsg{Seq: seq, Err: err}
		}
		crossovers, err := solver.CrossoversFromSweep(ctx, params, points)
		if err != nil {
			return SweepCompleteMsg{Seq: seq, Err: err}
		}
		return SweepCompleteMsg{Seq: seq, Points: points, Crossovers: crossovers}
	}
}

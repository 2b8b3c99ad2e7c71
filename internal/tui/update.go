package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.err = msg.Err
		if msg.Err != nil {
			m.results = nil
			return m, nil
		}
		m.results = m.ranker.RankResults(msg.Results)
		return m, nil

	case SweepCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.points = msg.Points
		m.crossovers = msg.Crossovers
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Scene):
		if m.scene == SceneCalculator {
			m.scene = SceneChart
		} else {
			m.scene = SceneCalculator
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.load(m.initial)
		return m.recalculate()

	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus < m.controlCount()-1 {
			m.focus++
		}
		m.syncFocus()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.adjust(-1) {
			return m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.adjust(1) {
			return m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.focus >= ctrlRegimes {
			m.enabled[m.focus-ctrlRegimes] = !m.enabled[m.focus-ctrlRegimes]
			return m.recalculate()
		}
		return m, nil
	}

	return m, nil
}

// adjust moves the focused control one step in direction and reports whether
// any parameter changed
func (m *Model) adjust(direction int) bool {
	step := func(inc, dec func() bool) bool {
		if direction > 0 {
			return inc()
		}
		return dec()
	}
	cycle := func(next, prev func()) bool {
		if direction > 0 {
			next()
		} else {
			prev()
		}
		return true
	}

	switch m.focus {
	case ctrlRevenue:
		return step(m.revenue.Increment, m.revenue.Decrement)
	case ctrlExpenses:
		return step(m.expenses.Increment, m.expenses.Decrement)
	case ctrlChildren:
		return step(m.children.Increment, m.children.Decrement)
	case ctrlCompanyAge:
		return step(m.companyAge.Increment, m.companyAge.Decrement)
	case ctrlBeckhamYear:
		return step(m.beckhamYear.Increment, m.beckhamYear.Decrement)
	case ctrlCommunity:
		return cycle(m.community.Next, m.community.Prev)
	case ctrlStatus:
		return cycle(m.status.Next, m.status.Prev)
	default:
		i := m.focus - ctrlRegimes
		if i < 0 || i >= len(m.enabled) {
			return false
		}
		m.enabled[i] = !m.enabled[i]
		return true
	}
}

// recalculate bumps the parameter revision and starts a fresh calculation
func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.seq++
	return m, tea.Batch(m.calculateCmd(), m.sweepCmd())
}

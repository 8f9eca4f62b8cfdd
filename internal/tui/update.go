package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/tui/components/dashboard"
	"github.com/julianstephens/backtrack/internal/tui/components/exerciselist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// A minute tick keeps "today" honest and settles the week when midnight
	// crosses a Sunday boundary while the screen is open. Handled before the
	// modal states so the tick chain survives an open form.
	if _, ok := msg.(dashboard.TickMsg); ok {
		if state, err := m.service.Sync(); err == nil {
			m.dashboard.SetState(state, m.service.Now())
		}
		return m, dashboard.Tick()
	}

	// Handle Edit Goal State
	if m.state == constants.StateEditGoal {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateDashboard
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if days, err := strconv.Atoi(strings.TrimSpace(m.goalForm.Days)); err == nil {
				m.applyGoal(days)
			}
			m.state = constants.StateDashboard
		case huh.StateAborted:
			m.state = constants.StateDashboard
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirmation State
	if m.state == constants.StateConfirmation {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				action := m.pendingAction
				m.pendingAction = nil
				m.confirmPrompt = ""
				m.state = m.previousState
				if action != nil {
					return m, action()
				}
			case "n", "N", "esc", "q":
				m.pendingAction = nil
				m.confirmPrompt = ""
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Adjust height for tabs and help
		listHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.dashboard.SetSize(msg.Width, listHeight)
		m.exerciseList.SetSize(msg.Width-h, listHeight-v)

	case constants.ConfirmationMsg:
		m.previousState = m.state
		m.confirmPrompt = msg.Message
		m.pendingAction = msg.Action
		m.state = constants.StateConfirmation
		return m, nil

	case dashboard.MarkTodayMsg:
		if state, err := m.service.Sync(); err == nil {
			state = streak.MarkDayComplete(state, m.service.Now())
			if err := m.service.Save(&state); err == nil {
				m.dashboard.SetState(state, m.service.Now())
			}
		}
		return m, nil

	case dashboard.UnmarkTodayMsg:
		if state, err := m.service.Sync(); err == nil {
			state = streak.UnmarkDayComplete(state, m.service.Now())
			if err := m.service.Save(&state); err == nil {
				m.dashboard.SetState(state, m.service.Now())
			}
		}
		return m, nil

	case dashboard.EditGoalMsg:
		m.goalForm = &GoalFormModel{Days: strconv.Itoa(msg.CurrentGoal)}
		m.form = newGoalForm(m.goalForm)
		m.state = constants.StateEditGoal
		return m, m.form.Init()

	case exerciselist.LogExerciseMsg:
		if state, err := m.service.Sync(); err == nil {
			state = streak.MarkExerciseDone(state, msg.ID, "", m.service.Now())
			if err := m.service.Save(&state); err == nil {
				m.dashboard.SetState(state, m.service.Now())
				m.exerciseList.MarkLogged()
			}
		}
		return m, nil

	case tea.KeyMsg:
		// The filter input owns the keyboard while it is open.
		if m.state == constants.StateExercises && m.exerciseList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateExercises:
		m.exerciseList, cmd = m.exerciseList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyGoal persists a new weekly goal and refreshes the dashboard.
func (m *Model) applyGoal(days int) {
	state, err := m.service.Sync()
	if err != nil {
		return
	}
	state = streak.UpdateWeeklyGoal(state, days)
	if err := m.service.Save(&state); err != nil {
		return
	}
	m.dashboard.SetState(state, m.service.Now())
}

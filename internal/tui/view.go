package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/backtrack/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateExercises:
		content = m.viewExercises()
	case constants.StateEditGoal:
		content = m.form.View()
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Exercises"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	return m.dashboard.View()
}

func (m Model) viewExercises() string {
	return docStyle.Render(m.exerciseList.View())
}

func (m Model) viewConfirmation() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmPrompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

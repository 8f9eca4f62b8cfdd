package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/insights"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
)

var (
	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	doneDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Underline(true)

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Italic(true)
)

// weekdayNames is ordered Monday-first to match the completion vector.
var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// recentWeekLines bounds how many archived weeks the panel shows.
const recentWeekLines = 4

type MarkTodayMsg struct{}

type UnmarkTodayMsg struct{}

type EditGoalMsg struct {
	CurrentGoal int
}

type TickMsg time.Time

// Tick schedules the next clock refresh. The owning model resolves TickMsg
// against the streak service so a week rollover at midnight is picked up.
func Tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type KeyMap struct {
	Done key.Binding
	Undo key.Binding
	Goal key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Done: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark today done"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark today"),
		),
		Goal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "edit goal"),
		),
	}
}

type Model struct {
	state       models.GamificationState
	suggestions []insights.Suggestion
	now         time.Time
	keys        KeyMap
	width       int
	height      int
}

func New(state models.GamificationState, now time.Time, width, height int) Model {
	return Model{
		state:       state,
		suggestions: insights.Analyze(state),
		now:         now,
		keys:        DefaultKeyMap(),
		width:       width,
		height:      height,
	}
}

// SetState swaps in a fresh aggregate and recomputes the insight lines.
func (m *Model) SetState(state models.GamificationState, now time.Time) {
	m.state = state
	m.suggestions = insights.Analyze(state)
	m.now = now
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return Tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Done):
			if !streak.IsTodayComplete(m.state, m.now) {
				return m, func() tea.Msg { return MarkTodayMsg{} }
			}
		case key.Matches(msg, m.keys.Undo):
			if streak.IsTodayComplete(m.state, m.now) {
				return m, func() tea.Msg {
					return constants.ConfirmationMsg{
						Message: "Unmark today's exercise session?",
						Action: func() tea.Cmd {
							return func() tea.Msg { return UnmarkTodayMsg{} }
						},
					}
				}
			}
		case key.Matches(msg, m.keys.Goal):
			goal := m.state.CurrentWeek.GoalDays
			return m, func() tea.Msg { return EditGoalMsg{CurrentGoal: goal} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	sections := []string{
		m.viewStreak(),
		"",
		m.viewWeek(),
		"",
		m.viewToday(),
		m.viewFreeze(),
	}

	if history := m.viewHistory(); history != "" {
		sections = append(sections, "", history)
	}
	if suggestions := m.viewSuggestions(); suggestions != "" {
		sections = append(sections, "", suggestions)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) viewStreak() string {
	week := "weeks"
	if m.state.Streak.CurrentStreak == 1 {
		week = "week"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		streakStyle.Render(fmt.Sprintf("Current streak: %d %s", m.state.Streak.CurrentStreak, week)),
		dimStyle.Render(fmt.Sprintf("Longest streak: %d", m.state.Streak.LongestStreak)),
	)
}

func (m Model) viewWeek() string {
	week := m.state.CurrentWeek
	status := streak.WeekCompletionStatus(m.state)
	todayIdx := utils.WeekdayIndex(utils.FormatDate(m.now))

	cells := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		cell := name + " ○"
		style := dimStyle
		if status[i] {
			cell = name + " ✓"
			style = doneDayStyle
		}
		if i == todayIdx {
			style = todayStyle
		}
		cells[i] = style.Render(cell)
	}

	progress := fmt.Sprintf("%d/%d days toward the weekly goal", week.DaysExercised, week.GoalDays)
	if week.GoalMet {
		progress = fmt.Sprintf("%d/%d days, goal met", week.DaysExercised, week.GoalDays)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render(fmt.Sprintf("Week of %s .. %s", week.WeekStart, week.WeekEnd)),
		strings.Join(cells, "  "),
		dimStyle.Render(progress),
	)
}

func (m Model) viewToday() string {
	if streak.IsTodayComplete(m.state, m.now) {
		return "Today: done ✓"
	}
	return "Today: not yet ○"
}

func (m Model) viewFreeze() string {
	if streak.CanUseStreakFreeze(m.state, m.now) {
		return "Streak freeze: available"
	}
	if m.state.Streak.FreezeUsedAt != nil {
		return fmt.Sprintf("Streak freeze: used %s, back next month", m.state.Streak.FreezeUsedAt.Format("Jan 2"))
	}
	return "Streak freeze: used this month"
}

func (m Model) viewHistory() string {
	history := m.state.Streak.WeekHistory
	if len(history) == 0 {
		return ""
	}

	start := len(history) - recentWeekLines
	if start < 0 {
		start = 0
	}

	lines := []string{headingStyle.Render("Recent weeks")}
	for i := len(history) - 1; i >= start; i-- {
		week := history[i]
		outcome := "missed"
		if week.GoalMet {
			outcome = "met"
		}
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%s  %d/%d days  goal %s", week.WeekStart, week.DaysExercised, week.GoalDays, outcome)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}

	lines := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		lines[i] = insightStyle.Render("· " + s.Reason)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

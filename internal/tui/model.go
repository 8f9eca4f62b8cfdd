package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/storage"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/tui/components/dashboard"
	"github.com/julianstephens/backtrack/internal/tui/components/exerciselist"
	"github.com/julianstephens/backtrack/internal/validation"
)

type GoalFormModel struct {
	Days string
}

type Model struct {
	store         storage.Provider
	service       *streak.Service
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	dashboard     dashboard.Model
	exerciseList  exerciselist.Model
	form          *huh.Form
	goalForm      *GoalFormModel
	pendingAction func() tea.Cmd
	confirmPrompt string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider, service *streak.Service) Model {
	state, err := service.Sync()
	if err != nil {
		// Unreadable storage still gets a usable screen; mutations will
		// surface the error on save.
		state = streak.NewState(constants.DefaultGoalDays, service.Now())
	}

	settings, _ := store.GetSettings()

	return Model{
		store:        store,
		service:      service,
		state:        constants.StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dashboard:    dashboard.New(state, service.Now(), 0, 0),
		exerciseList: exerciselist.New(settings.SchrothType, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Done, m.keys.Undo, m.keys.Goal)
	case constants.StateExercises:
		keys = append(keys, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateDashboard:
		actions = []key.Binding{m.keys.Done, m.keys.Undo, m.keys.Goal}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.dashboard.Init()
}

func newGoalForm(fm *GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Weekly goal (days)").
				Description("How many days per week you aim to complete the routine").
				Value(&fm.Days).
				Validate(func(s string) error {
					days, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("enter a number of days")
					}
					return validation.ValidateGoalDays(days)
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

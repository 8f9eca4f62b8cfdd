package exerciselist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/exercises"
	"github.com/julianstephens/backtrack/internal/models"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	loggedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Italic(true)
)

// LogExerciseMsg asks the owner to record one completion of the exercise in
// today's log.
type LogExerciseMsg struct {
	ID string
}

type Item struct {
	Exercise models.Exercise
}

func (i Item) Title() string { return i.Exercise.Name }

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s | %s", i.Exercise.TargetArea, i.Exercise.Difficulty, i.Exercise.Duration)
}

func (i Item) FilterValue() string { return i.Exercise.Name }

type KeyMap struct {
	Detail key.Binding
	Back   key.Binding
	Log    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Log: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "log exercise"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	selected *models.Exercise // non-nil while the detail view is open
	logged   bool
}

func New(t constants.SchrothType, width, height int) Model {
	items := itemsFor(t)

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Exercises"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Detail}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Detail, keys.Back, keys.Log}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

// itemsFor builds the list for a curve type: the full recommendation
// ordering when the profile is classified, the whole catalog otherwise.
func itemsFor(t constants.SchrothType) []list.Item {
	var source []models.Exercise
	if t == "" || t == constants.SchrothUnknown {
		source = exercises.All()
	} else {
		source = exercises.ForSchrothType(t, "", len(exercises.All()))
	}

	items := make([]list.Item, len(source))
	for i, e := range source {
		items[i] = Item{Exercise: e}
	}
	return items
}

// MarkLogged flags the open detail view as logged for today.
func (m *Model) MarkLogged() {
	m.logged = true
}

// Filtering reports whether the list's filter input is capturing keystrokes.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if m.selected != nil {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.selected = nil
				m.logged = false
			case key.Matches(msg, m.keys.Log):
				if !m.logged {
					id := m.selected.ID
					return m, func() tea.Msg { return LogExerciseMsg{ID: id} }
				}
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Detail) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				e := i.Exercise
				m.selected = &e
				m.logged = false
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.selected != nil {
		return m.viewDetail()
	}
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No exercises for this profile.\n  Set a curve type with 'backtrack settings set --schroth-type 3C'."
	}
	return m.list.View()
}

func (m Model) viewDetail() string {
	e := m.selected

	lines := []string{
		nameStyle.Render(e.Name),
		metaStyle.Render(fmt.Sprintf("%s | %s | %s | %s", e.TargetArea, e.Difficulty, e.Duration, e.Repetitions)),
		"",
		e.Description,
		"",
	}
	for i, step := range e.Instructions {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
	}
	lines = append(lines, "")
	if m.logged {
		lines = append(lines, loggedStyle.Render("Logged for today ✓"))
	} else {
		lines = append(lines, metaStyle.Render("Press 'd' to log this exercise, esc to go back."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

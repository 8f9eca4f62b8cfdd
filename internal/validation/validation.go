package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictMisalignedWeek     ConflictType = "misaligned_week"
	ConflictDayOutsideWeek     ConflictType = "day_outside_week"
	ConflictDuplicateDay       ConflictType = "duplicate_day"
	ConflictCountMismatch      ConflictType = "count_mismatch"
	ConflictGoalOutOfRange     ConflictType = "goal_out_of_range"
	ConflictStreakInconsistent ConflictType = "streak_inconsistent"
	ConflictHistoryOverflow    ConflictType = "history_overflow"
	ConflictHistoryOutOfOrder  ConflictType = "history_out_of_order"
	ConflictInvalidTime        ConflictType = "invalid_time"
)

// Conflict represents a detected inconsistency in stored gamification state
type Conflict struct {
	Type        ConflictType
	Description string
	Week        string   // week_start of the week involved (if applicable)
	Items       []string // dates or fields involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks gamification state for structural conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateWeek checks a single week log for internal conflicts: date
// alignment, goal range, duplicate or out-of-range day logs, and derived
// counters that disagree with the day logs they summarize.
func (v *Validator) ValidateWeek(week models.WeekLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	startValid := isValidDate(week.WeekStart)
	endValid := isValidDate(week.WeekEnd)
	if !startValid {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDate,
			Description: fmt.Sprintf("Week has invalid start date: %q", week.WeekStart),
			Week:        week.WeekStart,
		})
	}
	if !endValid {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDate,
			Description: fmt.Sprintf("Week %s has invalid end date: %q", week.WeekStart, week.WeekEnd),
			Week:        week.WeekStart,
		})
	}

	if startValid && utils.WeekdayIndex(week.WeekStart) != 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMisalignedWeek,
			Description: fmt.Sprintf("Week start %s is not a Monday", week.WeekStart),
			Week:        week.WeekStart,
		})
	}
	if startValid && endValid && week.WeekEnd != utils.AddDays(week.WeekStart, constants.DaysPerWeek-1) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMisalignedWeek,
			Description: fmt.Sprintf("Week %s ends on %s instead of six days later", week.WeekStart, week.WeekEnd),
			Week:        week.WeekStart,
		})
	}

	if week.GoalDays < constants.MinGoalDays || week.GoalDays > constants.MaxGoalDays {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictGoalOutOfRange,
			Description: fmt.Sprintf("Week %s has goal of %d days, valid range is %d-%d", week.WeekStart, week.GoalDays, constants.MinGoalDays, constants.MaxGoalDays),
			Week:        week.WeekStart,
		})
	}

	seen := map[string]bool{}
	completed := 0
	for _, day := range week.Days {
		if !isValidDate(day.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Week %s has a day log with invalid date: %q", week.WeekStart, day.Date),
				Week:        week.WeekStart,
				Items:       []string{day.Date},
			})
			continue
		}
		if seen[day.Date] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDay,
				Description: fmt.Sprintf("Week %s has more than one day log for %s", week.WeekStart, day.Date),
				Week:        week.WeekStart,
				Items:       []string{day.Date},
			})
		}
		seen[day.Date] = true
		if startValid && endValid && (day.Date < week.WeekStart || day.Date > week.WeekEnd) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDayOutsideWeek,
				Description: fmt.Sprintf("Day log %s falls outside week %s..%s", day.Date, week.WeekStart, week.WeekEnd),
				Week:        week.WeekStart,
				Items:       []string{day.Date},
			})
		}
		if day.RoutineCompleted {
			completed++
		}
	}

	if week.DaysExercised != completed {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictCountMismatch,
			Description: fmt.Sprintf("Week %s records %d days exercised, day logs show %d", week.WeekStart, week.DaysExercised, completed),
			Week:        week.WeekStart,
		})
	}
	if week.GoalMet != (completed >= week.GoalDays) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictCountMismatch,
			Description: fmt.Sprintf("Week %s goal_met flag disagrees with its day logs", week.WeekStart),
			Week:        week.WeekStart,
		})
	}

	return result
}

// ValidateState checks a full gamification state: the current week, every
// archived week, streak counters, and notification settings.
func (v *Validator) ValidateState(state models.GamificationState) ValidationResult {
	result := v.ValidateWeek(state.CurrentWeek)

	for _, week := range state.Streak.WeekHistory {
		sub := v.ValidateWeek(week)
		result.Conflicts = append(result.Conflicts, sub.Conflicts...)
	}

	if len(state.Streak.WeekHistory) > constants.WeekHistoryLimit {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictHistoryOverflow,
			Description: fmt.Sprintf("Week history holds %d weeks, limit is %d", len(state.Streak.WeekHistory), constants.WeekHistoryLimit),
		})
	}

	for i := 1; i < len(state.Streak.WeekHistory); i++ {
		prev := state.Streak.WeekHistory[i-1].WeekStart
		curr := state.Streak.WeekHistory[i].WeekStart
		if prev >= curr {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictHistoryOutOfOrder,
				Description: fmt.Sprintf("Week history is not chronological: %s is followed by %s", prev, curr),
				Week:        curr,
			})
			break
		}
	}
	if n := len(state.Streak.WeekHistory); n > 0 {
		if last := state.Streak.WeekHistory[n-1].WeekStart; last >= state.CurrentWeek.WeekStart {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictHistoryOutOfOrder,
				Description: fmt.Sprintf("Archived week %s does not precede current week %s", last, state.CurrentWeek.WeekStart),
				Week:        last,
			})
		}
	}

	if state.Streak.CurrentStreak < 0 || state.Streak.LongestStreak < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStreakInconsistent,
			Description: fmt.Sprintf("Streak counters are negative: current %d, longest %d", state.Streak.CurrentStreak, state.Streak.LongestStreak),
		})
	}
	if state.Streak.LongestStreak < state.Streak.CurrentStreak {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStreakInconsistent,
			Description: fmt.Sprintf("Longest streak (%d) is shorter than current streak (%d)", state.Streak.LongestStreak, state.Streak.CurrentStreak),
		})
	}
	if state.Streak.LastWeekCompleted != nil && !isValidDate(*state.Streak.LastWeekCompleted) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDate,
			Description: fmt.Sprintf("Last completed week is not a valid date: %q", *state.Streak.LastWeekCompleted),
		})
	}

	if !isValidTimeFormat(state.Notifications.ReminderTime) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Reminder time %q is not in HH:MM format", state.Notifications.ReminderTime),
		})
	}

	return result
}

// AutoFixState repairs recoverable conflicts in place: derived counters are
// recomputed, out-of-range goals clamped, the longest streak raised to cover
// the current one, and overflowing history truncated to the newest weeks.
// Conflicts that would require guessing (duplicate days, misaligned weeks)
// are reported only. Returns a slice of FixActions describing what was fixed.
func AutoFixState(state *models.GamificationState, conflicts []Conflict) []FixAction {
	actions := []FixAction{}

	for _, conflict := range conflicts {
		switch conflict.Type {
		case ConflictGoalOutOfRange:
			week := weekByStart(state, conflict.Week)
			if week == nil {
				continue
			}
			if week.GoalDays < constants.MinGoalDays {
				week.GoalDays = constants.MinGoalDays
			} else if week.GoalDays > constants.MaxGoalDays {
				week.GoalDays = constants.MaxGoalDays
			}
			week.Recount()
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Clamped goal for week %s to %d days", conflict.Week, week.GoalDays),
				SourceConflict: conflict,
			})

		case ConflictCountMismatch:
			week := weekByStart(state, conflict.Week)
			if week == nil {
				continue
			}
			week.Recount()
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Recomputed counters for week %s", conflict.Week),
				SourceConflict: conflict,
			})

		case ConflictStreakInconsistent:
			if state.Streak.CurrentStreak < 0 {
				state.Streak.CurrentStreak = 0
			}
			if state.Streak.LongestStreak < state.Streak.CurrentStreak {
				state.Streak.LongestStreak = state.Streak.CurrentStreak
			}
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Reconciled streak counters to current %d, longest %d", state.Streak.CurrentStreak, state.Streak.LongestStreak),
				SourceConflict: conflict,
			})

		case ConflictHistoryOverflow:
			if n := len(state.Streak.WeekHistory); n > constants.WeekHistoryLimit {
				state.Streak.WeekHistory = state.Streak.WeekHistory[n-constants.WeekHistoryLimit:]
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Truncated week history to the newest %d weeks", constants.WeekHistoryLimit),
					SourceConflict: conflict,
				})
			}
		}
	}

	return actions
}

func weekByStart(state *models.GamificationState, weekStart string) *models.WeekLog {
	if state.CurrentWeek.WeekStart == weekStart {
		return &state.CurrentWeek
	}
	for i := range state.Streak.WeekHistory {
		if state.Streak.WeekHistory[i].WeekStart == weekStart {
			return &state.Streak.WeekHistory[i]
		}
	}
	return nil
}

// Helper functions

func isValidDate(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

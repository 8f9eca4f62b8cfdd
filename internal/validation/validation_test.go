package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

func goodWeek(weekStart string, completed ...string) models.WeekLog {
	week := models.WeekLog{
		WeekStart: weekStart,
		WeekEnd:   endOf(weekStart),
		GoalDays:  4,
		Days:      []models.DayLog{},
	}
	for _, date := range completed {
		week.Days = append(week.Days, models.DayLog{Date: date, RoutineCompleted: true})
	}
	week.Recount()
	return week
}

func endOf(weekStart string) string {
	// All fixtures use real Mondays, so the end is six days on.
	switch weekStart {
	case "2026-08-10":
		return "2026-08-16"
	case "2026-08-17":
		return "2026-08-23"
	case "2026-08-24":
		return "2026-08-30"
	}
	return weekStart
}

func goodState() models.GamificationState {
	return models.GamificationState{
		Streak: models.StreakData{
			CurrentStreak:   1,
			LongestStreak:   2,
			FreezeAvailable: true,
			WeekHistory:     []models.WeekLog{goodWeek("2026-08-17", "2026-08-17", "2026-08-18", "2026-08-19", "2026-08-20")},
		},
		CurrentWeek: goodWeek("2026-08-24", "2026-08-24"),
		Notifications: models.NotificationSettings{
			ReminderTime: constants.DefaultReminderTime,
			Permission:   constants.PermissionDefault,
		},
	}
}

func conflictTypes(result ValidationResult) []ConflictType {
	types := make([]ConflictType, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		types = append(types, c.Type)
	}
	return types
}

func hasConflictType(result ValidationResult, want ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == want {
			return true
		}
	}
	return false
}

func TestValidateState_CleanStateHasNoConflicts(t *testing.T) {
	v := New()

	result := v.ValidateState(goodState())

	if result.HasConflicts() {
		t.Errorf("ValidateState() found conflicts in a clean state: %v", conflictTypes(result))
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q, want clean report", got)
	}
}

func TestValidateWeek_DetectsConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(week *models.WeekLog)
		want   ConflictType
	}{
		{
			name: "invalid start date",
			mutate: func(week *models.WeekLog) {
				week.WeekStart = "not-a-date"
			},
			want: ConflictInvalidDate,
		},
		{
			name: "start is not a monday",
			mutate: func(week *models.WeekLog) {
				week.WeekStart = "2026-08-25"
			},
			want: ConflictMisalignedWeek,
		},
		{
			name: "end is not six days after start",
			mutate: func(week *models.WeekLog) {
				week.WeekEnd = "2026-09-06"
			},
			want: ConflictMisalignedWeek,
		},
		{
			name: "goal above range",
			mutate: func(week *models.WeekLog) {
				week.GoalDays = 9
			},
			want: ConflictGoalOutOfRange,
		},
		{
			name: "goal below range",
			mutate: func(week *models.WeekLog) {
				week.GoalDays = 0
			},
			want: ConflictGoalOutOfRange,
		},
		{
			name: "duplicate day log",
			mutate: func(week *models.WeekLog) {
				week.Days = append(week.Days, models.DayLog{Date: "2026-08-24", RoutineCompleted: true})
				week.Recount()
			},
			want: ConflictDuplicateDay,
		},
		{
			name: "day outside week bounds",
			mutate: func(week *models.WeekLog) {
				week.Days = append(week.Days, models.DayLog{Date: "2026-09-02"})
			},
			want: ConflictDayOutsideWeek,
		},
		{
			name: "days exercised count drifted",
			mutate: func(week *models.WeekLog) {
				week.DaysExercised = 5
			},
			want: ConflictCountMismatch,
		},
		{
			name: "goal met flag drifted",
			mutate: func(week *models.WeekLog) {
				week.GoalMet = true
			},
			want: ConflictCountMismatch,
		},
		{
			name: "day log with invalid date",
			mutate: func(week *models.WeekLog) {
				week.Days = append(week.Days, models.DayLog{Date: "08/24/2026"})
			},
			want: ConflictInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			week := goodWeek("2026-08-24", "2026-08-24")
			tt.mutate(&week)

			result := v.ValidateWeek(week)

			if !hasConflictType(result, tt.want) {
				t.Errorf("ValidateWeek() conflicts = %v, want to include %v", conflictTypes(result), tt.want)
			}
		})
	}
}

func TestValidateState_DetectsStateLevelConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(state *models.GamificationState)
		want   ConflictType
	}{
		{
			name: "longest streak below current",
			mutate: func(state *models.GamificationState) {
				state.Streak.CurrentStreak = 5
				state.Streak.LongestStreak = 2
			},
			want: ConflictStreakInconsistent,
		},
		{
			name: "negative streak counter",
			mutate: func(state *models.GamificationState) {
				state.Streak.CurrentStreak = -1
			},
			want: ConflictStreakInconsistent,
		},
		{
			name: "history out of order",
			mutate: func(state *models.GamificationState) {
				state.Streak.WeekHistory = []models.WeekLog{
					goodWeek("2026-08-17"),
					goodWeek("2026-08-10"),
				}
			},
			want: ConflictHistoryOutOfOrder,
		},
		{
			name: "archived week does not precede current",
			mutate: func(state *models.GamificationState) {
				state.Streak.WeekHistory = []models.WeekLog{goodWeek("2026-08-24", "2026-08-24")}
			},
			want: ConflictHistoryOutOfOrder,
		},
		{
			name: "invalid last completed week",
			mutate: func(state *models.GamificationState) {
				bad := "sometime"
				state.Streak.LastWeekCompleted = &bad
			},
			want: ConflictInvalidDate,
		},
		{
			name: "reminder time not HH:MM",
			mutate: func(state *models.GamificationState) {
				state.Notifications.ReminderTime = "9pm"
			},
			want: ConflictInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			state := goodState()
			tt.mutate(&state)

			result := v.ValidateState(state)

			if !hasConflictType(result, tt.want) {
				t.Errorf("ValidateState() conflicts = %v, want to include %v", conflictTypes(result), tt.want)
			}
		})
	}
}

func TestValidateState_HistoryOverflow(t *testing.T) {
	v := New()
	state := goodState()
	state.Streak.WeekHistory = nil
	// Stuff the history past the cap with copies; ordering conflicts are
	// expected too, but overflow must be reported regardless.
	for i := 0; i <= constants.WeekHistoryLimit; i++ {
		state.Streak.WeekHistory = append(state.Streak.WeekHistory, goodWeek("2026-08-10"))
	}

	result := v.ValidateState(state)

	if !hasConflictType(result, ConflictHistoryOverflow) {
		t.Errorf("ValidateState() conflicts = %v, want to include %v", conflictTypes(result), ConflictHistoryOverflow)
	}
}

func TestFormatReport_ListsEachConflict(t *testing.T) {
	v := New()
	state := goodState()
	state.CurrentWeek.DaysExercised = 6
	state.Notifications.ReminderTime = "late"

	result := v.ValidateState(state)

	report := result.FormatReport()
	if !strings.Contains(report, "Conflicts detected") {
		t.Errorf("FormatReport() = %q, want header line", report)
	}
	for _, conflict := range result.Conflicts {
		if !strings.Contains(report, conflict.Description) {
			t.Errorf("FormatReport() missing conflict description %q", conflict.Description)
		}
	}
}

func TestAutoFixState(t *testing.T) {
	t.Run("recounts drifted weeks", func(t *testing.T) {
		v := New()
		state := goodState()
		state.CurrentWeek.DaysExercised = 6
		state.CurrentWeek.GoalMet = true

		result := v.ValidateState(state)
		actions := AutoFixState(&state, result.Conflicts)

		if len(actions) == 0 {
			t.Fatal("AutoFixState() took no actions")
		}
		if state.CurrentWeek.DaysExercised != 1 {
			t.Errorf("DaysExercised = %d after fix, want 1", state.CurrentWeek.DaysExercised)
		}
		if state.CurrentWeek.GoalMet {
			t.Error("GoalMet = true after fix, want false")
		}
		if after := v.ValidateState(state); after.HasConflicts() {
			t.Errorf("conflicts remain after fix: %v", conflictTypes(after))
		}
	})

	t.Run("clamps out-of-range goals", func(t *testing.T) {
		v := New()
		state := goodState()
		state.CurrentWeek.GoalDays = 12
		state.CurrentWeek.Recount()

		result := v.ValidateState(state)
		AutoFixState(&state, result.Conflicts)

		if state.CurrentWeek.GoalDays != constants.MaxGoalDays {
			t.Errorf("GoalDays = %d after fix, want %d", state.CurrentWeek.GoalDays, constants.MaxGoalDays)
		}
	})

	t.Run("raises longest streak to cover current", func(t *testing.T) {
		v := New()
		state := goodState()
		state.Streak.CurrentStreak = 7
		state.Streak.LongestStreak = 3

		result := v.ValidateState(state)
		AutoFixState(&state, result.Conflicts)

		if state.Streak.LongestStreak != 7 {
			t.Errorf("LongestStreak = %d after fix, want 7", state.Streak.LongestStreak)
		}
	})

	t.Run("truncates overflowing history", func(t *testing.T) {
		v := New()
		state := goodState()
		state.Streak.WeekHistory = nil
		for i := 0; i < constants.WeekHistoryLimit+3; i++ {
			state.Streak.WeekHistory = append(state.Streak.WeekHistory, goodWeek("2026-08-10"))
		}

		result := v.ValidateState(state)
		AutoFixState(&state, result.Conflicts)

		if got := len(state.Streak.WeekHistory); got != constants.WeekHistoryLimit {
			t.Errorf("len(WeekHistory) = %d after fix, want %d", got, constants.WeekHistoryLimit)
		}
	})

	t.Run("leaves duplicate days untouched", func(t *testing.T) {
		v := New()
		state := goodState()
		state.CurrentWeek.Days = append(state.CurrentWeek.Days, models.DayLog{Date: "2026-08-24", RoutineCompleted: true})
		state.CurrentWeek.Recount()

		result := v.ValidateState(state)
		actions := AutoFixState(&state, result.Conflicts)

		for _, action := range actions {
			if action.SourceConflict.Type == ConflictDuplicateDay {
				t.Errorf("AutoFixState() acted on a duplicate day conflict: %s", action.Action)
			}
		}
		if got := len(state.CurrentWeek.Days); got != 2 {
			t.Errorf("len(Days) = %d, want 2 (duplicates preserved for manual review)", got)
		}
	})
}

package models

import (
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
)

// ExerciseCompletion records a single exercise finished within a day's routine.
type ExerciseCompletion struct {
	ID          string    `json:"id"`
	ExerciseID  string    `json:"exercise_id"`
	CompletedAt time.Time `json:"completed_at"`
	Section     string    `json:"section,omitempty"` // routine section tag, e.g. "warmup"
}

// DayLog is one calendar day's record. Created lazily the first time the day
// is marked; at most one per date within a week.
type DayLog struct {
	Date             string               `json:"date"` // YYYY-MM-DD format
	RoutineCompleted bool                 `json:"routine_completed"`
	Completions      []ExerciseCompletion `json:"completions,omitempty"`
}

// WeekLog covers one Monday-to-Sunday span. Exactly one WeekLog is current
// (mutable) at any time; archived ones in StreakData.WeekHistory are immutable.
type WeekLog struct {
	WeekStart     string   `json:"week_start"` // YYYY-MM-DD, always a Monday
	WeekEnd       string   `json:"week_end"`   // YYYY-MM-DD, always a Sunday
	GoalDays      int      `json:"goal_days"`
	DaysExercised int      `json:"days_exercised"`
	GoalMet       bool     `json:"goal_met"`
	Days          []DayLog `json:"days"`
}

// DayIndex returns the position of the DayLog for the given date, or -1.
func (w WeekLog) DayIndex(date string) int {
	for i, d := range w.Days {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// Recount refreshes the derived DaysExercised and GoalMet fields from Days.
func (w *WeekLog) Recount() {
	count := 0
	for _, d := range w.Days {
		if d.RoutineCompleted {
			count++
		}
	}
	w.DaysExercised = count
	w.GoalMet = count >= w.GoalDays
}

// StreakData tracks consecutive goal-met weeks and the monthly streak freeze.
type StreakData struct {
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	LastWeekCompleted *string    `json:"last_week_completed,omitempty"` // week_start of the most recent goal-met week
	FreezeAvailable   bool       `json:"freeze_available"`
	FreezeUsedAt      *time.Time `json:"freeze_used_at,omitempty"`
	WeekHistory       []WeekLog  `json:"week_history"`
}

// NotificationSettings holds the user's reminder preferences. The engine
// stores them; interpretation belongs to the reminder collaborator.
type NotificationSettings struct {
	Enabled      bool                 `json:"enabled"`
	ReminderTime string               `json:"reminder_time"` // HH:MM format
	Permission   constants.Permission `json:"permission"`
}

// GamificationState is the aggregate root: one instance per user, created on
// first use and mutated in place through the streak engine.
type GamificationState struct {
	Streak        StreakData           `json:"streak_data"`
	CurrentWeek   WeekLog              `json:"current_week"`
	Notifications NotificationSettings `json:"notifications"`
	LastUpdated   time.Time            `json:"last_updated"`
}

// Clone returns a deep copy sharing no slice or pointer memory with the
// receiver. Engine mutations always operate on a clone.
func (s GamificationState) Clone() GamificationState {
	out := s
	out.CurrentWeek = cloneWeek(s.CurrentWeek)
	if s.Streak.WeekHistory != nil {
		out.Streak.WeekHistory = make([]WeekLog, len(s.Streak.WeekHistory))
		for i, w := range s.Streak.WeekHistory {
			out.Streak.WeekHistory[i] = cloneWeek(w)
		}
	}
	if s.Streak.LastWeekCompleted != nil {
		v := *s.Streak.LastWeekCompleted
		out.Streak.LastWeekCompleted = &v
	}
	if s.Streak.FreezeUsedAt != nil {
		v := *s.Streak.FreezeUsedAt
		out.Streak.FreezeUsedAt = &v
	}
	return out
}

func cloneWeek(w WeekLog) WeekLog {
	out := w
	if w.Days == nil {
		return out
	}
	out.Days = make([]DayLog, len(w.Days))
	for i, d := range w.Days {
		nd := d
		if d.Completions != nil {
			nd.Completions = make([]ExerciseCompletion, len(d.Completions))
			copy(nd.Completions, d.Completions)
		}
		out.Days[i] = nd
	}
	return out
}

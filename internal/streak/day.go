package streak

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/utils"
)

// MarkDayComplete records today's routine as done. Marking an
// already-complete day returns the input unchanged, so repeated calls are
// free of duplicate effects. Streak counters are untouched here; they only
// move during week transitions.
func MarkDayComplete(s models.GamificationState, now time.Time) models.GamificationState {
	today := utils.FormatDate(now)
	if i := s.CurrentWeek.DayIndex(today); i >= 0 && s.CurrentWeek.Days[i].RoutineCompleted {
		return s
	}

	out := s.Clone()
	if i := out.CurrentWeek.DayIndex(today); i >= 0 {
		out.CurrentWeek.Days[i].RoutineCompleted = true
	} else {
		out.CurrentWeek.Days = append(out.CurrentWeek.Days, models.DayLog{
			Date:             today,
			RoutineCompleted: true,
		})
	}
	out.CurrentWeek.Recount()
	return out
}

// UnmarkDayComplete clears today's routine flag. Days that were never marked
// pass through unchanged. Exercise-completion events already logged for the
// day are history and survive the unmark.
func UnmarkDayComplete(s models.GamificationState, now time.Time) models.GamificationState {
	today := utils.FormatDate(now)
	i := s.CurrentWeek.DayIndex(today)
	if i < 0 || !s.CurrentWeek.Days[i].RoutineCompleted {
		return s
	}

	out := s.Clone()
	out.CurrentWeek.Days[i].RoutineCompleted = false
	out.CurrentWeek.Recount()
	return out
}

// MarkExerciseDone appends one exercise-completion event to today's log.
// Individual exercises do not flip the day's routine flag by themselves.
func MarkExerciseDone(s models.GamificationState, exerciseID, section string, now time.Time) models.GamificationState {
	today := utils.FormatDate(now)
	event := models.ExerciseCompletion{
		ID:          uuid.NewString(),
		ExerciseID:  exerciseID,
		CompletedAt: now,
		Section:     section,
	}

	out := s.Clone()
	if i := out.CurrentWeek.DayIndex(today); i >= 0 {
		out.CurrentWeek.Days[i].Completions = append(out.CurrentWeek.Days[i].Completions, event)
	} else {
		out.CurrentWeek.Days = append(out.CurrentWeek.Days, models.DayLog{
			Date:        today,
			Completions: []models.ExerciseCompletion{event},
		})
	}
	return out
}

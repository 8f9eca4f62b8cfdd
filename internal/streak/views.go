package streak

import (
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/utils"
)

// IsTodayComplete reports whether today's routine has been marked complete in
// the current week.
func IsTodayComplete(s models.GamificationState, now time.Time) bool {
	idx := s.CurrentWeek.DayIndex(utils.FormatDate(now))
	if idx < 0 {
		return false
	}
	return s.CurrentWeek.Days[idx].RoutineCompleted
}

// WeekCompletionStatus reports the current week as seven booleans, Monday
// first. Days without a log entry read false.
func WeekCompletionStatus(s models.GamificationState) [constants.DaysPerWeek]bool {
	var status [constants.DaysPerWeek]bool
	for _, day := range s.CurrentWeek.Days {
		if day.RoutineCompleted {
			status[utils.WeekdayIndex(day.Date)] = true
		}
	}
	return status
}

// CanUseStreakFreeze reports whether the monthly freeze quota is open: the
// freeze is flagged available and its last use does not fall in the current
// calendar month. This re-derives the same check Load applies, so the UI can
// show freeze availability without another round trip.
func CanUseStreakFreeze(s models.GamificationState, now time.Time) bool {
	if !s.Streak.FreezeAvailable {
		return false
	}
	return s.Streak.FreezeUsedAt == nil || !utils.SameMonth(*s.Streak.FreezeUsedAt, now)
}

package streak

import (
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/utils"
)

// ProcessWeekTransition advances a stored aggregate to the week containing
// now, resolving every elapsed week along the way exactly as if each had been
// observed in real time. Each skipped week is archived and then settles its
// streak effect: a goal-met week extends the streak, a missed week consumes
// the freeze when one is available and there is a streak to protect,
// otherwise the streak resets. The freeze therefore rescues at most the
// oldest missed week of a gap. The returned current week is always the fresh,
// empty Monday-Sunday span around now; completions logged before the
// transition stay with their archived week.
func ProcessWeekTransition(s models.GamificationState, now time.Time) models.GamificationState {
	presentWeekStart := utils.WeekStart(utils.FormatDate(now))

	// A stored week start in the future means the clock moved backwards
	// since the last save. Skipping the transition beats inventing
	// negative elapsed weeks.
	if s.CurrentWeek.WeekStart > presentWeekStart {
		return s
	}
	if !utils.WeekHasEnded(s.CurrentWeek.WeekEnd, now) {
		return s
	}

	out := s.Clone()
	week := out.CurrentWeek
	for utils.WeekHasEnded(week.WeekEnd, now) && week.WeekStart != presentWeekStart {
		out.Streak.WeekHistory = append(out.Streak.WeekHistory, week)

		if week.GoalMet {
			out.Streak.CurrentStreak++
			start := week.WeekStart
			out.Streak.LastWeekCompleted = &start
			if out.Streak.CurrentStreak > out.Streak.LongestStreak {
				out.Streak.LongestStreak = out.Streak.CurrentStreak
			}
		} else if out.Streak.FreezeAvailable && out.Streak.CurrentStreak > 0 {
			usedAt := now
			out.Streak.FreezeAvailable = false
			out.Streak.FreezeUsedAt = &usedAt
		} else {
			out.Streak.CurrentStreak = 0
		}

		nextStart := utils.AddDays(week.WeekStart, constants.DaysPerWeek)
		week = models.WeekLog{
			WeekStart: nextStart,
			WeekEnd:   utils.AddDays(nextStart, constants.DaysPerWeek-1),
			GoalDays:  week.GoalDays,
			Days:      []models.DayLog{},
		}
	}
	out.CurrentWeek = week

	if n := len(out.Streak.WeekHistory); n > constants.WeekHistoryLimit {
		out.Streak.WeekHistory = out.Streak.WeekHistory[n-constants.WeekHistoryLimit:]
	}
	return out
}

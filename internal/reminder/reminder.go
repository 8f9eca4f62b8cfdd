// Package reminder decides when the daily routine reminder is due. It reads
// the stored notification settings and streak state; delivery belongs to the
// notifier.
package reminder

import (
	"fmt"
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
)

// Check reports whether the routine reminder is due at now and, if so, the
// message to deliver. Due requires notifications enabled with permission
// granted, the current minute matching the configured reminder time, and
// today's routine still unfinished. The check is meant to run once a minute
// from a cron or timer.
func Check(state models.GamificationState, now time.Time) (string, bool) {
	settings := state.Notifications

	if !settings.Enabled {
		return "", false
	}
	if settings.Permission != constants.PermissionGranted {
		return "", false
	}

	reminderMinutes, err := utils.ParseTimeToMinutes(settings.ReminderTime)
	if err != nil {
		return "", false
	}
	currentMinutes := now.Hour()*60 + now.Minute()
	if currentMinutes != reminderMinutes {
		return "", false
	}

	if streak.IsTodayComplete(state, now) {
		return "", false
	}

	return message(state), true
}

func message(state models.GamificationState) string {
	if state.Streak.CurrentStreak > 0 {
		return fmt.Sprintf("Time for your Schroth routine. Keep your %d-week streak going!", state.Streak.CurrentStreak)
	}
	return fmt.Sprintf("Time for your Schroth routine. %d of %d days done this week.",
		state.CurrentWeek.DaysExercised, state.CurrentWeek.GoalDays)
}

package streak

import (
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

// NotificationPatch carries partial notification settings. Nil fields keep
// the stored value.
type NotificationPatch struct {
	Enabled      *bool
	ReminderTime *string
	Permission   *constants.Permission
}

// UpdateWeeklyGoal sets the weekly goal on the current week, clamping the
// requested value into the valid range. Days already exercised are kept and
// the week's goal-met flag is recomputed against the new target. Archived
// weeks keep the goal they were scored under.
func UpdateWeeklyGoal(s models.GamificationState, goalDays int) models.GamificationState {
	out := s.Clone()
	out.CurrentWeek.GoalDays = clampGoal(goalDays)
	out.CurrentWeek.Recount()
	return out
}

// UpdateNotificationSettings merges a patch into the stored notification
// settings, field by field.
func UpdateNotificationSettings(s models.GamificationState, patch NotificationPatch) models.GamificationState {
	out := s.Clone()
	if patch.Enabled != nil {
		out.Notifications.Enabled = *patch.Enabled
	}
	if patch.ReminderTime != nil {
		out.Notifications.ReminderTime = *patch.ReminderTime
	}
	if patch.Permission != nil {
		out.Notifications.Permission = *patch.Permission
	}
	return out
}

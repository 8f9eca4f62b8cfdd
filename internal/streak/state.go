package streak

import (
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/utils"
)

// NewState builds a fresh aggregate for a user who has never tracked before:
// an empty week spanning today's Monday-Sunday, zeroed streak counters, the
// monthly freeze available, and notifications off.
func NewState(goalDays int, now time.Time) models.GamificationState {
	start, end := utils.WeekBounds(utils.FormatDate(now))
	return models.GamificationState{
		Streak: models.StreakData{
			FreezeAvailable: true,
			WeekHistory:     []models.WeekLog{},
		},
		CurrentWeek: models.WeekLog{
			WeekStart: start,
			WeekEnd:   end,
			GoalDays:  clampGoal(goalDays),
			Days:      []models.DayLog{},
		},
		Notifications: models.NotificationSettings{
			Enabled:      false,
			ReminderTime: constants.DefaultReminderTime,
			Permission:   constants.PermissionDefault,
		},
		LastUpdated: now,
	}
}

func clampGoal(goalDays int) int {
	if goalDays < constants.MinGoalDays {
		return constants.MinGoalDays
	}
	if goalDays > constants.MaxGoalDays {
		return constants.MaxGoalDays
	}
	return goalDays
}

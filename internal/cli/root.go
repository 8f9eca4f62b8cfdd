package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/backtrack/internal/backup"
	"github.com/julianstephens/backtrack/internal/logger"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/storage"
	"github.com/julianstephens/backtrack/internal/streak"
)

type Context struct {
	Store   storage.Provider
	Streaks *streak.Service
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		// Server-backed stores have no local file to snapshot
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ApplyTimezone points the streak service at the timezone stored in settings.
// Missing settings leave the service on the system timezone.
func (c *Context) ApplyTimezone() {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Debug("Settings unavailable, using system timezone", "error", err)
		return
	}
	c.Streaks.UseTimezone(settings.Timezone)
}

// weekdayNames is ordered Monday-first to match the completion vector.
var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormatWeekVector renders a Monday-first completion vector as checkboxes,
// e.g. "Mon [x]  Tue [ ]  ...".
func FormatWeekVector(status [7]bool) string {
	parts := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		box := "[ ]"
		if status[i] {
			box = "[x]"
		}
		parts[i] = fmt.Sprintf("%s %s", name, box)
	}
	return strings.Join(parts, "  ")
}

// FormatWeekSummary renders one archived week as a single line.
func FormatWeekSummary(week models.WeekLog) string {
	outcome := "missed"
	if week.GoalMet {
		outcome = "met"
	}
	return fmt.Sprintf("%s .. %s  %d/%d days  goal %s", week.WeekStart, week.WeekEnd, week.DaysExercised, week.GoalDays, outcome)
}

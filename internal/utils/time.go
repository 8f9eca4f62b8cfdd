package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// GetTodayFromSettings returns today's date string (YYYY-MM-DD) using the timezone from settings.
func GetTodayFromSettings(settings models.Settings) (string, error) {
	return GetTodayInTimezone(settings.Timezone)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// FormatDate formats a time as a date string (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatMonth formats a time as a calendar month string (YYYY-MM).
func FormatMonth(t time.Time) string {
	return t.Format(constants.MonthFormat)
}

// WeekdayIndex maps a date string to a 0-6 weekday index with Monday=0 and
// Sunday=6. Malformed input yields 0; callers are expected to supply
// well-formed dates.
func WeekdayIndex(date string) int {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return 0
	}
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of the week containing the given date.
// Malformed input is returned unchanged.
func WeekStart(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(constants.DateFormat)
}

// WeekEnd returns the Sunday of the week containing the given date.
// Malformed input is returned unchanged.
func WeekEnd(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, 6-offset).Format(constants.DateFormat)
}

// WeekBounds returns the Monday and Sunday of the week containing the given date.
func WeekBounds(date string) (string, string) {
	return WeekStart(date), WeekEnd(date)
}

// AddDays returns the date n days after the given date string.
// Malformed input is returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}

// WeekHasEnded reports whether the end instant of the week closing on the
// given Sunday has passed. A week ends at the start of the following Monday,
// evaluated in now's location, so the whole of Sunday still counts as
// in-progress.
func WeekHasEnded(weekEnd string, now time.Time) bool {
	t, err := time.ParseInLocation(constants.DateFormat, weekEnd, now.Location())
	if err != nil {
		return false
	}
	endInstant := t.AddDate(0, 0, 1)
	return !now.Before(endInstant)
}

// SameMonth reports whether two instants fall in the same calendar month,
// evaluated in ref's location.
func SameMonth(t time.Time, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

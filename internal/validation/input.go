package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/backtrack/internal/constants"
)

// Input checks for values arriving from flags and forms. The engine clamps
// goals rather than rejecting them; these exist so interactive surfaces can
// tell the user before the clamp silently applies.

// ValidateGoalDays reports whether a goal is inside the accepted range.
func ValidateGoalDays(days int) error {
	if days < constants.MinGoalDays || days > constants.MaxGoalDays {
		return fmt.Errorf("goal must be between %d and %d days", constants.MinGoalDays, constants.MaxGoalDays)
	}
	return nil
}

// ValidateReminderTime checks a 24h HH:MM wall-clock string.
func ValidateReminderTime(timeStr string) error {
	if !isValidTimeFormat(timeStr) {
		return fmt.Errorf("invalid reminder time %q (expected 24h HH:MM)", timeStr)
	}
	return nil
}

// ValidateSchrothType parses a curve type, case-insensitively, into its
// canonical form. "unknown" is accepted so a profile can be cleared.
func ValidateSchrothType(s string) (constants.SchrothType, error) {
	if strings.EqualFold(s, string(constants.SchrothUnknown)) {
		return constants.SchrothUnknown, nil
	}
	switch constants.SchrothType(strings.ToUpper(s)) {
	case constants.Schroth3C:
		return constants.Schroth3C, nil
	case constants.Schroth3CP:
		return constants.Schroth3CP, nil
	case constants.Schroth4C:
		return constants.Schroth4C, nil
	case constants.Schroth4CP:
		return constants.Schroth4CP, nil
	}
	return "", fmt.Errorf("unknown curve type %q (expected 3C, 3CP, 4C, 4CP, or unknown)", s)
}

// ValidateSeverity parses a Cobb-angle severity band into its canonical form.
func ValidateSeverity(s string) (constants.Severity, error) {
	switch constants.Severity(strings.ToLower(s)) {
	case constants.SeverityMild:
		return constants.SeverityMild, nil
	case constants.SeverityModerate:
		return constants.SeverityModerate, nil
	case constants.SeveritySevere:
		return constants.SeveritySevere, nil
	case constants.SeverityVerySevere:
		return constants.SeverityVerySevere, nil
	}
	return "", fmt.Errorf("unknown severity %q (expected mild, moderate, severe, or very_severe)", s)
}

package models

import "github.com/julianstephens/backtrack/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	Timezone    string                `json:"timezone"`     // IANA timezone name (e.g. "America/New_York", "Europe/London", or "Local" for system timezone)
	SchrothType constants.SchrothType `json:"schroth_type"` // curve classification from the user's most recent analysis
	Severity    constants.Severity    `json:"severity"`     // severity band from the user's most recent analysis
}

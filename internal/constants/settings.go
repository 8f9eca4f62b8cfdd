package constants

const (
	// General Settings
	SettingTimezone    = "timezone"
	SettingSchrothType = "schroth_type"
	SettingSeverity    = "severity"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultReminderTime = "18:00"
)

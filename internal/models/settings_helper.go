package models

import "github.com/julianstephens/backtrack/internal/constants"

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingSchrothType:
			settings.SchrothType = constants.SchrothType(value)
		case constants.SettingSeverity:
			settings.Severity = constants.Severity(value)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:    settings.Timezone,
		constants.SettingSchrothType: string(settings.SchrothType),
		constants.SettingSeverity:    string(settings.Severity),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.SchrothType == "" {
		settings.SchrothType = constants.SchrothUnknown
	}
}

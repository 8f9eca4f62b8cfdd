package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
	"github.com/julianstephens/backtrack/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}

	schroth := string(settings.SchrothType)
	if schroth == "" {
		schroth = string(constants.SchrothUnknown)
	}
	severity := string(settings.Severity)
	if severity == "" {
		severity = "(not set)"
	}

	fmt.Println("Profile:")
	fmt.Printf("  Timezone:       %s\n", settings.Timezone)
	if today, err := utils.GetTodayFromSettings(settings); err == nil {
		fmt.Printf("  Today:          %s\n", today)
	}
	fmt.Printf("  Curve Type:     %s\n", schroth)
	fmt.Printf("  Severity:       %s\n", severity)
	fmt.Println("\nNotifications:")
	fmt.Printf("  Enabled:        %v\n", state.Notifications.Enabled)
	fmt.Printf("  Reminder Time:  %s\n", state.Notifications.ReminderTime)
	fmt.Printf("  Permission:     %s\n", state.Notifications.Permission)
	return nil
}

type SetCmd struct {
	Timezone    *string `help:"IANA timezone for day boundaries (e.g. Europe/Berlin, or Local)."`
	SchrothType *string `help:"Schroth curve type (3C, 3CP, 4C, 4CP, unknown)." name:"schroth-type"`
	Severity    *string `help:"Curve severity (mild, moderate, severe, very_severe)."`

	Notifications *bool   `help:"Enable or disable the daily reminder."`
	ReminderTime  *string `help:"Daily reminder time, 24h HH:MM." name:"reminder-time"`
	Permission    *string `help:"Notification permission state (default, granted, denied)."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	profileUpdated, err := c.applyProfile(ctx)
	if err != nil {
		return err
	}
	notifyUpdated, err := c.applyNotifications(ctx)
	if err != nil {
		return err
	}

	if !profileUpdated && !notifyUpdated {
		fmt.Println("No changes specified. Use 'backtrack settings show' to view settings or flags to update them.")
		return nil
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SetCmd) applyProfile(ctx *cli.Context) (bool, error) {
	if c.Timezone == nil && c.SchrothType == nil && c.Severity == nil {
		return false, nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return false, fmt.Errorf("failed to get settings: %w", err)
	}

	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return false, fmt.Errorf("unknown timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
	}
	if c.SchrothType != nil {
		t, err := validation.ValidateSchrothType(*c.SchrothType)
		if err != nil {
			return false, err
		}
		settings.SchrothType = t
	}
	if c.Severity != nil {
		s, err := validation.ValidateSeverity(*c.Severity)
		if err != nil {
			return false, err
		}
		settings.Severity = s
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return false, fmt.Errorf("failed to save settings: %w", err)
	}
	return true, nil
}

func (c *SetCmd) applyNotifications(ctx *cli.Context) (bool, error) {
	if c.Notifications == nil && c.ReminderTime == nil && c.Permission == nil {
		return false, nil
	}

	patch := streak.NotificationPatch{Enabled: c.Notifications}
	if c.ReminderTime != nil {
		if err := validation.ValidateReminderTime(*c.ReminderTime); err != nil {
			return false, err
		}
		patch.ReminderTime = c.ReminderTime
	}
	if c.Permission != nil {
		p, err := parsePermission(*c.Permission)
		if err != nil {
			return false, err
		}
		patch.Permission = &p
	}

	state, err := ctx.Streaks.Sync()
	if err != nil {
		return false, err
	}
	updated := streak.UpdateNotificationSettings(state, patch)
	if err := ctx.Streaks.Save(&updated); err != nil {
		return false, err
	}
	return true, nil
}

func parsePermission(s string) (constants.Permission, error) {
	switch constants.Permission(strings.ToLower(s)) {
	case constants.PermissionDefault:
		return constants.PermissionDefault, nil
	case constants.PermissionGranted:
		return constants.PermissionGranted, nil
	case constants.PermissionDenied:
		return constants.PermissionDenied, nil
	}
	return "", fmt.Errorf("unknown permission %q (expected default, granted, or denied)", s)
}

package system

import (
	"fmt"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/notifier"
	"github.com/julianstephens/backtrack/internal/reminder"
)

type NotifyCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}

	msg, due := reminder.Check(state, ctx.Streaks.Now())
	if !due {
		if c.DryRun {
			fmt.Println("No reminder due.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}
	if err := notifier.New().Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

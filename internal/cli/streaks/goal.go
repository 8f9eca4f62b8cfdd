package streaks

import (
	"fmt"
	"time"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
)

type GoalCmd struct {
	Days int `arg:"" help:"Target exercise days per week (1-7)."`
}

func (c *GoalCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}

	updated := streak.UpdateWeeklyGoal(state, c.Days)
	if err := ctx.Streaks.Save(&updated); err != nil {
		return err
	}

	applied := updated.CurrentWeek.GoalDays
	if applied != c.Days {
		fmt.Printf("Weekly goal clamped to %d day(s) (valid range %d-%d).\n",
			applied, constants.MinGoalDays, constants.MaxGoalDays)
	} else {
		fmt.Printf("Weekly goal set to %d day(s).\n", applied)
	}
	if updated.CurrentWeek.GoalMet && !state.CurrentWeek.GoalMet {
		fmt.Println("This week's goal is now met.")
	}
	return nil
}

type FreezeCmd struct{}

func (c *FreezeCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}
	now := ctx.Streaks.Now()

	if streak.CanUseStreakFreeze(state, now) {
		fmt.Println("Streak freeze: available")
		fmt.Println("One missed week this month will be absorbed automatically.")
	} else {
		fmt.Println("Streak freeze: used")
		if state.Streak.FreezeUsedAt != nil {
			fmt.Printf("Consumed on %s; it refreshes on %s.\n",
				utils.FormatDate(*state.Streak.FreezeUsedAt),
				utils.FormatDate(firstOfNextMonth(*state.Streak.FreezeUsedAt)))
		}
	}
	return nil
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}

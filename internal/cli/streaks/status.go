package streaks

import (
	"fmt"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/insights"
	"github.com/julianstephens/backtrack/internal/streak"
)

type StatusCmd struct {
	Insights bool `help:"Include goal suggestions derived from recent weeks."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}
	now := ctx.Streaks.Now()

	today := "not yet"
	if streak.IsTodayComplete(state, now) {
		today = "done"
	}
	freeze := "used this month"
	if streak.CanUseStreakFreeze(state, now) {
		freeze = "available"
	}

	fmt.Printf("Week of %s .. %s\n\n", state.CurrentWeek.WeekStart, state.CurrentWeek.WeekEnd)
	fmt.Printf("  Current streak:  %d week(s)\n", state.Streak.CurrentStreak)
	fmt.Printf("  Longest streak:  %d week(s)\n", state.Streak.LongestStreak)
	fmt.Printf("  This week:       %d/%d days\n", state.CurrentWeek.DaysExercised, state.CurrentWeek.GoalDays)
	fmt.Printf("  Today:           %s\n", today)
	fmt.Printf("  Streak freeze:   %s\n", freeze)
	if state.Streak.LastWeekCompleted != nil {
		fmt.Printf("  Last goal met:   week of %s\n", *state.Streak.LastWeekCompleted)
	}

	if c.Insights {
		suggestions := insights.Analyze(state)
		if len(suggestions) == 0 {
			fmt.Println("\nNo suggestions; keep going.")
			return nil
		}
		fmt.Println()
		for _, s := range suggestions {
			fmt.Printf("  · %s\n", s.Reason)
			if s.SuggestedGoal != 0 {
				fmt.Printf("    Try 'backtrack goal %d'.\n", s.SuggestedGoal)
			}
		}
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}

	fmt.Printf("Week of %s .. %s\n\n", state.CurrentWeek.WeekStart, state.CurrentWeek.WeekEnd)
	fmt.Printf("  %s\n\n", cli.FormatWeekVector(streak.WeekCompletionStatus(state)))
	fmt.Printf("  %d/%d days toward this week's goal\n", state.CurrentWeek.DaysExercised, state.CurrentWeek.GoalDays)
	return nil
}

type HistoryCmd struct{}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}

	history := state.Streak.WeekHistory
	if len(history) == 0 {
		fmt.Println("No archived weeks yet. History fills in as weeks roll over.")
		return nil
	}

	fmt.Printf("Archived weeks (%d):\n\n", len(history))
	for _, week := range history {
		fmt.Printf("  %s\n", cli.FormatWeekSummary(week))
	}
	return nil
}

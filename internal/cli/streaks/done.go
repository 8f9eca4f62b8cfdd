package streaks

import (
	"fmt"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/exercises"
	"github.com/julianstephens/backtrack/internal/streak"
)

type DoneCmd struct {
	Exercise string `help:"Log a single exercise by ID instead of marking the whole routine."`
	Section  string `help:"Routine section tag for the logged exercise (e.g. warmup)."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}
	now := ctx.Streaks.Now()

	if c.Exercise != "" {
		ex, ok := exercises.ByID(c.Exercise)
		if !ok {
			return fmt.Errorf("unknown exercise %q (see 'backtrack exercises list')", c.Exercise)
		}
		state = streak.MarkExerciseDone(state, ex.ID, c.Section, now)
		if err := ctx.Streaks.Save(&state); err != nil {
			return err
		}
		fmt.Printf("Logged exercise: %s\n", ex.Name)
		fmt.Println("Run 'backtrack done' once the full routine is finished.")
		return nil
	}

	if streak.IsTodayComplete(state, now) {
		fmt.Println("Today is already marked complete.")
		return nil
	}

	state = streak.MarkDayComplete(state, now)
	if err := ctx.Streaks.Save(&state); err != nil {
		return err
	}

	fmt.Printf("Marked today complete: %d/%d days this week.\n",
		state.CurrentWeek.DaysExercised, state.CurrentWeek.GoalDays)
	if state.CurrentWeek.GoalMet {
		fmt.Println("Weekly goal met! The streak grows when the week rolls over.")
	}
	return nil
}

type UndoCmd struct{}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Streaks.Sync()
	if err != nil {
		return err
	}
	now := ctx.Streaks.Now()

	if !streak.IsTodayComplete(state, now) {
		fmt.Println("Today is not marked complete; nothing to undo.")
		return nil
	}

	state = streak.UnmarkDayComplete(state, now)
	if err := ctx.Streaks.Save(&state); err != nil {
		return err
	}

	fmt.Printf("Unmarked today: %d/%d days this week.\n",
		state.CurrentWeek.DaysExercised, state.CurrentWeek.GoalDays)
	return nil
}

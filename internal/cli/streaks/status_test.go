package streaks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/streak"
	"github.com/julianstephens/backtrack/internal/utils"
)

func TestStatusCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &StatusCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
}

func TestStatusCmd_WithInsights(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &StatusCmd{Insights: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("status --insights failed: %v", err)
	}
}

func TestStatusCmd_CreatesStateOnFirstRun(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &StatusCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}

	state, err := ctx.Streaks.Load()
	if err != nil {
		t.Fatalf("expected status to seed a fresh state: %v", err)
	}
	if state.CurrentWeek.GoalDays != constants.DefaultGoalDays {
		t.Errorf("expected default goal %d, got %d", constants.DefaultGoalDays, state.CurrentWeek.GoalDays)
	}
}

func TestWeekCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	done := &DoneCmd{}
	if err := done.Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}

	cmd := &WeekCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("week failed: %v", err)
	}
}

func TestHistoryCmd_Empty(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &HistoryCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("history failed: %v", err)
	}
}

func TestHistoryCmd_SettlesElapsedWeek(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	// Seed a state whose current week ended last week; Sync inside the
	// command must archive it before printing.
	lastMonday := utils.WeekStart(utils.FormatDate(time.Now().AddDate(0, 0, -7)))
	stale := streak.NewState(1, mustParseDate(t, lastMonday))
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("failed to marshal state: %v", err)
	}
	if err := ctx.Store.SetValue(constants.StateKey, string(data)); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}

	cmd := &HistoryCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	state, err := ctx.Streaks.Load()
	if err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	if len(state.Streak.WeekHistory) != 1 {
		t.Fatalf("expected 1 archived week, got %d", len(state.Streak.WeekHistory))
	}
	if state.Streak.WeekHistory[0].WeekStart != lastMonday {
		t.Errorf("expected archived week %s, got %s", lastMonday, state.Streak.WeekHistory[0].WeekStart)
	}
}

func mustParseDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", date, err)
	}
	return parsed
}

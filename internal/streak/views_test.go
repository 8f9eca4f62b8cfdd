package streak

import "testing"

func TestIsTodayComplete(t *testing.T) {
	s := testState(4)
	if IsTodayComplete(s, testNow) {
		t.Error("fresh state reports today complete")
	}

	s = MarkDayComplete(s, testNow)
	if !IsTodayComplete(s, testNow) {
		t.Error("IsTodayComplete = false after marking today")
	}
	// A different day of the same week does not count as today
	if IsTodayComplete(s, testNow.AddDate(0, 0, 1)) {
		t.Error("tomorrow reported complete after marking today")
	}
}

func TestWeekCompletionStatus(t *testing.T) {
	s := testState(4)
	s = MarkDayComplete(s, testNow)                  // Monday
	s = MarkDayComplete(s, testNow.AddDate(0, 0, 2)) // Wednesday
	s = MarkDayComplete(s, testNow.AddDate(0, 0, 6)) // Sunday

	got := WeekCompletionStatus(s)
	want := [7]bool{true, false, true, false, false, false, true}
	if got != want {
		t.Errorf("WeekCompletionStatus() = %v, want %v", got, want)
	}

	sum := 0
	for _, done := range got {
		if done {
			sum++
		}
	}
	if sum != s.CurrentWeek.DaysExercised {
		t.Errorf("status sums to %d, DaysExercised = %d", sum, s.CurrentWeek.DaysExercised)
	}
}

func TestWeekCompletionStatusIgnoresUnmarkedDays(t *testing.T) {
	s := MarkExerciseDone(testState(4), "side-plank", "strength", testNow)

	got := WeekCompletionStatus(s)
	if got != [7]bool{} {
		t.Errorf("WeekCompletionStatus() = %v for a week with only loose completions, want all false", got)
	}
}

func TestCanUseStreakFreeze(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		streak    int
		want      bool
	}{
		{"available with active streak", true, 3, true},
		{"available without streak", true, 0, false},
		{"consumed with active streak", false, 3, false},
		{"consumed without streak", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testState(4)
			s.Streak.FreezeAvailable = tt.available
			s.Streak.CurrentStreak = tt.streak
			if got := CanUseStreakFreeze(s, testNow); got != tt.want {
				t.Errorf("CanUseStreakFreeze() = %v, want %v", got, tt.want)
			}
		})
	}
}

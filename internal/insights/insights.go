package insights

import (
	"fmt"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

// SuggestionType represents the type of adjustment suggested
type SuggestionType string

const (
	SuggestionRaiseGoal    SuggestionType = "raise_goal"
	SuggestionLowerGoal    SuggestionType = "lower_goal"
	SuggestionFreezeIntact SuggestionType = "freeze_intact"
)

// Thresholds for the trailing-week runs that trigger a suggestion.
const (
	raiseRunLength = 3
	lowerRunLength = 3
)

// Suggestion represents a suggested adjustment to the weekly goal
type Suggestion struct {
	Type          SuggestionType `json:"type"`
	Reason        string         `json:"reason"`
	CurrentGoal   int            `json:"current_goal,omitempty"`
	SuggestedGoal int            `json:"suggested_goal,omitempty"`
}

// Analyze inspects the archived week history and returns goal-adjustment
// suggestions. The analysis is read-only and bounded by the retained
// history window; an empty history yields no suggestions.
func Analyze(state models.GamificationState) []Suggestion {
	history := state.Streak.WeekHistory
	if len(history) == 0 {
		return nil
	}

	var suggestions []Suggestion
	goal := state.CurrentWeek.GoalDays

	// Trailing run of archived weeks that beat their goal outright.
	exceeding := 0
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].GoalMet || history[i].DaysExercised <= history[i].GoalDays {
			break
		}
		exceeding++
	}
	if exceeding >= raiseRunLength && goal < constants.MaxGoalDays {
		suggestions = append(suggestions, Suggestion{
			Type:          SuggestionRaiseGoal,
			Reason:        fmt.Sprintf("Your last %d weeks all beat the %d-day goal", exceeding, goal),
			CurrentGoal:   goal,
			SuggestedGoal: goal + 1,
		})
	}

	// Trailing run of missed weeks.
	missed := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].GoalMet {
			break
		}
		missed++
	}
	if missed >= lowerRunLength && goal > constants.MinGoalDays {
		suggestions = append(suggestions, Suggestion{
			Type:          SuggestionLowerGoal,
			Reason:        fmt.Sprintf("The %d-day goal was missed %d weeks running; a smaller goal keeps the habit alive", goal, missed),
			CurrentGoal:   goal,
			SuggestedGoal: goal - 1,
		})
	}

	// A miss streak with the freeze untouched means there was no streak for
	// it to protect. Point that out once the misses pile up.
	if missed >= lowerRunLength && state.Streak.FreezeAvailable {
		suggestions = append(suggestions, Suggestion{
			Type:   SuggestionFreezeIntact,
			Reason: "Your monthly streak freeze is unused; once a streak is going it will cover one missed week",
		})
	}

	return suggestions
}

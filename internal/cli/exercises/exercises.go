package exercises

import (
	"fmt"
	"strings"

	"github.com/julianstephens/backtrack/internal/cli"
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/exercises"
	"github.com/julianstephens/backtrack/internal/models"
	"github.com/julianstephens/backtrack/internal/validation"
)

type ListCmd struct {
	Type       string `help:"Filter by Schroth curve type (3C, 3CP, 4C, 4CP)."`
	Area       string `help:"Filter by target area (thoracic, lumbar, pelvis, full_spine)."`
	Difficulty string `help:"Filter by difficulty (beginner, intermediate, advanced)."`
	Verbose    bool   `help:"Include step-by-step instructions."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries := exercises.All()

	if c.Type != "" {
		t, err := parseSchrothType(c.Type)
		if err != nil {
			return err
		}
		filtered := []models.Exercise{}
		for _, e := range entries {
			if e.AppliesTo(t) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if c.Area != "" {
		if err := validateArea(c.Area); err != nil {
			return err
		}
		filtered := []models.Exercise{}
		for _, e := range entries {
			if e.TargetArea == c.Area {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if c.Difficulty != "" {
		d, err := parseDifficulty(c.Difficulty)
		if err != nil {
			return err
		}
		filtered := []models.Exercise{}
		for _, e := range entries {
			if e.Difficulty == d {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		fmt.Println("No exercises match those filters.")
		return nil
	}

	fmt.Printf("Exercises (%d):\n", len(entries))
	for _, e := range entries {
		printExercise(e, c.Verbose)
	}
	return nil
}

type RecommendCmd struct {
	Type       string `help:"Override the stored curve type (3C, 3CP, 4C, 4CP)."`
	Difficulty string `help:"Restrict to a difficulty (beginner, intermediate, advanced)."`
	Limit      int    `help:"Maximum number of recommendations."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	t, err := resolveType(ctx, c.Type)
	if err != nil {
		return err
	}

	var difficulty constants.Difficulty
	if c.Difficulty != "" {
		difficulty, err = parseDifficulty(c.Difficulty)
		if err != nil {
			return err
		}
	}

	entries := exercises.ForSchrothType(t, difficulty, c.Limit)
	if len(entries) == 0 {
		fmt.Printf("No recommendations for curve type %s with those filters.\n", t)
		return nil
	}

	fmt.Printf("Recommended for curve type %s:\n", t)
	for _, e := range entries {
		printExercise(e, false)
	}
	return nil
}

type ProgressionCmd struct {
	Type string `help:"Override the stored curve type (3C, 3CP, 4C, 4CP)."`
}

func (c *ProgressionCmd) Run(ctx *cli.Context) error {
	t, err := resolveType(ctx, c.Type)
	if err != nil {
		return err
	}

	progression := exercises.Progression(t)
	levels := []constants.Difficulty{
		constants.DifficultyBeginner,
		constants.DifficultyIntermediate,
		constants.DifficultyAdvanced,
	}

	fmt.Printf("Progression for curve type %s:\n", t)
	for _, level := range levels {
		entries := progression[level]
		fmt.Printf("\n%s (%d):\n", titleCase(string(level)), len(entries))
		if len(entries) == 0 {
			fmt.Println("  (none)")
			continue
		}
		for _, e := range entries {
			fmt.Printf("  %s - %s, %s\n", e.Name, e.Duration, e.Repetitions)
		}
	}
	return nil
}

// resolveType prefers an explicit flag over the stored profile. Neither
// being set is an error the user can fix with 'settings set'.
func resolveType(ctx *cli.Context, flag string) (constants.SchrothType, error) {
	if flag != "" {
		return parseSchrothType(flag)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.SchrothType == "" || settings.SchrothType == constants.SchrothUnknown {
		return "", fmt.Errorf("no curve type on file; set one with 'backtrack settings set --schroth-type 3C' or pass --type")
	}
	return settings.SchrothType, nil
}

// parseSchrothType accepts only classified curve types; "unknown" has no
// catalog entries to show.
func parseSchrothType(s string) (constants.SchrothType, error) {
	t, err := validation.ValidateSchrothType(s)
	if err != nil {
		return "", fmt.Errorf("unknown curve type %q (expected 3C, 3CP, 4C, or 4CP)", s)
	}
	if t == constants.SchrothUnknown {
		return "", fmt.Errorf("curve type %q has no catalog entries; pick 3C, 3CP, 4C, or 4CP", s)
	}
	return t, nil
}

func parseDifficulty(s string) (constants.Difficulty, error) {
	switch constants.Difficulty(strings.ToLower(s)) {
	case constants.DifficultyBeginner:
		return constants.DifficultyBeginner, nil
	case constants.DifficultyIntermediate:
		return constants.DifficultyIntermediate, nil
	case constants.DifficultyAdvanced:
		return constants.DifficultyAdvanced, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (expected beginner, intermediate, or advanced)", s)
}

func validateArea(s string) error {
	switch s {
	case constants.TargetThoracic, constants.TargetLumbar, constants.TargetPelvis, constants.TargetFullSpine:
		return nil
	}
	return fmt.Errorf("unknown target area %q (expected thoracic, lumbar, pelvis, or full_spine)", s)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printExercise(e models.Exercise, verbose bool) {
	fmt.Printf("  [%s] %s (%s)\n", e.Difficulty, e.Name, e.ID)
	fmt.Printf("      %s\n", e.Description)
	fmt.Printf("      Area: %s | %s | %s\n", e.TargetArea, e.Duration, e.Repetitions)
	if verbose {
		for i, step := range e.Instructions {
			fmt.Printf("      %d. %s\n", i+1, step)
		}
	}
}

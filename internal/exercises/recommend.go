package exercises

import (
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

// ForSchrothType returns the recommended exercises for a curve type:
// type-specific entries first, then general ones that list the type.
// An empty difficulty means no difficulty filter. A limit <= 0 falls back
// to DefaultLimit. Results are de-duplicated by ID preserving order.
// An unclassified type gets no recommendations.
func ForSchrothType(t constants.SchrothType, difficulty constants.Difficulty, limit int) []models.Exercise {
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := []models.Exercise{}
	candidates = append(candidates, byType[t]...)
	for _, e := range general {
		if e.AppliesTo(t) {
			candidates = append(candidates, e)
		}
	}

	if difficulty != "" {
		filtered := []models.Exercise{}
		for _, e := range candidates {
			if e.Difficulty == difficulty {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
	}

	out := dedupe(candidates)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByTargetArea returns the exercises working a body area (thoracic, lumbar,
// pelvis, or full_spine), optionally restricted to those applying to the
// given curve type. An empty type means no type filter.
func ByTargetArea(area string, t constants.SchrothType) []models.Exercise {
	out := []models.Exercise{}
	for _, e := range All() {
		if e.TargetArea != area {
			continue
		}
		if t != "" && !e.AppliesTo(t) {
			continue
		}
		out = append(out, e)
	}
	return dedupe(out)
}

// Progression groups a type's full recommendation set by difficulty so the
// user can work from beginner entries upward.
func Progression(t constants.SchrothType) map[constants.Difficulty][]models.Exercise {
	progression := map[constants.Difficulty][]models.Exercise{
		constants.DifficultyBeginner:     {},
		constants.DifficultyIntermediate: {},
		constants.DifficultyAdvanced:     {},
	}
	for _, e := range ForSchrothType(t, "", len(All())) {
		if _, ok := progression[e.Difficulty]; ok {
			progression[e.Difficulty] = append(progression[e.Difficulty], e)
		}
	}
	return progression
}

func dedupe(in []models.Exercise) []models.Exercise {
	seen := map[string]bool{}
	out := make([]models.Exercise, 0, len(in))
	for _, e := range in {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

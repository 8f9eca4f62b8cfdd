package models

import "github.com/julianstephens/backtrack/internal/constants"

// Exercise describes one Schroth-method exercise in the catalog.
type Exercise struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	TargetArea   string                  `json:"target_area"` // thoracic, lumbar, pelvis, or full_spine
	SchrothTypes []constants.SchrothType `json:"schroth_types"`
	Duration     string                  `json:"duration"`
	Repetitions  string                  `json:"repetitions"`
	Difficulty   constants.Difficulty    `json:"difficulty"`
	Instructions []string                `json:"instructions"`
}

// AppliesTo reports whether the exercise is suitable for the given curve type.
// An empty SchrothTypes list means the exercise applies to every type.
func (e Exercise) AppliesTo(t constants.SchrothType) bool {
	if len(e.SchrothTypes) == 0 {
		return true
	}
	for _, st := range e.SchrothTypes {
		if st == t {
			return true
		}
	}
	return false
}

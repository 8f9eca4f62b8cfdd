// Package exercises holds the built-in Schroth exercise catalog and the
// recommendation filters over it. The catalog is static; curve-type keyed
// entries cover the four classified patterns and a general set applies
// across all of them.
package exercises

import (
	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

// DefaultLimit is the number of exercises a recommendation returns unless
// the caller asks for more.
const DefaultLimit = 6

// typeOrder fixes the iteration order over the catalog so list output is
// stable run to run.
var typeOrder = []constants.SchrothType{
	constants.Schroth3C,
	constants.Schroth3CP,
	constants.Schroth4C,
	constants.Schroth4CP,
}

var byType = map[constants.SchrothType][]models.Exercise{
	constants.Schroth3C: {
		{
			ID:           "3c_side_shift",
			Name:         "Side Shift with Arm Reach",
			Description:  "Elongate the thoracic spine while shifting away from the curve to reduce thoracic convexity.",
			TargetArea:   constants.TargetThoracic,
			SchrothTypes: []constants.SchrothType{constants.Schroth3C, constants.Schroth3CP},
			Duration:     "30 seconds",
			Repetitions:  "3 sets each side",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Stand with feet hip-width apart, weight evenly distributed",
				"Reach the arm on the concave (collapsed) side overhead",
				"Shift your ribcage away from the thoracic curve",
				"Hold the position while breathing deeply into the concave side",
				"Focus on elongating and de-rotating the spine",
			},
		},
		{
			ID:           "3c_wall_derotation",
			Name:         "Wall-Assisted De-rotation",
			Description:  "Use the wall to support spinal de-rotation and correct thoracic rotation.",
			TargetArea:   constants.TargetThoracic,
			SchrothTypes: []constants.SchrothType{constants.Schroth3C},
			Duration:     "45 seconds",
			Repetitions:  "5 repetitions",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Stand sideways to the wall, curve side facing the wall",
				"Place your forearm on the wall at shoulder height",
				"Rotate your ribcage away from the wall",
				"Maintain elongation through the entire spine",
				"Breathe deeply into the concave (collapsed) areas",
			},
		},
		{
			ID:           "3c_prone_extension",
			Name:         "Prone Extension with Correction",
			Description:  "Strengthen back muscles while maintaining corrected spinal position.",
			TargetArea:   constants.TargetThoracic,
			SchrothTypes: []constants.SchrothType{constants.Schroth3C},
			Duration:     "10 seconds hold",
			Repetitions:  "8-10 repetitions",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Lie face down on a firm surface",
				"Place arms in a goal post position (elbows at 90 degrees)",
				"Lift chest slightly while de-rotating the thoracic spine",
				"Focus on lifting the concave side higher",
				"Hold briefly, then lower with control",
			},
		},
	},
	constants.Schroth3CP: {
		{
			ID:           "3cp_pelvic_correction",
			Name:         "Pelvic Shift Correction",
			Description:  "Correct unbalanced pelvis while addressing the thoracic curve pattern.",
			TargetArea:   constants.TargetPelvis,
			SchrothTypes: []constants.SchrothType{constants.Schroth3CP},
			Duration:     "30 seconds",
			Repetitions:  "3 sets",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Stand with feet hip-width apart",
				"Shift your pelvis toward the deviated side to center it",
				"Simultaneously reach the opposite arm overhead",
				"Create length through the waist on the concave side",
				"Hold the corrected position and breathe",
			},
		},
		{
			ID:           "3cp_hip_hike",
			Name:         "Hip Hike Exercise",
			Description:  "Strengthen hip muscles to support pelvic correction.",
			TargetArea:   constants.TargetPelvis,
			SchrothTypes: []constants.SchrothType{constants.Schroth3CP, constants.Schroth4CP},
			Duration:     "5 seconds hold",
			Repetitions:  "10-12 each side",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Stand on a step with one leg hanging off the edge",
				"Keep the standing leg straight",
				"Lower the hanging hip by tilting the pelvis",
				"Then lift the hip by contracting the standing side",
				"Control the movement through the full range",
			},
		},
		{
			ID:           "3cp_side_lying",
			Name:         "Side-Lying Correction",
			Description:  "Use gravity to assist spinal correction while lying on your side.",
			TargetArea:   constants.TargetThoracic,
			SchrothTypes: []constants.SchrothType{constants.Schroth3CP},
			Duration:     "2-3 minutes",
			Repetitions:  "1-2 times daily",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Lie on your side with the thoracic convexity facing up",
				"Place a small rolled towel under your waist",
				"Reach your top arm overhead to elongate",
				"Focus on breathing into the collapsed areas",
				"Allow gravity to help correct the curve",
			},
		},
	},
	constants.Schroth4C: {
		{
			ID:           "4c_lumbar_elongation",
			Name:         "Lumbar Elongation Stretch",
			Description:  "Create length in the lumbar spine while stabilizing the thoracic region.",
			TargetArea:   constants.TargetLumbar,
			SchrothTypes: []constants.SchrothType{constants.Schroth4C, constants.Schroth4CP},
			Duration:     "30 seconds",
			Repetitions:  "3 sets each side",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Lie on your side with the lumbar curve facing up",
				"Place a small towel roll under your waist for support",
				"Reach your top arm overhead",
				"Press your bottom hip down toward your feet",
				"Feel the stretch along the concave (collapsed) side",
			},
		},
		{
			ID:           "4c_cat_cow_modified",
			Name:         "Modified Cat-Cow for Double Curves",
			Description:  "Mobilize the spine with awareness of both curve regions.",
			TargetArea:   constants.TargetFullSpine,
			SchrothTypes: []constants.SchrothType{constants.Schroth4C},
			Duration:     "1 minute",
			Repetitions:  "8-10 cycles",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Start on hands and knees in tabletop position",
				"As you round the spine (cat), focus on the thoracic region",
				"As you arch (cow), focus on lumbar elongation",
				"Move slowly and coordinate with breath",
				"Emphasize de-rotation in both positions",
			},
		},
		{
			ID:           "4c_quadruped_reach",
			Name:         "Quadruped Opposite Reach",
			Description:  "Strengthen core while practicing spinal elongation and balance.",
			TargetArea:   constants.TargetFullSpine,
			SchrothTypes: []constants.SchrothType{constants.Schroth4C},
			Duration:     "5 seconds hold",
			Repetitions:  "10 each side",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Start on hands and knees",
				"Extend opposite arm and leg simultaneously",
				"Focus on keeping the spine long and neutral",
				"Avoid rotation or lateral shift",
				"Hold briefly, then return with control",
			},
		},
	},
	constants.Schroth4CP: {
		{
			ID:           "4cp_hip_correction",
			Name:         "Hip Shift with Lumbar De-rotation",
			Description:  "Correct pelvis imbalance while addressing the lumbar curve pattern.",
			TargetArea:   constants.TargetLumbar,
			SchrothTypes: []constants.SchrothType{constants.Schroth4CP},
			Duration:     "45 seconds",
			Repetitions:  "3 sets",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Stand with feet hip-width apart",
				"Shift your hips away from the lumbar convexity",
				"Rotate the lumbar spine toward neutral",
				"Maintain the pelvic correction throughout",
				"Focus on breathing into the concave lumbar area",
			},
		},
		{
			ID:           "4cp_seated_correction",
			Name:         "Seated Pelvic-Lumbar Correction",
			Description:  "Practice spinal correction in a seated position for daily activities.",
			TargetArea:   constants.TargetLumbar,
			SchrothTypes: []constants.SchrothType{constants.Schroth4CP},
			Duration:     "Hold during sitting",
			Repetitions:  "Practice frequently",
			Difficulty:   constants.DifficultyBeginner,
			Instructions: []string{
				"Sit on a firm chair with feet flat",
				"Feel both sit bones equally weighted",
				"Shift pelvis to correct the imbalance",
				"Elongate through the lumbar spine",
				"Maintain this position during daily sitting",
			},
		},
		{
			ID:           "4cp_standing_correction",
			Name:         "Standing Correction with Support",
			Description:  "Practice full spinal correction using a wall for feedback.",
			TargetArea:   constants.TargetFullSpine,
			SchrothTypes: []constants.SchrothType{constants.Schroth4CP},
			Duration:     "1 minute",
			Repetitions:  "5 times daily",
			Difficulty:   constants.DifficultyIntermediate,
			Instructions: []string{
				"Stand with your back against a wall",
				"Feel the areas that don't touch the wall",
				"Shift pelvis to level it",
				"Press the concave areas toward the wall",
				"Breathe and maintain the corrected posture",
			},
		},
	},
}

// general exercises apply to every classified curve type and round out each
// recommendation after the type-specific entries.
var general = []models.Exercise{
	{
		ID:           "general_rab",
		Name:         "Rotational Angular Breathing (RAB)",
		Description:  "Core Schroth breathing technique that expands collapsed areas of the ribcage.",
		TargetArea:   constants.TargetFullSpine,
		SchrothTypes: []constants.SchrothType{constants.Schroth3C, constants.Schroth3CP, constants.Schroth4C, constants.Schroth4CP},
		Duration:     "5 minutes",
		Repetitions:  "10 breath cycles",
		Difficulty:   constants.DifficultyBeginner,
		Instructions: []string{
			"Identify your concave (collapsed) areas",
			"Place your hands on these areas for feedback",
			"Inhale deeply, directing breath into the collapsed areas",
			"Feel your ribs expand outward under your hands",
			"Exhale slowly while maintaining the expanded position",
		},
	},
	{
		ID:           "general_elongation",
		Name:         "Active Elongation",
		Description:  "Create maximum length through the spine while maintaining corrections.",
		TargetArea:   constants.TargetFullSpine,
		SchrothTypes: []constants.SchrothType{constants.Schroth3C, constants.Schroth3CP, constants.Schroth4C, constants.Schroth4CP},
		Duration:     "30 seconds",
		Repetitions:  "5-8 repetitions",
		Difficulty:   constants.DifficultyBeginner,
		Instructions: []string{
			"Stand or sit with good posture",
			"Imagine a string pulling the crown of your head upward",
			"Lengthen your neck and spine without arching",
			"Keep shoulders relaxed and down",
			"Maintain the elongation while breathing normally",
		},
	},
	{
		ID:           "general_awareness",
		Name:         "Posture Awareness Check",
		Description:  "Regular self-checks to maintain corrected posture throughout the day.",
		TargetArea:   constants.TargetFullSpine,
		SchrothTypes: []constants.SchrothType{constants.Schroth3C, constants.Schroth3CP, constants.Schroth4C, constants.Schroth4CP},
		Duration:     "30 seconds",
		Repetitions:  "Hourly throughout day",
		Difficulty:   constants.DifficultyBeginner,
		Instructions: []string{
			"Set regular reminders to check your posture",
			"Notice if you've returned to your curve pattern",
			"Reset your pelvis position",
			"Elongate through your spine",
			"Take one deep breath into your concave areas",
		},
	},
}

// All returns every catalog entry in stable order: type-specific groups
// first, general ones last.
func All() []models.Exercise {
	out := []models.Exercise{}
	for _, t := range typeOrder {
		out = append(out, byType[t]...)
	}
	out = append(out, general...)
	return out
}

// ByID looks up a single exercise.
func ByID(id string) (models.Exercise, bool) {
	for _, e := range All() {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exercise{}, false
}

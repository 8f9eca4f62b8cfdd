package exercises

import (
	"testing"

	"github.com/julianstephens/backtrack/internal/constants"
	"github.com/julianstephens/backtrack/internal/models"
)

func ids(exercises []models.Exercise) []string {
	out := make([]string, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, e.ID)
	}
	return out
}

func TestAll_CatalogIsWellFormed(t *testing.T) {
	all := All()

	if len(all) != 15 {
		t.Fatalf("len(All()) = %d, want 15", len(all))
	}

	validAreas := map[string]bool{
		constants.TargetThoracic:  true,
		constants.TargetLumbar:    true,
		constants.TargetPelvis:    true,
		constants.TargetFullSpine: true,
	}
	validDifficulties := map[constants.Difficulty]bool{
		constants.DifficultyBeginner:     true,
		constants.DifficultyIntermediate: true,
		constants.DifficultyAdvanced:     true,
	}

	seen := map[string]bool{}
	for _, e := range all {
		if e.ID == "" || e.Name == "" || e.Description == "" {
			t.Errorf("exercise %q is missing identity fields", e.ID)
		}
		if seen[e.ID] {
			t.Errorf("duplicate exercise id %q in catalog", e.ID)
		}
		seen[e.ID] = true
		if !validAreas[e.TargetArea] {
			t.Errorf("exercise %q has unknown target area %q", e.ID, e.TargetArea)
		}
		if !validDifficulties[e.Difficulty] {
			t.Errorf("exercise %q has unknown difficulty %q", e.ID, e.Difficulty)
		}
		if len(e.SchrothTypes) == 0 {
			t.Errorf("exercise %q lists no curve types", e.ID)
		}
		if len(e.Instructions) == 0 {
			t.Errorf("exercise %q has no instructions", e.ID)
		}
	}
}

func TestForSchrothType(t *testing.T) {
	tests := []struct {
		name       string
		schroth    constants.SchrothType
		difficulty constants.Difficulty
		limit      int
		wantIDs    []string
	}{
		{
			name:    "3C gets type entries then general",
			schroth: constants.Schroth3C,
			wantIDs: []string{"3c_side_shift", "3c_wall_derotation", "3c_prone_extension", "general_rab", "general_elongation", "general_awareness"},
		},
		{
			name:    "4CP gets its own entries",
			schroth: constants.Schroth4CP,
			wantIDs: []string{"4cp_hip_correction", "4cp_seated_correction", "4cp_standing_correction", "general_rab", "general_elongation", "general_awareness"},
		},
		{
			name:       "difficulty filter keeps beginners only",
			schroth:    constants.Schroth3C,
			difficulty: constants.DifficultyBeginner,
			wantIDs:    []string{"3c_side_shift", "general_rab", "general_elongation", "general_awareness"},
		},
		{
			name:    "limit truncates after type-specific entries",
			schroth: constants.Schroth3CP,
			limit:   2,
			wantIDs: []string{"3cp_pelvic_correction", "3cp_hip_hike"},
		},
		{
			name:    "unclassified type gets nothing",
			schroth: constants.SchrothUnknown,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForSchrothType(tt.schroth, tt.difficulty, tt.limit)

			gotIDs := ids(got)
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("ForSchrothType() returned %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("ForSchrothType()[%d] = %q, want %q", i, gotIDs[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestForSchrothType_EveryResultAppliesToType(t *testing.T) {
	for _, schroth := range []constants.SchrothType{constants.Schroth3C, constants.Schroth3CP, constants.Schroth4C, constants.Schroth4CP} {
		seen := map[string]bool{}
		for _, e := range ForSchrothType(schroth, "", 0) {
			if !e.AppliesTo(schroth) {
				t.Errorf("ForSchrothType(%s) returned %q which does not apply to the type", schroth, e.ID)
			}
			if seen[e.ID] {
				t.Errorf("ForSchrothType(%s) returned duplicate id %q", schroth, e.ID)
			}
			seen[e.ID] = true
		}
	}
}

func TestForSchrothType_DefaultLimit(t *testing.T) {
	got := ForSchrothType(constants.Schroth4C, "", 0)

	if len(got) > DefaultLimit {
		t.Errorf("len(ForSchrothType()) = %d, want at most %d", len(got), DefaultLimit)
	}
}

func TestByTargetArea(t *testing.T) {
	tests := []struct {
		name    string
		area    string
		schroth constants.SchrothType
		wantIDs []string
	}{
		{
			name:    "pelvis across all types",
			area:    constants.TargetPelvis,
			wantIDs: []string{"3cp_pelvic_correction", "3cp_hip_hike"},
		},
		{
			name:    "pelvis restricted to 4CP",
			area:    constants.TargetPelvis,
			schroth: constants.Schroth4CP,
			wantIDs: []string{"3cp_hip_hike"},
		},
		{
			name:    "lumbar across all types",
			area:    constants.TargetLumbar,
			wantIDs: []string{"4c_lumbar_elongation", "4cp_hip_correction", "4cp_seated_correction"},
		},
		{
			name:    "unknown area is empty",
			area:    "cervical",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByTargetArea(tt.area, tt.schroth)

			gotIDs := ids(got)
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("ByTargetArea() returned %v, want %v", gotIDs, tt.wantIDs)
			}
			for i := range tt.wantIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("ByTargetArea()[%d] = %q, want %q", i, gotIDs[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestProgression(t *testing.T) {
	progression := Progression(constants.Schroth3C)

	wantBeginner := []string{"3c_side_shift", "general_rab", "general_elongation", "general_awareness"}
	wantIntermediate := []string{"3c_wall_derotation", "3c_prone_extension"}

	gotBeginner := ids(progression[constants.DifficultyBeginner])
	if len(gotBeginner) != len(wantBeginner) {
		t.Fatalf("beginner group = %v, want %v", gotBeginner, wantBeginner)
	}
	for i := range wantBeginner {
		if gotBeginner[i] != wantBeginner[i] {
			t.Errorf("beginner[%d] = %q, want %q", i, gotBeginner[i], wantBeginner[i])
		}
	}

	gotIntermediate := ids(progression[constants.DifficultyIntermediate])
	if len(gotIntermediate) != len(wantIntermediate) {
		t.Fatalf("intermediate group = %v, want %v", gotIntermediate, wantIntermediate)
	}

	if got := len(progression[constants.DifficultyAdvanced]); got != 0 {
		t.Errorf("advanced group has %d entries, want 0", got)
	}
}

func TestByID(t *testing.T) {
	exercise, ok := ByID("general_rab")
	if !ok {
		t.Fatal("ByID(general_rab) not found")
	}
	if exercise.Name != "Rotational Angular Breathing (RAB)" {
		t.Errorf("Name = %q, want the RAB entry", exercise.Name)
	}

	if _, ok := ByID("nonexistent"); ok {
		t.Error("ByID(nonexistent) reported found")
	}
}

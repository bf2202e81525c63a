package matching

import (
	"testing"

	"career-service/internal/models"
)

func TestCompletionAdditivity(t *testing.T) {
	record := []models.AcademicRecord{{Institution: "State University"}}
	cert := []models.Certificate{{Name: "AWS"}}
	work := []models.WorkExperience{{Company: "Acme"}}
	skills := []string{"go"}

	testCases := []struct {
		name     string
		profile  *models.StudentProfile
		expected int
	}{
		{"empty profile", &models.StudentProfile{}, 0},
		{"only academic records", &models.StudentProfile{AcademicRecords: record}, 30},
		{"only certificates", &models.StudentProfile{Certificates: cert}, 20},
		{"only work experience", &models.StudentProfile{WorkExperience: work}, 25},
		{"only skills", &models.StudentProfile{Skills: skills}, 25},
		{"records and skills", &models.StudentProfile{AcademicRecords: record, Skills: skills}, 55},
		{"everything", &models.StudentProfile{AcademicRecords: record, Certificates: cert, WorkExperience: work, Skills: skills}, 100},
		{"nil profile", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Completion(tc.profile); got != tc.expected {
				t.Errorf("Completion() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestResumeGate(t *testing.T) {
	record := []models.AcademicRecord{{Institution: "State University"}}

	// 30 is below the 50 minimum, 55 clears it.
	below := &models.StudentProfile{AcademicRecords: record}
	above := &models.StudentProfile{AcademicRecords: record, Skills: []string{"go"}}

	if CanGenerateResume(below) {
		t.Error("profile at 30% should not generate a resume")
	}
	if !CanGenerateResume(above) {
		t.Error("profile at 55% should generate a resume")
	}
}

func TestApplyGateIndependentOfCompletion(t *testing.T) {
	// 70% complete but no academic records: may not apply.
	noRecords := &models.StudentProfile{
		Certificates:   []models.Certificate{{Name: "AWS"}},
		WorkExperience: []models.WorkExperience{{Company: "Acme"}},
		Skills:         []string{"go"},
	}
	if CanApply(noRecords) {
		t.Error("applying requires academic records regardless of completion")
	}

	// 30% complete with a record: may apply.
	withRecords := &models.StudentProfile{
		AcademicRecords: []models.AcademicRecord{{Institution: "State University"}},
	}
	if !CanApply(withRecords) {
		t.Error("profile with academic records should be allowed to apply")
	}
}

func TestMissingSections(t *testing.T) {
	profile := &models.StudentProfile{Skills: []string{"go"}}
	missing := MissingSections(profile)

	if len(missing) != 3 {
		t.Fatalf("expected 3 missing sections, got %d: %v", len(missing), missing)
	}
	for _, section := range missing {
		if section == "skills" {
			t.Error("skills should not be reported missing")
		}
	}
}

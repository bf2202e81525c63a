package matching

import (
	"strings"
	"testing"

	"career-service/internal/models"
)

func makeProfile(gpa string, certs, experiences int, skills []string) *models.StudentProfile {
	profile := &models.StudentProfile{
		UserID: "student-1",
		Skills: skills,
	}
	if gpa != "none" {
		profile.AcademicRecords = []models.AcademicRecord{
			{Institution: "State University", Year: "2023", GPA: gpa},
		}
	}
	for i := 0; i < certs; i++ {
		profile.Certificates = append(profile.Certificates, models.Certificate{Name: "cert"})
	}
	for i := 0; i < experiences; i++ {
		profile.WorkExperience = append(profile.WorkExperience, models.WorkExperience{Company: "corp"})
	}
	return profile
}

func TestScoreComponents(t *testing.T) {
	job := &models.JobPosting{
		Title:        "Data Analyst",
		Requirements: "Looking for Python and SQL skills",
	}

	testCases := []struct {
		name     string
		profile  *models.StudentProfile
		expected int
	}{
		{"high gpa two certs one exp one skill match", makeProfile("3.8", 2, 1, []string{"Python", "Excel"}), 52},
		{"stronger profile crosses threshold", makeProfile("3.9", 3, 2, []string{"python", "sql", "excel"}), 69},
		{"gpa 3.0 tier", makeProfile("3.0", 0, 0, nil), 25},
		{"gpa 2.5 tier", makeProfile("2.5", 0, 0, nil), 20},
		{"gpa below 2.5 tier", makeProfile("1.9", 0, 0, nil), 10},
		{"record without gpa gets flat credit", makeProfile("", 0, 0, nil), 15},
		{"unparseable gpa gets flat credit", makeProfile("three point five", 0, 0, nil), 15},
		{"no academic records", makeProfile("none", 0, 0, nil), 0},
		{"certificates capped at 25", makeProfile("none", 10, 0, nil), 25},
		{"experience capped at 25", makeProfile("none", 0, 10, nil), 25},
		{"skills capped at 20", makeProfile("none", 0, 0, []string{"python", "sql", "looking", "for", "and", "skills"}), 20},
		{"empty profile", &models.StudentProfile{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.profile, job)
			if got != tc.expected {
				t.Errorf("Score() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	job := &models.JobPosting{Requirements: "go python kubernetes sql"}
	profiles := []*models.StudentProfile{
		makeProfile("3.7", 4, 3, []string{"go", "python", "kubernetes", "sql", "redis"}),
		makeProfile("2.1", 0, 1, []string{"cobol"}),
		makeProfile("none", 0, 0, nil),
		nil,
	}

	for _, profile := range profiles {
		first := Score(profile, job)
		for i := 0; i < 10; i++ {
			if got := Score(profile, job); got != first {
				t.Fatalf("Score() not deterministic: first %d, then %d", first, got)
			}
		}
		if first < 0 || first > 100 {
			t.Errorf("Score() = %d, outside [0,100]", first)
		}
	}
}

func TestScoreIgnoresQualificationsText(t *testing.T) {
	profile := makeProfile("none", 0, 0, []string{"python"})
	job := &models.JobPosting{
		Requirements:   "needs sql",
		Qualifications: "python preferred",
	}

	if got := Score(profile, job); got != 0 {
		t.Errorf("Score() = %d, want 0: skills must match requirements text only", got)
	}
}

func TestScoreSkillMatchIsCaseInsensitive(t *testing.T) {
	profile := makeProfile("none", 0, 0, []string{"PyThOn"})
	job := &models.JobPosting{Requirements: "PYTHON developer wanted"}

	if got := Score(profile, job); got != 4 {
		t.Errorf("Score() = %d, want 4", got)
	}
}

func TestStrengths(t *testing.T) {
	job := &models.JobPosting{Requirements: "python and sql"}

	t.Run("full profile caps at three", func(t *testing.T) {
		profile := makeProfile("3.8", 2, 1, []string{"python", "sql"})
		strengths := Strengths(profile, job)

		if len(strengths) != 3 {
			t.Fatalf("expected 3 strengths, got %d: %v", len(strengths), strengths)
		}
		if !strings.Contains(strengths[0], "GPA: 3.8") {
			t.Errorf("first strength should mention GPA, got %q", strengths[0])
		}
		if strengths[1] != "2 professional certificates" {
			t.Errorf("unexpected second strength: %q", strengths[1])
		}
		if strengths[2] != "1 work experiences" {
			t.Errorf("unexpected third strength: %q", strengths[2])
		}
	})

	t.Run("low gpa is not a strength", func(t *testing.T) {
		profile := makeProfile("2.4", 0, 0, []string{"python"})
		strengths := Strengths(profile, job)

		if len(strengths) != 1 {
			t.Fatalf("expected 1 strength, got %d: %v", len(strengths), strengths)
		}
		if strengths[0] != "Relevant skills: python" {
			t.Errorf("unexpected strength: %q", strengths[0])
		}
	})

	t.Run("skill list trimmed to three", func(t *testing.T) {
		profile := makeProfile("none", 0, 0, []string{"python", "sql", "and"})
		job := &models.JobPosting{Requirements: "python sql and go"}
		strengths := Strengths(profile, job)

		if len(strengths) != 1 {
			t.Fatalf("expected 1 strength, got %d", len(strengths))
		}
		if strengths[0] != "Relevant skills: python, sql, and" {
			t.Errorf("unexpected strength: %q", strengths[0])
		}
	})

	t.Run("empty profile yields nothing", func(t *testing.T) {
		if strengths := Strengths(&models.StudentProfile{}, job); len(strengths) != 0 {
			t.Errorf("expected no strengths, got %v", strengths)
		}
	})
}

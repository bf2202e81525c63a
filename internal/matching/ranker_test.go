package matching

import (
	"testing"

	"career-service/internal/models"
)

func TestRankFiltersBelowThreshold(t *testing.T) {
	job := &models.JobPosting{Requirements: "python sql"}
	candidates := []*models.StudentProfile{
		makeProfile("3.9", 3, 2, []string{"python", "sql"}), // 69
		makeProfile("3.8", 2, 1, []string{"python"}),        // 52
		makeProfile("none", 0, 0, nil),                      // 0
	}

	results := Rank(job, candidates, DefaultThreshold)

	if len(results) != 1 {
		t.Fatalf("expected 1 qualified candidate, got %d", len(results))
	}
	for _, result := range results {
		if result.Score < DefaultThreshold {
			t.Errorf("result score %d below threshold %d", result.Score, DefaultThreshold)
		}
	}
}

func TestRankSortsDescending(t *testing.T) {
	job := &models.JobPosting{Requirements: "go"}
	candidates := []*models.StudentProfile{
		makeProfile("3.1", 2, 1, []string{"go"}), // 47
		makeProfile("3.9", 5, 3, []string{"go"}), // 83
		makeProfile("3.6", 3, 2, []string{"go"}), // 65
	}

	results := Rank(job, candidates, 0)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending: %d before %d", results[i-1].Score, results[i].Score)
		}
	}
}

func TestRankStableOnEqualScores(t *testing.T) {
	job := &models.JobPosting{Requirements: "python"}

	// Identical scoring inputs, distinct identities.
	var candidates []*models.StudentProfile
	ids := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for _, id := range ids {
		profile := makeProfile("3.9", 3, 2, []string{"python"})
		profile.UserID = id
		candidates = append(candidates, profile)
	}

	results := Rank(job, candidates, 0)

	if len(results) != len(ids) {
		t.Fatalf("expected %d results, got %d", len(ids), len(results))
	}
	for i, id := range ids {
		if results[i].CandidateID != id {
			t.Errorf("position %d: expected %s, got %s (equal scores must keep input order)", i, id, results[i].CandidateID)
		}
	}
}

func TestRankEmptyAndNilInput(t *testing.T) {
	job := &models.JobPosting{Requirements: "python"}

	if results := Rank(job, nil, DefaultThreshold); len(results) != 0 {
		t.Errorf("expected empty ranking for nil candidates, got %d results", len(results))
	}
	if results := Rank(job, []*models.StudentProfile{nil, nil}, DefaultThreshold); len(results) != 0 {
		t.Errorf("expected empty ranking for nil entries, got %d results", len(results))
	}
}

func TestRankAttachesStrengths(t *testing.T) {
	job := &models.JobPosting{Requirements: "python sql"}
	candidates := []*models.StudentProfile{
		makeProfile("3.9", 3, 2, []string{"python", "sql"}),
	}

	results := Rank(job, candidates, DefaultThreshold)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Strengths) == 0 || len(results[0].Strengths) > 3 {
		t.Errorf("expected 1-3 strengths, got %d", len(results[0].Strengths))
	}
}

package matching

import (
	"sort"

	"career-service/internal/models"
)

// DefaultThreshold is the minimum score for a candidate to surface in a
// qualified-candidate ranking.
const DefaultThreshold = 60

// Rank scores every candidate against the job, drops those below the
// threshold and returns the rest sorted by score, highest first. The sort
// is stable: candidates with equal scores keep their input order, so a
// ranking is reproducible for a given candidate slice.
func Rank(job *models.JobPosting, candidates []*models.StudentProfile, threshold int) []models.MatchResult {
	var qualified []models.MatchResult

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		score := Score(candidate, job)
		if score < threshold {
			continue
		}

		qualified = append(qualified, models.MatchResult{
			CandidateID: candidate.UserID,
			DisplayName: candidate.DisplayName,
			Score:       score,
			Strengths:   Strengths(candidate, job),
		})
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	return qualified
}

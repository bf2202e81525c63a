package matching

import (
	"fmt"
	"strconv"
	"strings"

	"career-service/internal/models"
)

const maxScore = 100

// Score computes a 0-100 match between a student profile and a job posting.
// It is pure and deterministic; malformed profiles degrade to low scores
// instead of erroring.
func Score(profile *models.StudentProfile, job *models.JobPosting) int {
	if profile == nil || job == nil {
		return 0
	}

	score := 0

	// Academic performance, max 30. The last record is the most recent one.
	if len(profile.AcademicRecords) > 0 {
		latest := profile.AcademicRecords[len(profile.AcademicRecords)-1]
		if gpa, ok := parseGPA(latest.GPA); ok {
			switch {
			case gpa >= 3.5:
				score += 30
			case gpa >= 3.0:
				score += 25
			case gpa >= 2.5:
				score += 20
			default:
				score += 10
			}
		} else {
			score += 15
		}
	}

	// Certificates, max 25.
	score += min(len(profile.Certificates)*5, 25)

	// Work experience, max 25.
	score += min(len(profile.WorkExperience)*8, 25)

	// Skills matched against the job requirements text, max 20.
	score += min(len(matchingSkills(profile.Skills, job.Requirements))*4, 20)

	return min(score, maxScore)
}

// Strengths returns up to three human-readable reasons why the candidate
// fits the job, in priority order.
func Strengths(profile *models.StudentProfile, job *models.JobPosting) []string {
	if profile == nil || job == nil {
		return nil
	}

	var strengths []string

	if len(profile.AcademicRecords) > 0 {
		latest := profile.AcademicRecords[len(profile.AcademicRecords)-1]
		if gpa, ok := parseGPA(latest.GPA); ok && gpa >= 3.0 {
			strengths = append(strengths, fmt.Sprintf("Strong academic record (GPA: %s)", latest.GPA))
		}
	}

	if len(profile.Certificates) > 0 {
		strengths = append(strengths, fmt.Sprintf("%d professional certificates", len(profile.Certificates)))
	}

	if len(profile.WorkExperience) > 0 {
		strengths = append(strengths, fmt.Sprintf("%d work experiences", len(profile.WorkExperience)))
	}

	if relevant := matchingSkills(profile.Skills, job.Requirements); len(relevant) > 0 {
		if len(relevant) > 3 {
			relevant = relevant[:3]
		}
		strengths = append(strengths, "Relevant skills: "+strings.Join(relevant, ", "))
	}

	if len(strengths) > 3 {
		strengths = strengths[:3]
	}
	return strengths
}

func parseGPA(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	gpa, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return gpa, true
}

// matchingSkills keeps the skills whose lowercase form appears as a
// substring of the lowercased requirements text.
func matchingSkills(skills []string, requirements string) []string {
	if len(skills) == 0 || requirements == "" {
		return nil
	}

	lowered := strings.ToLower(requirements)
	var matched []string
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
	}
	return matched
}

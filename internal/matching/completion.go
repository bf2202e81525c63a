package matching

import (
	"career-service/internal/models"
)

// Profile completion weights. Presence of a section earns its full weight;
// the quality of the entries is not measured.
const (
	academicRecordsWeight = 30
	certificatesWeight    = 20
	workExperienceWeight  = 25
	skillsWeight          = 25

	// ResumeCompletionMinimum gates resume generation.
	ResumeCompletionMinimum = 50
)

// Completion computes the weighted completion percentage of a profile.
func Completion(profile *models.StudentProfile) int {
	if profile == nil {
		return 0
	}

	completion := 0
	if len(profile.AcademicRecords) > 0 {
		completion += academicRecordsWeight
	}
	if len(profile.Certificates) > 0 {
		completion += certificatesWeight
	}
	if len(profile.WorkExperience) > 0 {
		completion += workExperienceWeight
	}
	if len(profile.Skills) > 0 {
		completion += skillsWeight
	}
	return completion
}

// CanGenerateResume reports whether the profile is complete enough for
// resume generation.
func CanGenerateResume(profile *models.StudentProfile) bool {
	return Completion(profile) >= ResumeCompletionMinimum
}

// CanApply reports whether the student may submit applications. This gate
// is independent of the completion percentage: applying requires at least
// one academic record.
func CanApply(profile *models.StudentProfile) bool {
	return profile != nil && len(profile.AcademicRecords) > 0
}

// MissingSections lists the profile sections that are still empty.
func MissingSections(profile *models.StudentProfile) []string {
	var missing []string
	if profile == nil {
		return []string{"academicRecords", "certificates", "workExperience", "skills"}
	}
	if len(profile.AcademicRecords) == 0 {
		missing = append(missing, "academicRecords")
	}
	if len(profile.Certificates) == 0 {
		missing = append(missing, "certificates")
	}
	if len(profile.WorkExperience) == 0 {
		missing = append(missing, "workExperience")
	}
	if len(profile.Skills) == 0 {
		missing = append(missing, "skills")
	}
	return missing
}

// Recommendations suggests the next profile sections to fill in.
func Recommendations(profile *models.StudentProfile) []string {
	var recommendations []string
	if profile == nil {
		return nil
	}
	if len(profile.AcademicRecords) == 0 {
		recommendations = append(recommendations, "Add your academic records to unlock course and job applications")
	}
	if len(profile.Skills) == 0 {
		recommendations = append(recommendations, "Add your skills so companies can match you against job requirements")
	}
	if len(profile.WorkExperience) == 0 {
		recommendations = append(recommendations, "Add work experience to strengthen your match score")
	}
	if len(profile.Certificates) == 0 {
		recommendations = append(recommendations, "Add certificates to showcase your qualifications")
	}
	return recommendations
}

package models

type CreateProfileRequest struct {
	UserID      string `json:"userId" binding:"required"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

type AddAcademicRecordRequest struct {
	Record AcademicRecord `json:"record" binding:"required"`
}

type AddCertificateRequest struct {
	Certificate Certificate `json:"certificate" binding:"required"`
}

type AddWorkExperienceRequest struct {
	Experience WorkExperience `json:"experience" binding:"required"`
}

type AddSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

type ProfileCompletionResponse struct {
	Completion         int      `json:"completion"`
	MissingSections    []string `json:"missingSections,omitempty"`
	RecommendedActions []string `json:"recommendedActions,omitempty"`
	CanGenerateResume  bool     `json:"canGenerateResume"`
	CanApply           bool     `json:"canApply"`
}

type CreateJobRequest struct {
	Title          string `json:"title" binding:"required"`
	Requirements   string `json:"requirements,omitempty"`
	Qualifications string `json:"qualifications,omitempty"`
}

type ApplyForCourseRequest struct {
	InstitutionID string  `json:"institutionId" binding:"required"`
	CourseID      string  `json:"courseId,omitempty"`
	CourseName    string  `json:"courseName,omitempty"`
	Score         float64 `json:"score,omitempty"`
}

// IntakeLimit distinguishes "omitted" from an explicit zero: nil falls
// back to the configured default, zero pauses intake.
type ProcessAdmissionsRequest struct {
	InstitutionID string `json:"institutionId" binding:"required"`
	IntakeLimit   *int   `json:"intakeLimit,omitempty"`
}

type ProcessAdmissionsResponse struct {
	Admitted int `json:"admitted"`
	Waiting  int `json:"waiting"`
}

// MatchResult is computed on demand and never authoritative; the matching
// service may cache it, callers must not persist it.
type MatchResult struct {
	CandidateID string   `json:"candidateId"`
	DisplayName string   `json:"displayName,omitempty"`
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths,omitempty"`
}

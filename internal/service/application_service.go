package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"career-service/internal/event"
	"career-service/internal/matching"
	"career-service/internal/models"
	"career-service/internal/repository"
)

// ErrProfileIncomplete means the student does not pass the application
// gate: at least one academic record is required.
var ErrProfileIncomplete = errors.New("profile has no academic records")

// ErrDuplicateApplication means the student already applied to this target.
var ErrDuplicateApplication = errors.New("application already exists")

type ApplicationService struct {
	applicationRepo    *repository.ApplicationRepository
	jobApplicationRepo *repository.JobApplicationRepository
	profileRepo        *repository.ProfileRepository
	publisher          event.Publisher
}

func NewApplicationService(
	applicationRepo *repository.ApplicationRepository,
	jobApplicationRepo *repository.JobApplicationRepository,
	profileRepo *repository.ProfileRepository,
	publisher event.Publisher,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo:    applicationRepo,
		jobApplicationRepo: jobApplicationRepo,
		profileRepo:        profileRepo,
		publisher:          publisher,
	}
}

// ApplyForCourse submits a course application at an institution. The
// student must have at least one academic record; the stored score seeds
// the later admissions ranking.
func (s *ApplicationService) ApplyForCourse(ctx context.Context, studentID string, req *models.ApplyForCourseRequest) (*models.Application, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}
	if req.InstitutionID == "" {
		return nil, fmt.Errorf("institution ID is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student profile: %w", err)
	}
	if !matching.CanApply(profile) {
		return nil, ErrProfileIncomplete
	}

	exists, err := s.applicationRepo.Exists(ctx, studentID, req.InstitutionID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	application := &models.Application{
		StudentID:     studentID,
		StudentName:   profile.DisplayName,
		InstitutionID: req.InstitutionID,
		CourseID:      req.CourseID,
		CourseName:    req.CourseName,
		Score:         req.Score,
		Status:        models.StatusPending,
	}

	created, err := s.applicationRepo.New(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	submittedEvent := event.NewApplicationSubmittedEvent(studentID, req.InstitutionID)
	if err := s.publisher.PublishCareerEvent(submittedEvent); err != nil {
		log.Printf("Failed to publish application submitted event: %v", err)
	}

	return created, nil
}

// ApplyForJob submits a job application, gated the same way as course
// applications.
func (s *ApplicationService) ApplyForJob(ctx context.Context, studentID, jobID string) (*models.JobApplication, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}
	if jobID == "" {
		return nil, fmt.Errorf("job ID is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student profile: %w", err)
	}
	if !matching.CanApply(profile) {
		return nil, ErrProfileIncomplete
	}

	exists, err := s.jobApplicationRepo.Exists(ctx, studentID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	application := &models.JobApplication{
		StudentID: studentID,
		JobID:     jobID,
	}

	created, err := s.jobApplicationRepo.New(ctx, application)
	if err != nil {
		return nil, fmt.Errorf("failed to submit job application: %w", err)
	}

	return created, nil
}

func (s *ApplicationService) ListStudentApplications(ctx context.Context, studentID string) ([]models.Application, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}
	return s.applicationRepo.FindByStudentID(ctx, studentID)
}

func (s *ApplicationService) ListStudentJobApplications(ctx context.Context, studentID string) ([]models.JobApplication, error) {
	if studentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}
	return s.jobApplicationRepo.FindByStudentID(ctx, studentID)
}

func (s *ApplicationService) ListInstitutionApplications(ctx context.Context, institutionID string) ([]models.Application, error) {
	if institutionID == "" {
		return nil, fmt.Errorf("institution ID is required")
	}
	return s.applicationRepo.FindByInstitutionID(ctx, institutionID)
}

// SyncApplicationNames re-joins the denormalized student display name on a
// student's applications from the profile store. The pass is idempotent:
// applications already carrying the current name are untouched.
func (s *ApplicationService) SyncApplicationNames(ctx context.Context, studentID string) (int64, error) {
	if studentID == "" {
		return 0, fmt.Errorf("student ID is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load student profile: %w", err)
	}

	updated, err := s.applicationRepo.SyncStudentName(ctx, studentID, profile.DisplayName)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		log.Printf("Reconciled student name on %d applications for %s", updated, studentID)
	}
	return updated, nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"career-service/internal/event"
	"career-service/internal/matching"
	"career-service/internal/models"
	"career-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileService struct {
	profileRepo *repository.ProfileRepository
	publisher   event.Publisher
}

func NewProfileService(profileRepo *repository.ProfileRepository, publisher event.Publisher) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// CreateProfile creates a new student profile.
func (s *ProfileService) CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.StudentProfile, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.Email != "" && !s.isValidEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	existingProfile, err := s.profileRepo.FindByUserID(ctx, req.UserID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existingProfile != nil {
		return nil, fmt.Errorf("profile already exists for user %s", req.UserID)
	}

	profile := &models.StudentProfile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
	}

	createdProfile, err := s.profileRepo.New(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return createdProfile, nil
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("profile not found for user %s", userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// AddAcademicRecord appends one record to the student's academic history.
func (s *ProfileService) AddAcademicRecord(ctx context.Context, userID string, record models.AcademicRecord) error {
	if record.Institution == "" {
		return fmt.Errorf("institution name is required")
	}

	if err := s.profileRepo.AppendAcademicRecord(ctx, userID, record); err != nil {
		return s.amendError(err, userID, "academic record")
	}

	s.publishUpdated(userID, "academicRecords")
	return nil
}

func (s *ProfileService) AddCertificate(ctx context.Context, userID string, certificate models.Certificate) error {
	if certificate.Name == "" {
		return fmt.Errorf("certificate name is required")
	}

	if err := s.profileRepo.AppendCertificate(ctx, userID, certificate); err != nil {
		return s.amendError(err, userID, "certificate")
	}

	s.publishUpdated(userID, "certificates")
	return nil
}

func (s *ProfileService) AddWorkExperience(ctx context.Context, userID string, experience models.WorkExperience) error {
	if experience.Company == "" {
		return fmt.Errorf("company name is required")
	}

	if err := s.profileRepo.AppendWorkExperience(ctx, userID, experience); err != nil {
		return s.amendError(err, userID, "work experience")
	}

	s.publishUpdated(userID, "workExperience")
	return nil
}

func (s *ProfileService) AddSkill(ctx context.Context, userID, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return fmt.Errorf("skill is required")
	}

	profile, err := s.GetProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range profile.Skills {
		if strings.EqualFold(existing, skill) {
			return fmt.Errorf("skill %q already present", skill)
		}
	}

	if err := s.profileRepo.AppendSkill(ctx, userID, skill); err != nil {
		return s.amendError(err, userID, "skill")
	}

	s.publishUpdated(userID, "skills")
	return nil
}

func (s *ProfileService) RemoveSkill(ctx context.Context, userID, skill string) error {
	if skill == "" {
		return fmt.Errorf("skill is required")
	}

	if err := s.profileRepo.RemoveSkill(ctx, userID, skill); err != nil {
		return s.amendError(err, userID, "skill")
	}

	s.publishUpdated(userID, "skills")
	return nil
}

// GetCompletion computes the profile completion percentage and the two
// feature gates derived from the profile.
func (s *ProfileService) GetCompletion(ctx context.Context, userID string) (*models.ProfileCompletionResponse, error) {
	profile, err := s.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileCompletionResponse{
		Completion:         matching.Completion(profile),
		MissingSections:    matching.MissingSections(profile),
		RecommendedActions: matching.Recommendations(profile),
		CanGenerateResume:  matching.CanGenerateResume(profile),
		CanApply:           matching.CanApply(profile),
	}, nil
}

func (s *ProfileService) isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

func (s *ProfileService) amendError(err error, userID, what string) error {
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("profile not found for user %s", userID)
	}
	return fmt.Errorf("failed to add %s: %w", what, err)
}

func (s *ProfileService) publishUpdated(userID string, changedFields ...string) {
	profileEvent := event.NewProfileUpdatedEvent(userID, changedFields)
	if err := s.publisher.PublishCareerEvent(profileEvent); err != nil {
		log.Printf("Failed to publish profile updated event: %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"career-service/internal/event"
	"career-service/internal/matching"
	"career-service/internal/models"
)

var (
	// ErrMissingInstitutionID is a caller-correctable validation error.
	ErrMissingInstitutionID = errors.New("institution ID is required")

	// ErrCommitFailed means the atomic transition set was rejected and no
	// status changed. The run is safe to retry in full.
	ErrCommitFailed = errors.New("admissions commit failed")
)

// ApplicationStore is the slice of the application repository the
// admissions batch needs.
type ApplicationStore interface {
	FindPendingByInstitution(ctx context.Context, institutionID string) ([]models.Application, error)
	ApplyTransitions(ctx context.Context, transitions []models.StatusTransition) error
}

type AdmissionsService struct {
	applications       ApplicationStore
	publisher          event.Publisher
	defaultIntakeLimit int
}

func NewAdmissionsService(applications ApplicationStore, publisher event.Publisher, defaultIntakeLimit int) *AdmissionsService {
	return &AdmissionsService{
		applications:       applications,
		publisher:          publisher,
		defaultIntakeLimit: defaultIntakeLimit,
	}
}

// ProcessIntake ranks an institution's pending applications by stored score
// and commits the admitted/waiting split as one atomic unit. Intake limit 0
// pauses admissions: everything pending moves to waiting. A negative limit
// is treated the same way. No pending applications is a successful no-op,
// which also makes retries after a full commit idempotent: previously moved
// applications are no longer pending and are not touched again.
func (s *AdmissionsService) ProcessIntake(ctx context.Context, institutionID string, intakeLimit int) (*models.ProcessAdmissionsResponse, error) {
	if institutionID == "" {
		return nil, ErrMissingInstitutionID
	}

	pending, err := s.applications.FindPendingByInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending applications: %w", err)
	}

	if len(pending) == 0 {
		return &models.ProcessAdmissionsResponse{}, nil
	}

	partition := matching.PartitionIntake(pending, intakeLimit)

	if err := s.applications.ApplyTransitions(ctx, partition.Transitions()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	response := &models.ProcessAdmissionsResponse{
		Admitted: len(partition.Admitted),
		Waiting:  len(partition.Waiting),
	}

	admissionsEvent := event.NewAdmissionsCompletedEvent(institutionID, response.Admitted, response.Waiting)
	if err := s.publisher.PublishCareerEvent(admissionsEvent); err != nil {
		log.Printf("Failed to publish admissions completed event: %v", err)
	}

	return response, nil
}

// DefaultIntakeLimit is the capacity used when a request omits the limit.
func (s *AdmissionsService) DefaultIntakeLimit() int {
	return s.defaultIntakeLimit
}

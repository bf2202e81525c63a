package service

import (
	"context"
	"fmt"
	"log"

	"career-service/internal/cache"
	"career-service/internal/matching"
	"career-service/internal/models"
	"career-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MatchingService struct {
	jobRepo     *repository.JobRepository
	profileRepo *repository.ProfileRepository
	matchCache  *cache.MatchCache
}

func NewMatchingService(jobRepo *repository.JobRepository, profileRepo *repository.ProfileRepository, matchCache *cache.MatchCache) *MatchingService {
	return &MatchingService{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		matchCache:  matchCache,
	}
}

// FindQualifiedCandidates ranks the whole student population against one
// job posting. Rankings are recomputed from source profiles; the cache only
// short-circuits repeated lookups within its TTL.
func (s *MatchingService) FindQualifiedCandidates(ctx context.Context, jobID string) ([]models.MatchResult, error) {
	if jobID == "" {
		return nil, fmt.Errorf("job ID is required")
	}

	if s.matchCache != nil {
		if results, ok := s.matchCache.Get(ctx, jobID); ok {
			return results, nil
		}
	}

	objectID, err := bson.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, fmt.Errorf("invalid job ID format: %w", err)
	}

	job, err := s.jobRepo.FindByID(ctx, objectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	candidates, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profiles: %w", err)
	}

	results := matching.Rank(job, candidates, matching.DefaultThreshold)

	if s.matchCache != nil {
		if err := s.matchCache.Set(ctx, jobID, results); err != nil {
			log.Printf("Failed to cache match results for job %s: %v", jobID, err)
		}
	}

	return results, nil
}

// CreateJob stores a new company job posting.
func (s *MatchingService) CreateJob(ctx context.Context, companyID, companyName string, req *models.CreateJobRequest) (*models.JobPosting, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company ID is required")
	}
	if req.Title == "" {
		return nil, fmt.Errorf("job title is required")
	}

	job := &models.JobPosting{
		CompanyID:      companyID,
		CompanyName:    companyName,
		Title:          req.Title,
		Requirements:   req.Requirements,
		Qualifications: req.Qualifications,
	}

	created, err := s.jobRepo.New(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return created, nil
}

func (s *MatchingService) ListJobs(ctx context.Context) ([]*models.JobPosting, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *MatchingService) ListCompanyJobs(ctx context.Context, companyID string) ([]*models.JobPosting, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company ID is required")
	}

	jobs, err := s.jobRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	return jobs, nil
}

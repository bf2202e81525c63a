package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"career-service/internal/middleware"
	"career-service/internal/models"
	"career-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	matchingService *service.MatchingService
}

func NewJobHandler(matchingService *service.MatchingService) *JobHandler {
	return &JobHandler{
		matchingService: matchingService,
	}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	// Browsing postings is public
	publicGroup := app.Group("/public/jobs")
	publicGroup.Get("/", h.ListJobs)

	companyOnly := middleware.RoleRequired(models.RoleCompany)
	protectedGroup := app.Group("/protected/jobs")
	protectedGroup.Post("/", h.CreateJob, companyOnly, middleware.PermissionRequired(middleware.ManageJobsPermission))
	protectedGroup.Get("/mine", h.ListMyJobs, companyOnly)
	protectedGroup.Get("/:id/candidates", h.FindQualifiedCandidates, companyOnly)
}

func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, err := h.matchingService.ListJobs(ctx)
	if err != nil {
		log.Printf("Failed to list jobs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"jobs": jobs,
		},
	})
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	companyID := c.Get(middleware.UserIDHeader)

	var req models.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	job, err := h.matchingService.CreateJob(ctx, companyID, c.Get("X-User-Name"), &req)
	if err != nil {
		log.Printf("Failed to create job for company %s: %v", companyID, err)

		if strings.Contains(err.Error(), "required") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"job": job,
		},
	})
}

func (h *JobHandler) ListMyJobs(c fiber.Ctx) error {
	companyID := c.Get(middleware.UserIDHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs, err := h.matchingService.ListCompanyJobs(ctx, companyID)
	if err != nil {
		log.Printf("Failed to list jobs for company %s: %v", companyID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"jobs": jobs,
		},
	})
}

// FindQualifiedCandidates ranks every student profile against the job and
// returns the candidates at or above the match threshold, best first.
func (h *JobHandler) FindQualifiedCandidates(c fiber.Ctx) error {
	jobID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := h.matchingService.FindQualifiedCandidates(ctx, jobID)
	if err != nil {
		log.Printf("Failed to find candidates for job %s: %v", jobID, err)

		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		if strings.Contains(err.Error(), "invalid") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job ID format",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find qualified candidates",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"candidates": results,
			"count":      len(results),
		},
	})
}

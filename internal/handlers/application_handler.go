package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"career-service/internal/middleware"
	"career-service/internal/models"
	"career-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	studentOnly := middleware.RoleRequired(models.RoleStudent)

	protectedGroup := app.Group("/protected/applications")
	protectedGroup.Post("/courses", h.ApplyForCourse, studentOnly)
	protectedGroup.Post("/jobs/:jobId", h.ApplyForJob, studentOnly)
	protectedGroup.Get("/me", h.ListMyApplications, studentOnly)
	protectedGroup.Get("/me/jobs", h.ListMyJobApplications, studentOnly)
}

func (h *ApplicationHandler) ApplyForCourse(c fiber.Ctx) error {
	studentID := c.Get(middleware.UserIDHeader)

	var req models.ApplyForCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application, err := h.applicationService.ApplyForCourse(ctx, studentID, &req)
	if err != nil {
		return h.applicationErrorResponse(c, studentID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"application": application,
		},
	})
}

func (h *ApplicationHandler) ApplyForJob(c fiber.Ctx) error {
	studentID := c.Get(middleware.UserIDHeader)
	jobID := c.Params("jobId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application, err := h.applicationService.ApplyForJob(ctx, studentID, jobID)
	if err != nil {
		return h.applicationErrorResponse(c, studentID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"application": application,
		},
	})
}

func (h *ApplicationHandler) ListMyApplications(c fiber.Ctx) error {
	studentID := c.Get(middleware.UserIDHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applications, err := h.applicationService.ListStudentApplications(ctx, studentID)
	if err != nil {
		log.Printf("Failed to list applications for student %s: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"applications": applications,
		},
	})
}

func (h *ApplicationHandler) ListMyJobApplications(c fiber.Ctx) error {
	studentID := c.Get(middleware.UserIDHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applications, err := h.applicationService.ListStudentJobApplications(ctx, studentID)
	if err != nil {
		log.Printf("Failed to list job applications for student %s: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list job applications",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"applications": applications,
		},
	})
}

func (h *ApplicationHandler) applicationErrorResponse(c fiber.Ctx, studentID string, err error) error {
	log.Printf("Application submission failed for student %s: %v", studentID, err)

	if errors.Is(err, service.ErrProfileIncomplete) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Add at least one academic record before applying",
		})
	}
	if errors.Is(err, service.ErrDuplicateApplication) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already applied",
		})
	}
	if strings.Contains(err.Error(), "required") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "no documents") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found for this user",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to submit application",
	})
}

package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"career-service/internal/middleware"
	"career-service/internal/models"
	"career-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type AdmissionsHandler struct {
	admissionsService  *service.AdmissionsService
	applicationService *service.ApplicationService
}

func NewAdmissionsHandler(admissionsService *service.AdmissionsService, applicationService *service.ApplicationService) *AdmissionsHandler {
	return &AdmissionsHandler{
		admissionsService:  admissionsService,
		applicationService: applicationService,
	}
}

func (h *AdmissionsHandler) RegisterRoutes(app *fiber.App) {
	// Admissions processing is restricted to admins and institute staff.
	privileged := middleware.RoleRequired(models.RoleAdmin, models.RoleInstitute)

	protectedGroup := app.Group("/protected/admissions")
	protectedGroup.Post("/process", h.ProcessAdmissions, privileged)
	protectedGroup.Get("/applications", h.ListInstitutionApplications, privileged)
	protectedGroup.Post("/sync-names/:studentId", h.SyncApplicationNames, middleware.RoleRequired(models.RoleAdmin), middleware.PermissionRequired(middleware.AdminPermission))
}

// ProcessAdmissions runs the intake batch for one institution. The request
// may omit intakeLimit, in which case the configured default applies. An
// explicit zero pauses intake and moves everything pending to waiting.
func (h *AdmissionsHandler) ProcessAdmissions(c fiber.Ctx) error {
	var req models.ProcessAdmissionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	intakeLimit := h.admissionsService.DefaultIntakeLimit()
	if req.IntakeLimit != nil {
		intakeLimit = *req.IntakeLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := h.admissionsService.ProcessIntake(ctx, req.InstitutionID, intakeLimit)
	if err != nil {
		log.Printf("Admissions processing failed for institution %s: %v", req.InstitutionID, err)

		if errors.Is(err, service.ErrMissingInstitutionID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "institutionId required",
			})
		}
		if errors.Is(err, service.ErrCommitFailed) {
			// Nothing was applied; the caller may retry the full run.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     "Admissions commit failed, please retry",
				"retryable": true,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process admissions",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": response,
	})
}

func (h *AdmissionsHandler) ListInstitutionApplications(c fiber.Ctx) error {
	institutionID := c.Query("institutionId")
	if institutionID == "" {
		institutionID = c.Get(middleware.UserIDHeader)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	applications, err := h.applicationService.ListInstitutionApplications(ctx, institutionID)
	if err != nil {
		log.Printf("Failed to list applications for institution %s: %v", institutionID, err)
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

// SyncApplicationNames runs the idempotent display-name reconciliation
// pass for one student's applications.
func (h *AdmissionsHandler) SyncApplicationNames(c fiber.Ctx) error {
	studentID := c.Params("studentId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updated, err := h.applicationService.SyncApplicationNames(ctx, studentID)
	if err != nil {
		log.Printf("Name reconciliation failed for student %s: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reconcile application names",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"updated": updated,
		},
	})
}

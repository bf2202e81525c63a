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

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	protectedGroup := app.Group("/protected/profiles")

	// Self-service endpoints - students manage their own profiles
	studentOnly := middleware.RoleRequired(models.RoleStudent)
	canRead := middleware.PermissionRequired(middleware.ReadProfilePermission)
	canUpdate := middleware.PermissionRequired(middleware.UpdateProfilePermission)
	protectedGroup.Get("/me", h.GetMe, studentOnly, canRead)
	protectedGroup.Get("/me/completion", h.GetMyCompletion, studentOnly, canRead)
	protectedGroup.Post("/me/academic-records", h.AddAcademicRecord, studentOnly, canUpdate)
	protectedGroup.Post("/me/certificates", h.AddCertificate, studentOnly, canUpdate)
	protectedGroup.Post("/me/experience", h.AddWorkExperience, studentOnly, canUpdate)
	protectedGroup.Post("/me/skills", h.AddSkill, studentOnly, canUpdate)
	protectedGroup.Delete("/me/skills/:skill", h.RemoveSkill, studentOnly, canUpdate)

	// Admin provisioning fallback when the registration event was missed
	protectedGroup.Post("/", h.CreateProfile, middleware.RoleRequired(models.RoleAdmin))
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetProfileByUserID(ctx, userID)
	if err != nil {
		log.Printf("Failed to get profile for user %s: %v", userID, err)

		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found for this user",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) GetMyCompletion(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	completion, err := h.profileService.GetCompletion(ctx, userID)
	if err != nil {
		log.Printf("Failed to get completion for user %s: %v", userID, err)

		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found for this user",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute profile completion",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": completion,
	})
}

func (h *ProfileHandler) AddAcademicRecord(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	var req models.AddAcademicRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.profileService.AddAcademicRecord(ctx, userID, req.Record); err != nil {
		return h.amendErrorResponse(c, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Academic record added",
	})
}

func (h *ProfileHandler) AddCertificate(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	var req models.AddCertificateRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.profileService.AddCertificate(ctx, userID, req.Certificate); err != nil {
		return h.amendErrorResponse(c, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Certificate added",
	})
}

func (h *ProfileHandler) AddWorkExperience(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	var req models.AddWorkExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.profileService.AddWorkExperience(ctx, userID, req.Experience); err != nil {
		return h.amendErrorResponse(c, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Work experience added",
	})
}

func (h *ProfileHandler) AddSkill(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)

	var req models.AddSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.profileService.AddSkill(ctx, userID, req.Skill); err != nil {
		if strings.Contains(err.Error(), "already present") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Skill already present",
			})
		}
		return h.amendErrorResponse(c, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Skill added",
	})
}

func (h *ProfileHandler) RemoveSkill(c fiber.Ctx) error {
	userID := c.Get(middleware.UserIDHeader)
	skill := c.Params("skill")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.profileService.RemoveSkill(ctx, userID, skill); err != nil {
		return h.amendErrorResponse(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Skill removed",
	})
}

func (h *ProfileHandler) CreateProfile(c fiber.Ctx) error {
	var req models.CreateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.CreateProfile(ctx, &req)
	if err != nil {
		log.Printf("Failed to create profile: %v", err)

		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Profile already exists",
			})
		}
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create profile",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) amendErrorResponse(c fiber.Ctx, userID string, err error) error {
	log.Printf("Profile amendment failed for user %s: %v", userID, err)

	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found for this user",
		})
	}
	if strings.Contains(err.Error(), "required") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to update profile",
	})
}

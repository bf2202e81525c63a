package middleware

import (
	"log"
	"strings"

	"career-service/internal/models"

	"github.com/gofiber/fiber/v3"
)

const (
	// Identity headers set by the gateway after authentication.
	UserIDHeader          = "X-User-ID"
	UserRoleHeader        = "X-User-Role"
	UserPermissionsHeader = "X-User-Permissions"
)

const (
	ReadProfilePermission   = "read:profile"
	UpdateProfilePermission = "update:profile"
	ManageJobsPermission    = "manage:jobs"
	AdminPermission         = "admin"
)

// RoleRequired rejects requests whose authenticated role is not in the
// allowed set. Authorization fails closed: no identity headers means no
// access, before any data is read.
func RoleRequired(allowed ...models.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get(UserIDHeader) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthenticated",
			})
		}

		role := models.Role(c.Get(UserRoleHeader))
		for _, candidate := range allowed {
			if role == candidate || role == models.RoleAdmin {
				return c.Next()
			}
		}

		log.Printf("Role %q denied for %s %s from %s", role, c.Method(), c.OriginalURL(), c.IP())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not permitted",
		})
	}
}

// PermissionRequired checks the comma-separated permission list forwarded
// by the gateway. Admin and manager prefixes short-circuit.
func PermissionRequired(requiredPermission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		userPermissions := c.Get(UserPermissionsHeader)
		hasPermission := false
		if userPermissions != "" {
			permissions := strings.Split(userPermissions, ",")
			for _, perm := range permissions {
				if perm == requiredPermission || strings.HasPrefix(perm, "admin") || strings.HasPrefix(perm, "manager") {
					hasPermission = true
					break
				}
			}
		}

		if !hasPermission {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

package auth

import (
	"errors"
	"slices"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const adminLocalsKey = "admin"

// Middleware validates the bearer token and attaches the admin to the request.
// When finder is nil the identity is taken from the token claims alone.
func Middleware(secret []byte, finder AdminFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ValidateToken(secret, c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				return apierror.Write(c, fiber.StatusUnauthorized, "No token provided")
			}
			logger.Named("auth").Debug("Rejected token", zap.Error(err))
			return apierror.Write(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		admin := &Admin{ID: claims.AdminID, Role: claims.Role, IsActive: true}
		if finder != nil {
			admin, err = finder.FindAdmin(c.UserContext(), claims.AdminID)
			switch {
			case errors.Is(err, ErrAdminNotFound):
				return apierror.Write(c, fiber.StatusForbidden, "Not authorized as admin")
			case errors.Is(err, ErrAdminInactive):
				return apierror.Write(c, fiber.StatusForbidden, "Admin account is inactive")
			case err != nil:
				logger.Named("auth").Error("Admin lookup failed", zap.Error(err))
				return apierror.Write(c, fiber.StatusInternalServerError, "Internal server error")
			}
		}

		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

// RequireRole rejects requests whose admin role is not in roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin := AdminFrom(c)
		if admin == nil || !slices.Contains(roles, admin.Role) {
			return apierror.Write(c, fiber.StatusForbidden, "Access denied: insufficient privileges")
		}
		return c.Next()
	}
}

// AdminFrom returns the authenticated admin, or nil outside the guard.
func AdminFrom(c *fiber.Ctx) *Admin {
	admin, _ := c.Locals(adminLocalsKey).(*Admin)
	return admin
}

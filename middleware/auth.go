package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/config"
	"lms-admin/models"
	"lms-admin/utils"
)

// Key under which the authenticated user is stored in the request context.
const CurrentUserKey = "currentUser"

// RequireAuth verifies the JWT from the Authorization header and loads the
// matching user into the request context. Inactive accounts are rejected.
func RequireAuth(db *gorm.DB, cfg *config.Config) fiber.Handler {
	users := models.NewUserStore(db)

	return func(c *fiber.Ctx) error {
		userID, err := utils.ParseJWTToken(c.Get("Authorization"), cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid or missing token")
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return utils.Unauthorized(c, "Invalid or missing token")
		}
		if user.Status != models.StatusActive {
			return utils.Forbidden(c, "Account is inactive")
		}

		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user RequireAuth stored, or nil when the route is
// not behind authentication.
func CurrentUser(c *fiber.Ctx) *models.UserRow {
	user, _ := c.Locals(CurrentUserKey).(*models.UserRow)
	return user
}

// RequirePermission consults the permission matrix for the caller's role
// before the handler runs. This mirrors the client-side gate on the server:
// a direct API call cannot bypass the matrix.
func RequirePermission(db *gorm.DB, featurePath, action string) fiber.Handler {
	permissions := models.NewPermissionStore(db)

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized(c, "Authentication required")
		}
		if user.RoleID == nil {
			return utils.Forbidden(c, "No role assigned")
		}

		allowed, err := permissions.Check(*user.RoleID, featurePath, action)
		if err != nil {
			return utils.ServerError(c, "Error checking permissions", err)
		}
		if !allowed {
			return utils.Forbidden(c, "You do not have permission to perform this action")
		}
		return c.Next()
	}
}

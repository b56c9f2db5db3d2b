package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/config"
	"lms-admin/middleware"
	"lms-admin/models"
	"lms-admin/utils"
)

const minPasswordLength = 6

type AuthController struct {
	Users       *models.UserStore
	Roles       *models.RoleStore
	Permissions *models.PermissionStore
	Cfg         *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{
		Users:       models.NewUserStore(db),
		Roles:       models.NewRoleStore(db),
		Permissions: models.NewPermissionStore(db),
		Cfg:         cfg,
	}
}

type registerInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Thumbnail string `json:"thumbnail"`
}

// Register creates an account under the single role flagged for
// self-registration. Zero or multiple qualifying roles both refuse the
// request, so role selection is never arbitrary.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Name, email, and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return utils.BadRequest(c, "Password must be at least 6 characters long")
	}

	if _, err := ac.Users.FindByEmail(input.Email); err == nil {
		return utils.BadRequest(c, "Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Error registering user", err)
	}

	openRoles, err := ac.Roles.FindSelfRegisterRoles()
	if err != nil {
		return utils.ServerError(c, "Error registering user", err)
	}
	if len(openRoles) == 0 {
		return utils.Forbidden(c, "Self-registration is currently disabled. Please contact administrator.")
	}
	if len(openRoles) > 1 {
		return utils.Forbidden(c, "Self-registration is misconfigured: more than one role allows it. Please contact administrator.")
	}

	user, err := ac.Users.Create(models.UserCreate{
		Name:      input.Name,
		Email:     input.Email,
		RoleID:    &openRoles[0].ID,
		Status:    models.StatusActive,
		Password:  input.Password,
		Thumbnail: input.Thumbnail,
	})
	if err != nil {
		return utils.ServerError(c, "Error registering user", err)
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.ServerError(c, "Error registering user", err)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	user, err := ac.Users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.ServerError(c, "Error logging in", err)
	}

	if !user.VerifyPassword(input.Password) {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.ServerError(c, "Error logging in", err)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user's own row.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, middleware.CurrentUser(c))
}

// MyPermissions returns the permission rows for the caller's role. The SPA
// permission hook fetches this once per session to gate its action buttons;
// the same matrix is enforced server-side by RequirePermission.
func (ac *AuthController) MyPermissions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user.RoleID == nil {
		return utils.Success(c, fiber.StatusOK, []models.PermissionRow{})
	}

	permissions, err := ac.Permissions.FindByRoleID(*user.RoleID)
	if err != nil {
		return utils.ServerError(c, "Error fetching permissions", err)
	}
	return utils.Success(c, fiber.StatusOK, permissions)
}

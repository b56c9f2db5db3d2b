package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/models"
	"lms-admin/utils"
)

type UserController struct {
	Users *models.UserStore
	Roles *models.RoleStore
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		Users: models.NewUserStore(db),
		Roles: models.NewRoleStore(db),
	}
}

func (uc *UserController) List(c *fiber.Ctx) error {
	filter := models.UserFilter{
		Search: c.Query("search"),
		RoleID: uint(c.QueryInt("role_id")),
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	users, err := uc.Users.FindAll(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching users", err)
	}
	total, err := uc.Users.Count(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching users", err)
	}

	return utils.List(c, users, total, filter.Limit, filter.Offset)
}

func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	user, err := uc.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.ServerError(c, "Error fetching user", err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}

type userInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	RoleID    *uint   `json:"role_id"`
	Status    *string `json:"status"`
	Password  *string `json:"password"`
	Thumbnail *string `json:"thumbnail"`
}

func (uc *UserController) validateRole(c *fiber.Ctx, roleID *uint) error {
	if roleID == nil {
		return nil
	}
	if _, err := uc.Roles.FindByID(*roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error resolving role", err)
	}
	return nil
}

func (uc *UserController) Create(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == nil || *input.Name == "" || input.Email == nil || *input.Email == "" {
		return utils.BadRequest(c, "Name and email are required")
	}
	if input.Status != nil && *input.Status != models.StatusActive && *input.Status != models.StatusInactive {
		return utils.BadRequest(c, "Valid status is required (Active, Inactive)")
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		return utils.BadRequest(c, "Password must be at least 6 characters long")
	}

	if _, err := uc.Users.FindByEmail(*input.Email); err == nil {
		return utils.BadRequest(c, "Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Error creating user", err)
	}

	if err := uc.validateRole(c, input.RoleID); err != nil {
		return err
	}

	create := models.UserCreate{
		Name:   *input.Name,
		Email:  *input.Email,
		RoleID: input.RoleID,
	}
	if input.Status != nil {
		create.Status = *input.Status
	}
	if input.Password != nil {
		create.Password = *input.Password
	}
	if input.Thumbnail != nil {
		create.Thumbnail = *input.Thumbnail
	}

	user, err := uc.Users.Create(create)
	if err != nil {
		return utils.ServerError(c, "Error creating user", err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "User created successfully", user)
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	existing, err := uc.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.ServerError(c, "Error updating user", err)
	}

	if input.Status != nil && *input.Status != models.StatusActive && *input.Status != models.StatusInactive {
		return utils.BadRequest(c, "Valid status is required (Active, Inactive)")
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		return utils.BadRequest(c, "Password must be at least 6 characters long")
	}

	if input.Email != nil && *input.Email != existing.Email {
		if _, err := uc.Users.FindByEmail(*input.Email); err == nil {
			return utils.BadRequest(c, "Email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ServerError(c, "Error updating user", err)
		}
	}

	if err := uc.validateRole(c, input.RoleID); err != nil {
		return err
	}

	user, err := uc.Users.Update(id, models.UserUpdate{
		Name:      input.Name,
		Email:     input.Email,
		RoleID:    input.RoleID,
		Status:    input.Status,
		Password:  input.Password,
		Thumbnail: input.Thumbnail,
	})
	if err != nil {
		return utils.ServerError(c, "Error updating user", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "User updated successfully", user)
}

func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := uc.Users.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.ServerError(c, "Error deleting user", err)
	}
	return utils.Message(c, "User deleted successfully")
}

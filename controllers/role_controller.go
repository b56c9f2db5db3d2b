package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/models"
	"lms-admin/utils"
)

type RoleController struct {
	Roles *models.RoleStore
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{Roles: models.NewRoleStore(db)}
}

func (rc *RoleController) List(c *fiber.Ctx) error {
	filter := models.RoleFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	roles, err := rc.Roles.FindAll(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching roles", err)
	}
	total, err := rc.Roles.Count(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching roles", err)
	}

	return utils.List(c, roles, total, filter.Limit, filter.Offset)
}

func (rc *RoleController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	role, err := rc.Roles.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error fetching role", err)
	}
	return utils.Success(c, fiber.StatusOK, role)
}

type roleInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	CanSelfRegister *bool   `json:"can_self_register"`
	HomePage        *string `json:"home_page"`
}

func (rc *RoleController) Create(c *fiber.Ctx) error {
	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == nil || *input.Name == "" {
		return utils.BadRequest(c, "Role name is required")
	}

	if _, err := rc.Roles.FindByName(*input.Name); err == nil {
		return utils.BadRequest(c, "Role name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Error creating role", err)
	}

	role := models.Role{Name: *input.Name}
	if input.Description != nil {
		role.Description = *input.Description
	}
	if input.CanSelfRegister != nil {
		role.CanSelfRegister = *input.CanSelfRegister
	}
	if input.HomePage != nil {
		role.HomePage = *input.HomePage
	}

	if err := rc.Roles.Create(&role); err != nil {
		return utils.ServerError(c, "Error creating role", err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Role created successfully", role)
}

func (rc *RoleController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var input roleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	existing, err := rc.Roles.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error updating role", err)
	}

	if input.Name != nil && *input.Name != existing.Name {
		if _, err := rc.Roles.FindByName(*input.Name); err == nil {
			return utils.BadRequest(c, "Role name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ServerError(c, "Error updating role", err)
		}
	}

	role, err := rc.Roles.Update(id, models.RoleUpdate{
		Name:            input.Name,
		Description:     input.Description,
		CanSelfRegister: input.CanSelfRegister,
		HomePage:        input.HomePage,
	})
	if err != nil {
		return utils.ServerError(c, "Error updating role", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Role updated successfully", role)
}

func (rc *RoleController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	if _, err := rc.Roles.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error deleting role", err)
	}

	userCount, err := rc.Roles.UserCount(id)
	if err != nil {
		return utils.ServerError(c, "Error deleting role", err)
	}
	if userCount > 0 {
		return utils.BadRequest(c, fmt.Sprintf(
			"Cannot delete role. It is assigned to %d user(s). Please reassign users first.", userCount))
	}

	if err := rc.Roles.Delete(id); err != nil {
		return utils.ServerError(c, "Error deleting role", err)
	}
	return utils.Message(c, "Role deleted successfully")
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

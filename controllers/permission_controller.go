package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/models"
	"lms-admin/utils"
)

type PermissionController struct {
	Permissions *models.PermissionStore
	Features    *models.FeatureStore
	Roles       *models.RoleStore
}

func NewPermissionController(db *gorm.DB) *PermissionController {
	return &PermissionController{
		Permissions: models.NewPermissionStore(db),
		Features:    models.NewFeatureStore(db),
		Roles:       models.NewRoleStore(db),
	}
}

// List returns all permission rows, or only those of a role or feature when
// the matching query parameter is given.
func (pc *PermissionController) List(c *fiber.Ctx) error {
	var (
		permissions []models.PermissionRow
		err         error
	)

	switch {
	case c.QueryInt("role_id") > 0:
		permissions, err = pc.Permissions.FindByRoleID(uint(c.QueryInt("role_id")))
	case c.QueryInt("feature_id") > 0:
		permissions, err = pc.Permissions.FindByFeatureID(uint(c.QueryInt("feature_id")))
	default:
		permissions, err = pc.Permissions.FindAll()
	}
	if err != nil {
		return utils.ServerError(c, "Error fetching permissions", err)
	}

	return utils.Success(c, fiber.StatusOK, permissions)
}

func (pc *PermissionController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid permission ID")
	}

	permission, err := pc.Permissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Permission not found")
		}
		return utils.ServerError(c, "Error fetching permission", err)
	}
	return utils.Success(c, fiber.StatusOK, permission)
}

type permissionInput struct {
	FeatureID     uint  `json:"feature_id"`
	RoleID        uint  `json:"role_id"`
	CanView       *bool `json:"can_view"`
	CanViewDetail *bool `json:"can_view_detail"`
	CanAdd        *bool `json:"can_add"`
	CanEdit       *bool `json:"can_edit"`
	CanDelete     *bool `json:"can_delete"`
}

func boolVal(b *bool) bool {
	return b != nil && *b
}

func (pc *PermissionController) Create(c *fiber.Ctx) error {
	var input permissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.FeatureID == 0 || input.RoleID == 0 {
		return utils.BadRequest(c, "Feature ID and Role ID are required")
	}

	if _, err := pc.Features.FindByID(input.FeatureID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feature not found")
		}
		return utils.ServerError(c, "Error creating permission", err)
	}
	if _, err := pc.Roles.FindByID(input.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error creating permission", err)
	}

	if _, err := pc.Permissions.FindByFeatureAndRole(input.FeatureID, input.RoleID); err == nil {
		return utils.BadRequest(c, "Permission already exists for this feature and role")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Error creating permission", err)
	}

	permission, err := pc.Permissions.Create(models.PermissionCreate{
		FeatureID:     input.FeatureID,
		RoleID:        input.RoleID,
		CanView:       boolVal(input.CanView),
		CanViewDetail: boolVal(input.CanViewDetail),
		CanAdd:        boolVal(input.CanAdd),
		CanEdit:       boolVal(input.CanEdit),
		CanDelete:     boolVal(input.CanDelete),
	})
	if err != nil {
		return utils.ServerError(c, "Error creating permission", err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Permission created successfully", permission)
}

func (pc *PermissionController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid permission ID")
	}

	var input permissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	permission, err := pc.Permissions.Update(id, models.PermissionUpdate{
		CanView:       input.CanView,
		CanViewDetail: input.CanViewDetail,
		CanAdd:        input.CanAdd,
		CanEdit:       input.CanEdit,
		CanDelete:     input.CanDelete,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Permission not found")
		}
		return utils.ServerError(c, "Error updating permission", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Permission updated successfully", permission)
}

// UpdateByPair updates the row for a (feature, role) pair. A missing pair is
// a 404; the endpoint never creates a row.
func (pc *PermissionController) UpdateByPair(c *fiber.Ctx) error {
	featureID, roleID, err := parsePairParams(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid feature or role ID")
	}

	var input permissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if _, err := pc.Features.FindByID(featureID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feature not found")
		}
		return utils.ServerError(c, "Error updating permission", err)
	}
	if _, err := pc.Roles.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.ServerError(c, "Error updating permission", err)
	}

	permission, err := pc.Permissions.UpdateByFeatureAndRole(featureID, roleID, models.PermissionUpdate{
		CanView:       input.CanView,
		CanViewDetail: input.CanViewDetail,
		CanAdd:        input.CanAdd,
		CanEdit:       input.CanEdit,
		CanDelete:     input.CanDelete,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Permission not found")
		}
		return utils.ServerError(c, "Error updating permission", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Permission updated successfully", permission)
}

func (pc *PermissionController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid permission ID")
	}

	if err := pc.Permissions.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Permission not found")
		}
		return utils.ServerError(c, "Error deleting permission", err)
	}
	return utils.Message(c, "Permission deleted successfully")
}

func (pc *PermissionController) DeleteByPair(c *fiber.Ctx) error {
	featureID, roleID, err := parsePairParams(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid feature or role ID")
	}

	if err := pc.Permissions.DeleteByFeatureAndRole(featureID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Permission not found")
		}
		return utils.ServerError(c, "Error deleting permission", err)
	}
	return utils.Message(c, "Permission deleted successfully")
}

func parsePairParams(c *fiber.Ctx) (featureID, roleID uint, err error) {
	f, err := strconv.ParseUint(c.Params("featureId"), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	r, err := strconv.ParseUint(c.Params("roleId"), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint(f), uint(r), nil
}

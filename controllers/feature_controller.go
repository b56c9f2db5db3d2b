package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/models"
	"lms-admin/utils"
)

type FeatureController struct {
	Features *models.FeatureStore
}

func NewFeatureController(db *gorm.DB) *FeatureController {
	return &FeatureController{Features: models.NewFeatureStore(db)}
}

func (fc *FeatureController) List(c *fiber.Ctx) error {
	filter := models.FeatureFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	features, err := fc.Features.FindAll(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching features", err)
	}
	total, err := fc.Features.Count(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching features", err)
	}

	return utils.List(c, features, total, filter.Limit, filter.Offset)
}

func (fc *FeatureController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid feature ID")
	}

	feature, err := fc.Features.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feature not found")
		}
		return utils.ServerError(c, "Error fetching feature", err)
	}
	return utils.Success(c, fiber.StatusOK, feature)
}

type featureInput struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Path        *string `json:"path"`
	Description *string `json:"description"`
}

func (fc *FeatureController) Create(c *fiber.Ctx) error {
	var input featureInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == nil || *input.Name == "" {
		return utils.BadRequest(c, "Feature name is required")
	}

	if _, err := fc.Features.FindByName(*input.Name); err == nil {
		return utils.BadRequest(c, "Feature name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, "Error creating feature", err)
	}

	feature := models.Feature{Name: *input.Name}
	if input.Icon != nil {
		feature.Icon = *input.Icon
	}
	if input.Path != nil {
		feature.Path = *input.Path
	}
	if input.Description != nil {
		feature.Description = *input.Description
	}

	if err := fc.Features.Create(&feature); err != nil {
		return utils.ServerError(c, "Error creating feature", err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Feature created successfully", feature)
}

func (fc *FeatureController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid feature ID")
	}

	var input featureInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	existing, err := fc.Features.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feature not found")
		}
		return utils.ServerError(c, "Error updating feature", err)
	}

	if input.Name != nil && *input.Name != existing.Name {
		if _, err := fc.Features.FindByName(*input.Name); err == nil {
			return utils.BadRequest(c, "Feature name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ServerError(c, "Error updating feature", err)
		}
	}

	feature, err := fc.Features.Update(id, models.FeatureUpdate{
		Name:        input.Name,
		Icon:        input.Icon,
		Path:        input.Path,
		Description: input.Description,
	})
	if err != nil {
		return utils.ServerError(c, "Error updating feature", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Feature updated successfully", feature)
}

// Delete removes the feature and, through the cascade constraint, every
// permission row granted against it.
func (fc *FeatureController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid feature ID")
	}

	if err := fc.Features.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feature not found")
		}
		return utils.ServerError(c, "Error deleting feature", err)
	}
	return utils.Message(c, "Feature deleted successfully")
}

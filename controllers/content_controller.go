package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms-admin/middleware"
	"lms-admin/models"
	"lms-admin/utils"
)

type ContentController struct {
	Contents *models.ContentStore
}

func NewContentController(db *gorm.DB) *ContentController {
	return &ContentController{Contents: models.NewContentStore(db)}
}

func (cc *ContentController) List(c *fiber.Ctx) error {
	filter := models.ContentFilter{
		Search:        c.Query("search"),
		ContentType:   c.Query("content_type"),
		ContentSource: c.Query("content_source"),
		Status:        c.Query("status"),
		Limit:         c.QueryInt("limit"),
		Offset:        c.QueryInt("offset"),
	}

	contents, err := cc.Contents.FindAll(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching contents", err)
	}
	total, err := cc.Contents.Count(filter)
	if err != nil {
		return utils.ServerError(c, "Error fetching contents", err)
	}

	return utils.List(c, contents, total, filter.Limit, filter.Offset)
}

func (cc *ContentController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	content, err := cc.Contents.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.ServerError(c, "Error fetching content", err)
	}
	return utils.Success(c, fiber.StatusOK, content)
}

type contentInput struct {
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	ContentType   *string        `json:"content_type"`
	ContentSource *string        `json:"content_source"`
	ContentURL    *string        `json:"content_url"`
	ThumbnailURL  *string        `json:"thumbnail_url"`
	Status        *string        `json:"status"`
	Metadata      datatypes.JSON `json:"metadata"`
}

func oneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if value == v {
			return true
		}
	}
	return false
}

func (cc *ContentController) Create(c *fiber.Ctx) error {
	var input contentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title == nil || *input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.ContentType == nil || !oneOf(*input.ContentType, models.ContentTypes) {
		return utils.BadRequest(c, "Valid content_type is required (video, file, markdown, image)")
	}
	if input.ContentSource == nil || !oneOf(*input.ContentSource, models.ContentSources) {
		return utils.BadRequest(c, "Valid content_source is required (internal, external)")
	}
	if input.ContentURL == nil || *input.ContentURL == "" {
		return utils.BadRequest(c, "Content URL is required")
	}
	if input.Status != nil && !oneOf(*input.Status, models.ContentStates) {
		return utils.BadRequest(c, "Valid status is required (active, inactive, draft)")
	}

	create := models.ContentCreate{
		Title:         *input.Title,
		ContentType:   *input.ContentType,
		ContentSource: *input.ContentSource,
		ContentURL:    *input.ContentURL,
		Metadata:      input.Metadata,
	}
	if input.Description != nil {
		create.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		create.ThumbnailURL = *input.ThumbnailURL
	}
	if input.Status != nil {
		create.Status = *input.Status
	}
	// The creator is always the authenticated caller, never a client-supplied id.
	if user := middleware.CurrentUser(c); user != nil {
		create.CreatedBy = &user.ID
	}

	content, err := cc.Contents.Create(create)
	if err != nil {
		return utils.ServerError(c, "Error creating content", err)
	}
	return utils.SuccessMessage(c, fiber.StatusCreated, "Content created successfully", content)
}

func (cc *ContentController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var input contentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if _, err := cc.Contents.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.ServerError(c, "Error updating content", err)
	}

	if input.ContentType != nil && !oneOf(*input.ContentType, models.ContentTypes) {
		return utils.BadRequest(c, "Valid content_type is required (video, file, markdown, image)")
	}
	if input.ContentSource != nil && !oneOf(*input.ContentSource, models.ContentSources) {
		return utils.BadRequest(c, "Valid content_source is required (internal, external)")
	}
	if input.Status != nil && !oneOf(*input.Status, models.ContentStates) {
		return utils.BadRequest(c, "Valid status is required (active, inactive, draft)")
	}

	content, err := cc.Contents.Update(id, models.ContentUpdate{
		Title:         input.Title,
		Description:   input.Description,
		ContentType:   input.ContentType,
		ContentSource: input.ContentSource,
		ContentURL:    input.ContentURL,
		ThumbnailURL:  input.ThumbnailURL,
		Status:        input.Status,
		Metadata:      input.Metadata,
	})
	if err != nil {
		return utils.ServerError(c, "Error updating content", err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Content updated successfully", content)
}

func (cc *ContentController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	if err := cc.Contents.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.ServerError(c, "Error deleting content", err)
	}
	return utils.Message(c, "Content deleted successfully")
}

package routes

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateContent(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Intro Lecture",
		"description":    "First lecture of the course",
		"content_type":   "video",
		"content_source": "external",
		"content_url":    "https://videos.example.com/intro.mp4",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataMap(result)
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "Super Admin", data["created_by_name"])
}

func TestCreateContentValidation(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"content_type":   "video",
		"content_source": "external",
		"content_url":    "https://example.com/x",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, result := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Bad Type",
		"content_type":   "podcast",
		"content_source": "external",
		"content_url":    "https://example.com/x",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result["message"], "content_type")

	resp, _ = doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Bad Status",
		"content_type":   "video",
		"content_source": "external",
		"content_url":    "https://example.com/x",
		"status":         "archived",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContentMetadataRoundTrip(t *testing.T) {
	metadata := map[string]interface{}{
		"duration_seconds": float64(420),
		"tags":             []interface{}{"intro", "week-1"},
	}

	resp, result := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Tagged Video",
		"content_type":   "video",
		"content_source": "internal",
		"content_url":    "/uploads/tagged.mp4",
		"metadata":       metadata,
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := dataID(result)

	resp, fetched := doRequest(t, "GET", fmt.Sprintf("/api/contents/%d", id), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, metadata, dataMap(fetched)["metadata"])
}

func TestContentUpdateNoopReturnsUnchangedRow(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Unchanging",
		"content_type":   "markdown",
		"content_source": "internal",
		"content_url":    "/docs/unchanging.md",
	}, adminToken)
	id := dataID(created)
	before := dataMap(created)

	resp, result := doRequest(t, "PUT", fmt.Sprintf("/api/contents/%d", id), map[string]interface{}{}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := dataMap(result)
	assert.Equal(t, before["title"], after["title"])
	assert.Equal(t, before["updated_at"], after["updated_at"])
}

func TestContentUpdateRefreshesTimestamp(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Changing",
		"content_type":   "markdown",
		"content_source": "internal",
		"content_url":    "/docs/changing.md",
	}, adminToken)
	id := dataID(created)

	resp, result := doRequest(t, "PUT", fmt.Sprintf("/api/contents/%d", id), map[string]interface{}{
		"status": "draft",
	}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataMap(result)
	assert.Equal(t, "draft", data["status"])
	assert.NotEqual(t, dataMap(created)["updated_at"], data["updated_at"])
}

func TestListContentsFiltered(t *testing.T) {
	doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Filterable Image",
		"content_type":   "image",
		"content_source": "external",
		"content_url":    "https://img.example.com/1.png",
		"status":         "draft",
	}, adminToken)

	resp, result := doRequest(t, "GET", "/api/contents?content_type=image&status=draft", nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows, _ := result["data"].([]interface{})
	assert.NotEmpty(t, rows)
	for _, raw := range rows {
		row, _ := raw.(map[string]interface{})
		assert.Equal(t, "image", row["content_type"])
		assert.Equal(t, "draft", row["status"])
	}
}

func TestDeleteContent(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/contents", map[string]interface{}{
		"title":          "Disposable",
		"content_type":   "file",
		"content_source": "internal",
		"content_url":    "/files/disposable.pdf",
	}, adminToken)
	id := dataID(created)

	resp, _ := doRequest(t, "DELETE", fmt.Sprintf("/api/contents/%d", id), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "GET", fmt.Sprintf("/api/contents/%d", id), nil, adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

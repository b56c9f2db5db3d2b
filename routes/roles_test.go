package routes

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateRole(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/roles", map[string]interface{}{
		"name":        "Moderator",
		"description": "Moderates discussions",
		"home_page":   "/moderator",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataMap(result)
	assert.Equal(t, "Moderator", data["name"])
	assert.Equal(t, false, data["can_self_register"])
}

func TestCreateRoleDuplicateName(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/roles", map[string]interface{}{
		"name": "Student",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result["message"], "already exists")
}

func TestCreateRoleRequiresName(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/roles", map[string]interface{}{
		"description": "nameless",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRolePartial(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/roles", map[string]interface{}{
		"name":        "Assistant",
		"description": "before",
	}, adminToken)
	id := dataID(created)

	resp, result := doRequest(t, "PUT", fmt.Sprintf("/api/roles/%d", id), map[string]interface{}{
		"description": "after",
	}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataMap(result)
	assert.Equal(t, "Assistant", data["name"])
	assert.Equal(t, "after", data["description"])
}

func TestDeleteRoleBlockedWhileReferenced(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/roles", map[string]interface{}{
		"name": "Grader",
	}, adminToken)
	roleID := dataID(created)

	_, userResult := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":    "Graded User",
		"email":   "grader-user@x.com",
		"role_id": roleID,
	}, adminToken)
	userID := dataID(userResult)

	resp, result := doRequest(t, "DELETE", fmt.Sprintf("/api/roles/%d", roleID), nil, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result["message"], "1 user(s)")

	// Once the user is gone the role can be removed.
	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/users/%d", userID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/roles/%d", roleID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetRoleNotFound(t *testing.T) {
	resp, _ := doRequest(t, "GET", "/api/roles/999999", nil, adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListRolesOrderedByName(t *testing.T) {
	resp, result := doRequest(t, "GET", "/api/roles", nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows, _ := result["data"].([]interface{})
	assert.NotEmpty(t, rows)

	var previous string
	for _, raw := range rows {
		row, _ := raw.(map[string]interface{})
		name, _ := row["name"].(string)
		assert.GreaterOrEqual(t, name, previous)
		previous = name
	}
}

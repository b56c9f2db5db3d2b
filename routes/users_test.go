package routes

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateUserDefaultsToStudentRole(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "Defaulted",
		"email": "defaulted@x.com",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Student", dataMap(result)["role_name"])
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "First",
		"email": "taken@x.com",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, result := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "Second",
		"email": "taken@x.com",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result["message"], "already exists")
}

func TestUserResponseOmitsPassword(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":     "Secret Keeper",
		"email":    "secret@x.com",
		"password": "password123",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotContains(t, dataMap(result), "password")

	id := dataID(result)
	_, fetched := doRequest(t, "GET", fmt.Sprintf("/api/users/%d", id), nil, adminToken)
	assert.NotContains(t, dataMap(fetched), "password")
}

func TestCreateUserUnknownRole(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":    "Orphan",
		"email":   "orphan@x.com",
		"role_id": 999999,
	}, adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateUserInvalidStatus(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":   "Weird Status",
		"email":  "weird@x.com",
		"status": "Frozen",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListUsersSearch(t *testing.T) {
	doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "Xylophone Expert",
		"email": "xylo@x.com",
	}, adminToken)

	resp, result := doRequest(t, "GET", "/api/users?search=xylophone", nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	total, _ := result["total"].(float64)
	assert.Equal(t, float64(1), total)

	rows, _ := result["data"].([]interface{})
	assert.Len(t, rows, 1)
	row, _ := rows[0].(map[string]interface{})
	assert.Equal(t, "xylo@x.com", row["email"])
}

func TestListUsersPagination(t *testing.T) {
	for i := 0; i < 3; i++ {
		doRequest(t, "POST", "/api/users", map[string]interface{}{
			"name":  fmt.Sprintf("Page User %d", i),
			"email": fmt.Sprintf("page%d@x.com", i),
		}, adminToken)
	}

	resp, result := doRequest(t, "GET", "/api/users?search=page&limit=2&offset=1", nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	total, _ := result["total"].(float64)
	assert.Equal(t, float64(3), total)

	rows, _ := result["data"].([]interface{})
	assert.Len(t, rows, 2)
}

func TestUsersRequireToken(t *testing.T) {
	resp, _ := doRequest(t, "GET", "/api/users", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMutationForbiddenWithoutPermission(t *testing.T) {
	studentToken, _ := registerUser(t, "Limited", "limited@x.com", "password123")

	// Students hold no permission row for the Users feature, so the server
	// refuses the write regardless of what the client UI shows.
	resp, _ := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "Sneaky",
		"email": "sneaky@x.com",
	}, studentToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, "GET", "/api/users", nil, studentToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateUserPartial(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/users", map[string]interface{}{
		"name":  "Renamed Before",
		"email": "renamed@x.com",
	}, adminToken)
	id := dataID(created)

	resp, result := doRequest(t, "PUT", fmt.Sprintf("/api/users/%d", id), map[string]interface{}{
		"name": "Renamed After",
	}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataMap(result)
	assert.Equal(t, "Renamed After", data["name"])
	assert.Equal(t, "renamed@x.com", data["email"])
}

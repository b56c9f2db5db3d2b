package routes

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"lms-admin/models"
)

func TestCreateFeature(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/features", map[string]interface{}{
		"name":        "Certificates",
		"icon":        "🎓",
		"path":        "/admin/certificates",
		"description": "Certificate Management",
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/admin/certificates", dataMap(result)["path"])
}

func TestCreateFeatureDuplicateName(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/features", map[string]interface{}{
		"name": "Users",
	}, adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, result["message"], "already exists")
}

func TestDeleteFeatureCascadesPermissions(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/features", map[string]interface{}{
		"name": "Badges",
		"path": "/admin/badges",
	}, adminToken)
	featureID := dataID(created)

	instructor, err := models.NewRoleStore(testDB).FindByName("Instructor")
	assert.NoError(t, err)

	resp, _ := doRequest(t, "POST", "/api/permissions", map[string]interface{}{
		"feature_id": featureID,
		"role_id":    instructor.ID,
		"can_view":   true,
	}, adminToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/features/%d", featureID), nil, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = models.NewPermissionStore(testDB).FindByFeatureAndRole(featureID, instructor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFeatureUpdateNoopReturnsRow(t *testing.T) {
	_, created := doRequest(t, "POST", "/api/features", map[string]interface{}{
		"name": "Forums",
		"path": "/admin/forums",
	}, adminToken)
	id := dataID(created)

	resp, result := doRequest(t, "PUT", fmt.Sprintf("/api/features/%d", id), map[string]interface{}{}, adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Forums", dataMap(result)["name"])
}

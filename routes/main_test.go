package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"lms-admin/config"
	"lms-admin/models"
)

var (
	app        *fiber.App
	testDB     *gorm.DB
	testCfg    *config.Config
	adminToken string
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	testCfg = &config.Config{
		DBHost:     getenv("TEST_DB_HOST", "localhost"),
		DBPort:     getenv("TEST_DB_PORT", "5432"),
		DBUser:     getenv("TEST_DB_USER", "postgres"),
		DBPassword: getenv("TEST_DB_PASSWORD", "postgres"),
		DBName:     getenv("TEST_DB_NAME", "lms_admin_test"),
		DBSSLMode:  "disable",
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	testDB, err = models.InitDB(testCfg)
	if err != nil {
		panic(err)
	}
	if err := models.Seed(testDB); err != nil {
		panic(err)
	}

	app = fiber.New()
	SetupRoutes(app, testDB, testCfg)

	adminToken = login("superadmin@academy.com", "admin@123")
}

func teardown() {
	testDB.Migrator().DropTable(
		&models.Permission{},
		&models.Content{},
		&models.User{},
		&models.Feature{},
		&models.Role{},
	)
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// doRequest performs a JSON request against the test app and decodes the
// envelope. The raw response is returned alongside for status assertions.
func doRequest(t *testing.T, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

func login(email, password string) string {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		panic(err)
	}
	data, _ := result["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	return token
}

// registerUser signs up through the public endpoint and returns the issued
// token plus the user payload.
func registerUser(t *testing.T, name, email, password string) (string, map[string]interface{}) {
	t.Helper()

	resp, result := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data, _ := result["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	user, _ := data["user"].(map[string]interface{})
	return token, user
}

func dataMap(result map[string]interface{}) map[string]interface{} {
	data, _ := result["data"].(map[string]interface{})
	return data
}

func dataID(result map[string]interface{}) uint {
	id, _ := dataMap(result)["id"].(float64)
	return uint(id)
}

package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/utils"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check probes storage connectivity.
func (hc *HealthController) Check(c *fiber.Ctx) error {
	sqlDB, err := hc.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return utils.ServerError(c, "Database connection failed", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running and database is connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

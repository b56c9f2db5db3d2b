package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms-admin/config"
	"lms-admin/controllers"
	"lms-admin/middleware"
	"lms-admin/models"
)

// SetupRoutes wires the REST surface. Every entity group sits behind
// authentication plus a per-action permission gate keyed on the feature path
// the entity is registered under.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	healthController := controllers.NewHealthController(db)
	app.Get("/health", healthController.Check)

	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authenticated := middleware.RequireAuth(db, cfg)
	app.Get("/api/auth/me", authenticated, authController.Me)
	app.Get("/api/auth/permissions", authenticated, authController.MyPermissions)

	gate := func(featurePath, action string) fiber.Handler {
		return middleware.RequirePermission(db, featurePath, action)
	}

	userController := controllers.NewUserController(db)
	users := app.Group("/api/users", authenticated)
	users.Get("/", gate(models.FeaturePathUsers, "view"), userController.List)
	users.Get("/:id", gate(models.FeaturePathUsers, "view_detail"), userController.Get)
	users.Post("/", gate(models.FeaturePathUsers, "add"), userController.Create)
	users.Put("/:id", gate(models.FeaturePathUsers, "edit"), userController.Update)
	users.Delete("/:id", gate(models.FeaturePathUsers, "delete"), userController.Delete)

	roleController := controllers.NewRoleController(db)
	roles := app.Group("/api/roles", authenticated)
	roles.Get("/", gate(models.FeaturePathRoles, "view"), roleController.List)
	roles.Get("/:id", gate(models.FeaturePathRoles, "view_detail"), roleController.Get)
	roles.Post("/", gate(models.FeaturePathRoles, "add"), roleController.Create)
	roles.Put("/:id", gate(models.FeaturePathRoles, "edit"), roleController.Update)
	roles.Delete("/:id", gate(models.FeaturePathRoles, "delete"), roleController.Delete)

	featureController := controllers.NewFeatureController(db)
	features := app.Group("/api/features", authenticated)
	features.Get("/", gate(models.FeaturePathFeatures, "view"), featureController.List)
	features.Get("/:id", gate(models.FeaturePathFeatures, "view_detail"), featureController.Get)
	features.Post("/", gate(models.FeaturePathFeatures, "add"), featureController.Create)
	features.Put("/:id", gate(models.FeaturePathFeatures, "edit"), featureController.Update)
	features.Delete("/:id", gate(models.FeaturePathFeatures, "delete"), featureController.Delete)

	permissionController := controllers.NewPermissionController(db)
	permissions := app.Group("/api/permissions", authenticated)
	permissions.Get("/", gate(models.FeaturePathPermissions, "view"), permissionController.List)
	// Pair routes go first so "feature" is not swallowed by the :id matcher.
	permissions.Put("/feature/:featureId/role/:roleId", gate(models.FeaturePathPermissions, "edit"), permissionController.UpdateByPair)
	permissions.Delete("/feature/:featureId/role/:roleId", gate(models.FeaturePathPermissions, "delete"), permissionController.DeleteByPair)
	permissions.Get("/:id", gate(models.FeaturePathPermissions, "view_detail"), permissionController.Get)
	permissions.Post("/", gate(models.FeaturePathPermissions, "add"), permissionController.Create)
	permissions.Put("/:id", gate(models.FeaturePathPermissions, "edit"), permissionController.Update)
	permissions.Delete("/:id", gate(models.FeaturePathPermissions, "delete"), permissionController.Delete)

	contentController := controllers.NewContentController(db)
	contents := app.Group("/api/contents", authenticated)
	contents.Get("/", gate(models.FeaturePathContents, "view"), contentController.List)
	contents.Get("/:id", gate(models.FeaturePathContents, "view_detail"), contentController.Get)
	contents.Post("/", gate(models.FeaturePathContents, "add"), contentController.Create)
	contents.Put("/:id", gate(models.FeaturePathContents, "edit"), contentController.Update)
	contents.Delete("/:id", gate(models.FeaturePathContents, "delete"), contentController.Delete)
}

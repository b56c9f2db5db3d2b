package models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedRoles = []Role{
	{Name: "Student", Description: "Student role for learning", CanSelfRegister: true, HomePage: "/student/dashboard"},
	{Name: "Instructor", Description: "Instructor role for teaching", CanSelfRegister: false, HomePage: "/instructor/dashboard"},
	{Name: "Admin", Description: "Administrator role for system management", CanSelfRegister: false, HomePage: "/admin"},
	{Name: "SuperAdmin", Description: "Super Administrator with full system access", CanSelfRegister: false, HomePage: "/admin"},
}

var seedFeatures = []Feature{
	{Name: "Dashboard", Icon: "📊", Path: FeaturePathDashboard, Description: "Admin Dashboard"},
	{Name: "Users", Icon: "👥", Path: FeaturePathUsers, Description: "User Management"},
	{Name: "Roles", Icon: "🎭", Path: FeaturePathRoles, Description: "Role Management"},
	{Name: "Features", Icon: "⚙️", Path: FeaturePathFeatures, Description: "Feature Management"},
	{Name: "Permissions", Icon: "🔐", Path: FeaturePathPermissions, Description: "Permission Management"},
	{Name: "Content Management", Icon: "📄", Path: FeaturePathContents, Description: "Content Management (Video, File, Markdown, Image)"},
	{Name: "Courses", Icon: "📚", Path: "/admin/courses", Description: "Course Management"},
	{Name: "Lessons", Icon: "📝", Path: "/admin/lessons", Description: "Lesson Management"},
	{Name: "Payments", Icon: "💳", Path: "/admin/payments", Description: "Payment Management"},
	{Name: "Analytics", Icon: "📈", Path: "/admin/analytics", Description: "Analytics Dashboard"},
	{Name: "Settings", Icon: "⚙️", Path: "/admin/settings", Description: "System Settings"},
	{Name: "My Courses", Icon: "📖", Path: "/student/courses", Description: "Student Courses"},
	{Name: "My Profile", Icon: "👤", Path: "/student/profile", Description: "Student Profile"},
}

// Names of the features the Student role may view out of the box.
var seedStudentFeatures = []string{"My Courses", "My Profile"}

// Seed inserts the default roles, features, SuperAdmin permission matrix and
// the bootstrap SuperAdmin account. It is idempotent: existing rows are left
// untouched, so admin edits survive restarts.
func Seed(db *gorm.DB) error {
	for _, role := range seedRoles {
		r := role
		if err := db.Where(Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return err
		}
	}

	for _, feature := range seedFeatures {
		f := feature
		if err := db.Where(Feature{Name: f.Name}).FirstOrCreate(&f).Error; err != nil {
			return err
		}
	}

	var superAdmin, student Role
	if err := db.Where("name = ?", "SuperAdmin").Take(&superAdmin).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", DefaultRoleName).Take(&student).Error; err != nil {
		return err
	}

	var features []Feature
	if err := db.Find(&features).Error; err != nil {
		return err
	}

	studentViewable := map[string]bool{}
	for _, name := range seedStudentFeatures {
		studentViewable[name] = true
	}

	for _, feature := range features {
		full := Permission{
			FeatureID:     feature.ID,
			RoleID:        superAdmin.ID,
			CanView:       true,
			CanViewDetail: true,
			CanAdd:        true,
			CanEdit:       true,
			CanDelete:     true,
		}
		err := db.Where(Permission{FeatureID: feature.ID, RoleID: superAdmin.ID}).
			FirstOrCreate(&full).Error
		if err != nil {
			return err
		}

		if studentViewable[feature.Name] {
			view := Permission{
				FeatureID:     feature.ID,
				RoleID:        student.ID,
				CanView:       true,
				CanViewDetail: true,
			}
			err := db.Where(Permission{FeatureID: feature.ID, RoleID: student.ID}).
				FirstOrCreate(&view).Error
			if err != nil {
				return err
			}
		}
	}

	return seedSuperAdminUser(db, superAdmin.ID)
}

func seedSuperAdminUser(db *gorm.DB, roleID uint) error {
	email := envOr("SEED_ADMIN_EMAIL", "superadmin@academy.com")

	var count int64
	if err := db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := envOr("SEED_ADMIN_PASSWORD", "admin@123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Name:     "Super Admin",
		Email:    email,
		RoleID:   &roleID,
		Status:   StatusActive,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("SuperAdmin account created: %s", email)
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

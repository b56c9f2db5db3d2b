package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultRoleName is assigned to users created without an explicit role.
const DefaultRoleName = "Student"

type Role struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string    `json:"description"`
	CanSelfRegister bool      `gorm:"default:false" json:"can_self_register"`
	HomePage        string    `gorm:"size:500" json:"home_page"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

type RoleStore struct {
	db *gorm.DB
}

func NewRoleStore(db *gorm.DB) *RoleStore {
	return &RoleStore{db: db}
}

type RoleFilter struct {
	Search string
	Limit  int
	Offset int
}

// RoleUpdate carries a partial update; nil fields are left untouched.
type RoleUpdate struct {
	Name            *string
	Description     *string
	CanSelfRegister *bool
	HomePage        *string
}

func (s *RoleStore) FindAll(f RoleFilter) ([]Role, error) {
	q := s.db.Model(&Role{}).Order("name ASC")
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var roles []Role
	return roles, q.Find(&roles).Error
}

func (s *RoleStore) Count(f RoleFilter) (int64, error) {
	q := s.db.Model(&Role{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	return total, q.Count(&total).Error
}

func (s *RoleStore) FindByID(id uint) (*Role, error) {
	var role Role
	if err := s.db.Take(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleStore) FindByName(name string) (*Role, error) {
	var role Role
	if err := s.db.Where("name = ?", name).Take(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindSelfRegisterRoles returns every role open for public signup, ordered
// by name so callers see a stable result.
func (s *RoleStore) FindSelfRegisterRoles() ([]Role, error) {
	var roles []Role
	err := s.db.Where("can_self_register = ?", true).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (s *RoleStore) Create(role *Role) error {
	return s.db.Create(role).Error
}

func (s *RoleStore) Update(id uint, in RoleUpdate) (*Role, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CanSelfRegister != nil {
		updates["can_self_register"] = *in.CanSelfRegister
	}
	if in.HomePage != nil {
		updates["home_page"] = *in.HomePage
	}
	if len(updates) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&Role{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(id)
}

func (s *RoleStore) Delete(id uint) error {
	res := s.db.Delete(&Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UserCount reports how many users currently reference the role. Role
// deletion is refused while this is non-zero.
func (s *RoleStore) UserCount(id uint) (int64, error) {
	var count int64
	err := s.db.Model(&User{}).Where("role_id = ?", id).Count(&count).Error
	return count, err
}

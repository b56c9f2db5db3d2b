package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Permission is one cell of the role/feature access-control matrix: five
// independent action flags for a single (feature, role) pair. The composite
// unique index guarantees at most one row per pair.
type Permission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FeatureID     uint      `gorm:"not null;uniqueIndex:idx_permissions_feature_role" json:"feature_id"`
	RoleID        uint      `gorm:"not null;uniqueIndex:idx_permissions_feature_role" json:"role_id"`
	CanView       bool      `gorm:"default:false" json:"can_view"`
	CanViewDetail bool      `gorm:"default:false" json:"can_view_detail"`
	CanAdd        bool      `gorm:"default:false" json:"can_add"`
	CanEdit       bool      `gorm:"default:false" json:"can_edit"`
	CanDelete     bool      `gorm:"default:false" json:"can_delete"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Feature *Feature `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role    *Role    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Permission) TableName() string { return "permissions" }

// PermissionRow is a permission joined with its feature and role names; the
// feature path is what the client-side gate keys its lookups on.
type PermissionRow struct {
	Permission  `gorm:"embedded"`
	FeatureName string `json:"feature_name"`
	FeatureIcon string `json:"feature_icon"`
	FeaturePath string `json:"feature_path"`
	RoleName    string `json:"role_name"`
}

type PermissionStore struct {
	db *gorm.DB
}

func NewPermissionStore(db *gorm.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

type PermissionCreate struct {
	FeatureID     uint
	RoleID        uint
	CanView       bool
	CanViewDetail bool
	CanAdd        bool
	CanEdit       bool
	CanDelete     bool
}

type PermissionUpdate struct {
	CanView       *bool
	CanViewDetail *bool
	CanAdd        *bool
	CanEdit       *bool
	CanDelete     *bool
}

func (s *PermissionStore) rows() *gorm.DB {
	return s.db.Table("permissions").
		Select("permissions.*, features.name AS feature_name, features.icon AS feature_icon, features.path AS feature_path, roles.name AS role_name").
		Joins("JOIN features ON features.id = permissions.feature_id").
		Joins("JOIN roles ON roles.id = permissions.role_id")
}

func (s *PermissionStore) FindAll() ([]PermissionRow, error) {
	var rows []PermissionRow
	err := s.rows().Order("roles.name, features.name").Find(&rows).Error
	return rows, err
}

func (s *PermissionStore) FindByID(id uint) (*PermissionRow, error) {
	var row PermissionRow
	if err := s.rows().Where("permissions.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *PermissionStore) FindByRoleID(roleID uint) ([]PermissionRow, error) {
	var rows []PermissionRow
	err := s.rows().Where("permissions.role_id = ?", roleID).Order("features.name").Find(&rows).Error
	return rows, err
}

func (s *PermissionStore) FindByFeatureID(featureID uint) ([]PermissionRow, error) {
	var rows []PermissionRow
	err := s.rows().Where("permissions.feature_id = ?", featureID).Order("roles.name").Find(&rows).Error
	return rows, err
}

func (s *PermissionStore) FindByFeatureAndRole(featureID, roleID uint) (*PermissionRow, error) {
	var row PermissionRow
	err := s.rows().
		Where("permissions.feature_id = ? AND permissions.role_id = ?", featureID, roleID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *PermissionStore) Create(in PermissionCreate) (*PermissionRow, error) {
	perm := Permission{
		FeatureID:     in.FeatureID,
		RoleID:        in.RoleID,
		CanView:       in.CanView,
		CanViewDetail: in.CanViewDetail,
		CanAdd:        in.CanAdd,
		CanEdit:       in.CanEdit,
		CanDelete:     in.CanDelete,
	}
	if err := s.db.Create(&perm).Error; err != nil {
		return nil, err
	}
	return s.FindByID(perm.ID)
}

func (s *PermissionStore) updates(in PermissionUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if in.CanView != nil {
		updates["can_view"] = *in.CanView
	}
	if in.CanViewDetail != nil {
		updates["can_view_detail"] = *in.CanViewDetail
	}
	if in.CanAdd != nil {
		updates["can_add"] = *in.CanAdd
	}
	if in.CanEdit != nil {
		updates["can_edit"] = *in.CanEdit
	}
	if in.CanDelete != nil {
		updates["can_delete"] = *in.CanDelete
	}
	return updates
}

func (s *PermissionStore) Update(id uint, in PermissionUpdate) (*PermissionRow, error) {
	updates := s.updates(in)
	if len(updates) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&Permission{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(id)
}

// UpdateByFeatureAndRole updates the row for the pair. A missing pair is
// reported as not found, never upserted.
func (s *PermissionStore) UpdateByFeatureAndRole(featureID, roleID uint, in PermissionUpdate) (*PermissionRow, error) {
	updates := s.updates(in)
	if len(updates) == 0 {
		return s.FindByFeatureAndRole(featureID, roleID)
	}

	res := s.db.Model(&Permission{}).
		Where("feature_id = ? AND role_id = ?", featureID, roleID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByFeatureAndRole(featureID, roleID)
}

func (s *PermissionStore) Delete(id uint) error {
	res := s.db.Delete(&Permission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *PermissionStore) DeleteByFeatureAndRole(featureID, roleID uint) error {
	res := s.db.Where("feature_id = ? AND role_id = ?", featureID, roleID).Delete(&Permission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Check resolves a feature by its path and returns the action flag for the
// role. No row, or an unknown action, means false; an error is only raised
// on storage failure.
func (s *PermissionStore) Check(roleID uint, featurePath, action string) (bool, error) {
	var perm Permission
	err := s.db.Model(&Permission{}).
		Joins("JOIN features ON features.id = permissions.feature_id").
		Where("permissions.role_id = ? AND features.path = ?", roleID, featurePath).
		Take(&perm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	switch strings.TrimPrefix(action, "can_") {
	case "view":
		return perm.CanView, nil
	case "view_detail":
		return perm.CanViewDetail, nil
	case "add":
		return perm.CanAdd, nil
	case "edit":
		return perm.CanEdit, nil
	case "delete":
		return perm.CanDelete, nil
	default:
		return false, nil
	}
}

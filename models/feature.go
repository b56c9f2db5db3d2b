package models

import (
	"time"

	"gorm.io/gorm"
)

// Feature paths used when wiring permission checks into the route layer.
// They double as the seed data paths, so the admin UI and the API agree on
// the permission key for each capability area.
const (
	FeaturePathDashboard   = "/admin"
	FeaturePathUsers       = "/admin/users"
	FeaturePathRoles       = "/admin/roles"
	FeaturePathFeatures    = "/admin/features"
	FeaturePathPermissions = "/admin/permissions"
	FeaturePathContents    = "/admin/contents"
)

type Feature struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Icon        string    `gorm:"size:100" json:"icon"`
	Path        string    `gorm:"size:500;index" json:"path"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Feature) TableName() string { return "features" }

type FeatureStore struct {
	db *gorm.DB
}

func NewFeatureStore(db *gorm.DB) *FeatureStore {
	return &FeatureStore{db: db}
}

type FeatureFilter struct {
	Search string
	Limit  int
	Offset int
}

type FeatureUpdate struct {
	Name        *string
	Icon        *string
	Path        *string
	Description *string
}

func (s *FeatureStore) FindAll(f FeatureFilter) ([]Feature, error) {
	q := s.db.Model(&Feature{}).Order("name ASC")
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR path ILIKE ?", pattern, pattern, pattern)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var features []Feature
	return features, q.Find(&features).Error
}

func (s *FeatureStore) Count(f FeatureFilter) (int64, error) {
	q := s.db.Model(&Feature{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR path ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	return total, q.Count(&total).Error
}

func (s *FeatureStore) FindByID(id uint) (*Feature, error) {
	var feature Feature
	if err := s.db.Take(&feature, id).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (s *FeatureStore) FindByName(name string) (*Feature, error) {
	var feature Feature
	if err := s.db.Where("name = ?", name).Take(&feature).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (s *FeatureStore) Create(feature *Feature) error {
	return s.db.Create(feature).Error
}

func (s *FeatureStore) Update(id uint, in FeatureUpdate) (*Feature, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Icon != nil {
		updates["icon"] = *in.Icon
	}
	if in.Path != nil {
		updates["path"] = *in.Path
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&Feature{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(id)
}

// Delete removes the feature; its permission rows go with it via the
// ON DELETE CASCADE constraint.
func (s *FeatureStore) Delete(id uint) error {
	res := s.db.Delete(&Feature{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

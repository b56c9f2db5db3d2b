package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Closed enumerations enforced both at the route layer and as storage-level
// check constraints.
var (
	ContentTypes   = []string{"video", "file", "markdown", "image"}
	ContentSources = []string{"internal", "external"}
	ContentStates  = []string{"active", "inactive", "draft"}
)

type Content struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `json:"description"`
	ContentType   string         `gorm:"size:50;not null;check:chk_contents_content_type,content_type IN ('video','file','markdown','image')" json:"content_type"`
	ContentSource string         `gorm:"size:50;not null;check:chk_contents_content_source,content_source IN ('internal','external')" json:"content_source"`
	ContentURL    string         `gorm:"not null" json:"content_url"`
	ThumbnailURL  string         `gorm:"size:500" json:"thumbnail_url"`
	Status        string         `gorm:"size:50;default:'active';check:chk_contents_status,status IN ('active','inactive','draft')" json:"status"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`
	CreatedBy     *uint          `gorm:"index" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
}

func (Content) TableName() string { return "contents" }

// ContentRow is a content record joined with its creator's display name.
type ContentRow struct {
	Content       `gorm:"embedded"`
	CreatedByName string `json:"created_by_name"`
}

type ContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{db: db}
}

type ContentFilter struct {
	Search        string
	ContentType   string
	ContentSource string
	Status        string
	Limit         int
	Offset        int
}

type ContentCreate struct {
	Title         string
	Description   string
	ContentType   string
	ContentSource string
	ContentURL    string
	ThumbnailURL  string
	Status        string
	Metadata      datatypes.JSON
	CreatedBy     *uint
}

type ContentUpdate struct {
	Title         *string
	Description   *string
	ContentType   *string
	ContentSource *string
	ContentURL    *string
	ThumbnailURL  *string
	Status        *string
	Metadata      datatypes.JSON
}

func (s *ContentStore) rows() *gorm.DB {
	return s.db.Table("contents").
		Select("contents.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = contents.created_by")
}

func (s *ContentStore) applyFilter(q *gorm.DB, f ContentFilter) *gorm.DB {
	if f.ContentType != "" {
		q = q.Where("contents.content_type = ?", f.ContentType)
	}
	if f.ContentSource != "" {
		q = q.Where("contents.content_source = ?", f.ContentSource)
	}
	if f.Status != "" {
		q = q.Where("contents.status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("contents.title ILIKE ? OR contents.description ILIKE ?", pattern, pattern)
	}
	return q
}

func (s *ContentStore) FindAll(f ContentFilter) ([]ContentRow, error) {
	q := s.applyFilter(s.rows(), f).Order("contents.created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []ContentRow
	return rows, q.Find(&rows).Error
}

func (s *ContentStore) Count(f ContentFilter) (int64, error) {
	var total int64
	err := s.applyFilter(s.db.Model(&Content{}), f).Count(&total).Error
	return total, err
}

func (s *ContentStore) FindByID(id uint) (*ContentRow, error) {
	var row ContentRow
	if err := s.rows().Where("contents.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *ContentStore) Create(in ContentCreate) (*ContentRow, error) {
	content := Content{
		Title:         in.Title,
		Description:   in.Description,
		ContentType:   in.ContentType,
		ContentSource: in.ContentSource,
		ContentURL:    in.ContentURL,
		ThumbnailURL:  in.ThumbnailURL,
		Status:        in.Status,
		Metadata:      in.Metadata,
		CreatedBy:     in.CreatedBy,
	}
	if content.Status == "" {
		content.Status = "active"
	}

	if err := s.db.Create(&content).Error; err != nil {
		return nil, err
	}
	return s.FindByID(content.ID)
}

func (s *ContentStore) Update(id uint, in ContentUpdate) (*ContentRow, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ContentType != nil {
		updates["content_type"] = *in.ContentType
	}
	if in.ContentSource != nil {
		updates["content_source"] = *in.ContentSource
	}
	if in.ContentURL != nil {
		updates["content_url"] = *in.ContentURL
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Metadata != nil {
		updates["metadata"] = in.Metadata
	}
	if len(updates) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&Content{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(id)
}

func (s *ContentStore) Delete(id uint) error {
	res := s.db.Delete(&Content{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

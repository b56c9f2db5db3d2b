package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RoleID    *uint     `gorm:"index" json:"role_id"`
	Status    string    `gorm:"size:50;default:'Active'" json:"status"`
	Password  string    `gorm:"size:255" json:"-"`
	Thumbnail string    `gorm:"size:500" json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Role *Role `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

func (User) TableName() string { return "users" }

// VerifyPassword reports whether plaintext matches the stored hash. A user
// without a password can never log in, so this returns false rather than an
// error in that case.
func (u *User) VerifyPassword(plaintext string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// UserRow is a user joined with its role name, the shape every read path
// returns.
type UserRow struct {
	User     `gorm:"embedded"`
	RoleName string `json:"role_name"`
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

type UserFilter struct {
	Search string
	RoleID uint
	Status string
	Limit  int
	Offset int
}

type UserCreate struct {
	Name      string
	Email     string
	RoleID    *uint
	Status    string
	Password  string
	Thumbnail string
}

type UserUpdate struct {
	Name      *string
	Email     *string
	RoleID    *uint
	Status    *string
	Password  *string
	Thumbnail *string
}

func (s *UserStore) rows() *gorm.DB {
	return s.db.Table("users").
		Select("users.*, roles.name AS role_name").
		Joins("LEFT JOIN roles ON roles.id = users.role_id")
}

func (s *UserStore) applyFilter(q *gorm.DB, f UserFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}
	if f.RoleID != 0 {
		q = q.Where("users.role_id = ?", f.RoleID)
	}
	if f.Status != "" {
		q = q.Where("users.status = ?", f.Status)
	}
	return q
}

func (s *UserStore) FindAll(f UserFilter) ([]UserRow, error) {
	q := s.applyFilter(s.rows(), f).Order("users.created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var users []UserRow
	return users, q.Find(&users).Error
}

func (s *UserStore) Count(f UserFilter) (int64, error) {
	var total int64
	err := s.applyFilter(s.db.Model(&User{}), f).Count(&total).Error
	return total, err
}

func (s *UserStore) FindByID(id uint) (*UserRow, error) {
	var row UserRow
	if err := s.rows().Where("users.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *UserStore) FindByEmail(email string) (*UserRow, error) {
	var row UserRow
	if err := s.rows().Where("users.email = ?", email).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create stores a new user, hashing any supplied plaintext password. When no
// role is given the role named "Student" is assigned, if it exists.
func (s *UserStore) Create(in UserCreate) (*UserRow, error) {
	user := User{
		Name:      in.Name,
		Email:     in.Email,
		RoleID:    in.RoleID,
		Status:    in.Status,
		Thumbnail: in.Thumbnail,
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if user.RoleID == nil {
		var student Role
		err := s.db.Where("name = ?", DefaultRoleName).Take(&student).Error
		if err == nil {
			user.RoleID = &student.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return s.FindByID(user.ID)
}

func (s *UserStore) Update(id uint, in UserUpdate) (*UserRow, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.RoleID != nil {
		updates["role_id"] = *in.RoleID
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Thumbnail != nil {
		updates["thumbnail"] = *in.Thumbnail
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return s.FindByID(id)
	}

	res := s.db.Model(&User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.FindByID(id)
}

func (s *UserStore) Delete(id uint) error {
	res := s.db.Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

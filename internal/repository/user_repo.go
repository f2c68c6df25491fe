package repository

import (
	"strings"

	"tingling/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByGoogleID(googleID string) (*model.User, error)
	CountByIDs(ids ...string) (int64, error)
	Search(query string) ([]model.User, error)
	Update(id string, fields map[string]interface{}) (*model.User, error)
	UpdateCallStatus(id string, status model.CallStatus) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByIDs counts how many of the given ids exist
func (r *userRepository) CountByIDs(ids ...string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Search matches the id exactly or the name partially, both case-insensitively
func (r *userRepository) Search(query string) ([]model.User, error) {
	var users []model.User
	q := strings.ToLower(query)

	err := r.db.Where("LOWER(id) = ? OR LOWER(name) LIKE ?", q, "%"+q+"%").
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies the given columns and returns the fresh row
func (r *userRepository) Update(id string, fields map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{ID: id}).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

func (r *userRepository) UpdateCallStatus(id string, status model.CallStatus) error {
	result := r.db.Model(&model.User{ID: id}).Update("call_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"time"

	"tingling/internal/model"

	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(status *model.Status) error
	FindByID(id uint) (*model.Status, error)
	FindActiveByUserID(userID string, now time.Time, privacies ...model.Privacy) ([]*model.Status, error)
	FindActiveByFriendsOf(userID string, now time.Time) ([]*model.Status, error)
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(status *model.Status) error {
	return r.db.Create(status).Error
}

func (r *statusRepository) FindByID(id uint) (*model.Status, error) {
	var status model.Status
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindActiveByUserID returns the user's unexpired statuses, newest first.
// With no privacies given every privacy level matches.
func (r *statusRepository) FindActiveByUserID(userID string, now time.Time, privacies ...model.Privacy) ([]*model.Status, error) {
	var statuses []*model.Status
	query := r.db.Where("user_id = ? AND expires_at > ?", userID, now)
	if len(privacies) > 0 {
		query = query.Where("privacy IN ?", privacies)
	}
	err := query.Order("created_at DESC, id DESC").Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// FindActiveByFriendsOf returns unexpired statuses of every friend of userID
func (r *statusRepository) FindActiveByFriendsOf(userID string, now time.Time) ([]*model.Status, error) {
	var statuses []*model.Status
	err := r.db.
		Where("(user_id IN (?) OR user_id IN (?)) AND expires_at > ?",
			friendIDsAsUser1(r.db, userID), friendIDsAsUser2(r.db, userID), now).
		Order("created_at DESC, id DESC").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

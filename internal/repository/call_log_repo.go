package repository

import (
	"tingling/internal/model"

	"gorm.io/gorm"
)

type CallLogRepository interface {
	Create(log *model.CallLog) error
	FindByUserID(userID string) ([]*model.CallLog, error)
}

type callLogRepository struct {
	db *gorm.DB
}

func NewCallLogRepository(db *gorm.DB) CallLogRepository {
	return &callLogRepository{db: db}
}

func (r *callLogRepository) Create(log *model.CallLog) error {
	return r.db.Create(log).Error
}

// FindByUserID returns calls the user placed or received, newest first
func (r *callLogRepository) FindByUserID(userID string) ([]*model.CallLog, error) {
	var logs []*model.CallLog
	err := r.db.Where("caller_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

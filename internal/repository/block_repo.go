package repository

import (
	"errors"

	"tingling/internal/model"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Block(blockerID, blockedID string) (*model.BlockedUser, error)
	Unblock(blockerID, blockedID string) (bool, error)
	ExistsEitherWay(userA, userB string) (bool, error)
	FindByBlockerID(blockerID string) ([]*model.BlockedUser, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Block drops any friendship between the pair and records the block in one
// transaction. Blocking an already blocked user returns the existing row.
func (r *blockRepository) Block(blockerID, blockedID string) (*model.BlockedUser, error) {
	var block model.BlockedUser

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(betweenClause, blockerID, blockedID, blockedID, blockerID).
			Delete(&model.Friendship{}).Error; err != nil {
			return err
		}

		err := tx.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&block).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		block = model.BlockedUser{BlockerID: blockerID, BlockedID: blockedID}
		return tx.Create(&block).Error
	})
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *blockRepository) Unblock(blockerID, blockedID string) (bool, error) {
	result := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.BlockedUser{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *blockRepository) ExistsEitherWay(userA, userB string) (bool, error) {
	var count int64
	err := r.db.Model(&model.BlockedUser{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func (r *blockRepository) FindByBlockerID(blockerID string) ([]*model.BlockedUser, error) {
	var blocks []*model.BlockedUser
	err := r.db.Where("blocker_id = ?", blockerID).
		Order("created_at DESC, id DESC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

package repository

import (
	"tingling/internal/model"

	"gorm.io/gorm"
)

type FriendshipRepository interface {
	Create(friendship *model.Friendship) error
	ExistsBetween(userA, userB string) (bool, error)
	FindFriends(userID string) ([]model.User, error)
	CountBetween(userA, userB string) (int64, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Create(friendship *model.Friendship) error {
	return r.db.Create(friendship).Error
}

// ExistsBetween checks both orderings of the pair
func (r *friendshipRepository) ExistsBetween(userA, userB string) (bool, error) {
	count, err := r.CountBetween(userA, userB)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendshipRepository) CountBetween(userA, userB string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where(betweenClause, userA, userB, userB, userA).
		Count(&count).Error
	return count, err
}

// FindFriends returns each user linked to userID by a friendship, whichever
// side userID is stored on
func (r *friendshipRepository) FindFriends(userID string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Where("id IN (?) OR id IN (?)", friendIDsAsUser1(r.db, userID), friendIDsAsUser2(r.db, userID)).
		Order("name ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

const betweenClause = "(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)"

func friendIDsAsUser1(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&model.Friendship{}).Select("user2_id").Where("user1_id = ?", userID)
}

func friendIDsAsUser2(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&model.Friendship{}).Select("user1_id").Where("user2_id = ?", userID)
}

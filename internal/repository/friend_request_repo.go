package repository

import (
	"tingling/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendRequestRepository interface {
	Create(req *model.FriendRequest) error
	FindByID(id uint) (*model.FriendRequest, error)
	FindBetween(userA, userB string) (*model.FriendRequest, error)
	FindPendingByReceiverID(receiverID string) ([]*model.FriendRequest, error)
	Respond(id uint, status model.FriendRequestStatus) (*model.FriendRequest, error)
}

type friendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(req *model.FriendRequest) error {
	return r.db.Create(req).Error
}

func (r *friendRequestRepository) FindByID(id uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindBetween finds a request of any status sent in either direction
func (r *friendRequestRepository) FindBetween(userA, userB string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *friendRequestRepository) FindPendingByReceiverID(receiverID string) ([]*model.FriendRequest, error) {
	var reqs []*model.FriendRequest
	err := r.db.
		Where("receiver_id = ? AND status = ?", receiverID, model.FriendRequestStatusPending).
		Order("created_at DESC, id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// Respond moves a pending request to status and, on acceptance, records the
// friendship in the same transaction. The friendship keeps the request's
// (sender, receiver) order.
func (r *friendRequestRepository) Respond(id uint, status model.FriendRequestStatus) (*model.FriendRequest, error) {
	var req model.FriendRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error; err != nil {
			return err
		}
		if req.Status != model.FriendRequestStatusPending {
			return ErrNotPending
		}

		result := tx.Model(&req).
			Where("status = ?", model.FriendRequestStatusPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotPending
		}

		if status == model.FriendRequestStatusAccepted {
			friendship := &model.Friendship{
				User1ID: req.SenderID,
				User2ID: req.ReceiverID,
			}
			if err := tx.Create(friendship).Error; err != nil {
				return err
			}
		}
		return tx.First(&req, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

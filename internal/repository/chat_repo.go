package repository

import (
	"time"

	"tingling/internal/model"

	"gorm.io/gorm"
)

type ChatRepository interface {
	FindByID(id uint) (*model.Chat, error)
	FindBetween(userA, userB string) (*model.Chat, error)
	CreateWithParticipants(chat *model.Chat) error
	FindByUserID(userID string) ([]*model.Chat, error)
	FindParticipants(chatID uint) ([]*model.ChatParticipant, error)
	IsParticipant(chatID uint, userID string) (bool, error)
	MarkAsRead(chatID uint, userID string, at time.Time) (bool, error)
	GetUnreadCount(userID string) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) FindByID(id uint) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindBetween looks the pair up in both orderings
func (r *chatRepository) FindBetween(userA, userB string) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.Where(betweenClause, userA, userB, userB, userA).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateWithParticipants inserts the chat and one participant row per member.
// Either all three rows persist or none do.
func (r *chatRepository) CreateWithParticipants(chat *model.Chat) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		participants := []model.ChatParticipant{
			{ChatID: chat.ID, UserID: chat.User1ID},
			{ChatID: chat.ID, UserID: chat.User2ID},
		}
		return tx.Create(&participants).Error
	})
}

func (r *chatRepository) FindByUserID(userID string) ([]*model.Chat, error) {
	var chats []*model.Chat
	err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *chatRepository) FindParticipants(chatID uint) ([]*model.ChatParticipant, error) {
	var participants []*model.ChatParticipant
	err := r.db.Where("chat_id = ?", chatID).Order("id ASC").Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *chatRepository) IsParticipant(chatID uint, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

// MarkAsRead zeroes the unread counter; false means no participant row matched
func (r *chatRepository) MarkAsRead(chatID uint, userID string, at time.Time) (bool, error) {
	result := r.db.Model(&model.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Updates(map[string]interface{}{
			"unread_count": 0,
			"last_read_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetUnreadCount sums unread messages over all of the user's chats
func (r *chatRepository) GetUnreadCount(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&model.ChatParticipant{}).
		Select("COALESCE(SUM(unread_count), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

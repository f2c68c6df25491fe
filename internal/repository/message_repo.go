package repository

import (
	"tingling/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(msg *model.Message) error
	FindByID(id uint) (*model.Message, error)
	FindByChatID(chatID uint, limit, offset *int) ([]*model.Message, error)
	SoftDelete(id uint, senderID string) (bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create stores the message, points the chat at it and bumps the unread
// counter of every other participant, all in one transaction.
func (r *messageRepository) Create(msg *model.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Chat{ID: msg.ChatID}).Updates(map[string]interface{}{
			"last_message_id": msg.ID,
			"updated_at":      msg.CreatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.ChatParticipant{}).
			Where("chat_id = ? AND user_id <> ?", msg.ChatID, msg.SenderID).
			Update("unread_count", gorm.Expr("unread_count + ?", 1)).Error
	})
}

func (r *messageRepository) FindByID(id uint) (*model.Message, error) {
	var msg model.Message
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindByChatID returns messages oldest first. A nil limit or offset is not applied.
func (r *messageRepository) FindByChatID(chatID uint, limit, offset *int) ([]*model.Message, error) {
	var messages []*model.Message
	query := r.db.Where("chat_id = ?", chatID).Order("created_at ASC, id ASC")
	if limit != nil {
		query = query.Limit(*limit)
	}
	if offset != nil {
		query = query.Offset(*offset)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SoftDelete flags the message only when senderID wrote it. Repeating it on
// an already deleted message still reports true for the sender.
func (r *messageRepository) SoftDelete(id uint, senderID string) (bool, error) {
	result := r.db.Model(&model.Message{}).
		Where("id = ? AND sender_id = ?", id, senderID).
		Update("is_deleted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

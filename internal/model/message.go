package model

import "time"

// Message is never removed; deletion only sets IsDeleted
type Message struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ChatID      uint        `gorm:"not null;index:idx_messages_chat_created,priority:1" json:"chat_id"`
	SenderID    string      `gorm:"type:varchar(32);not null;index" json:"sender_id"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	MessageType MessageType `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	IsDeleted   bool        `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index:idx_messages_chat_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Chat   Chat `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Sender User `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

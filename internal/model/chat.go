package model

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a one-to-one conversation; at most one exists per unordered pair
type Chat struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	User1ID       string    `gorm:"type:varchar(32);not null;index" json:"user1_id"`
	User2ID       string    `gorm:"type:varchar(32);not null;index" json:"user2_id"`
	PairKey       string    `gorm:"type:varchar(80);not null;uniqueIndex" json:"-"`
	LastMessageID *uint     `json:"last_message_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User1 User `gorm:"foreignKey:User1ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User2 User `gorm:"foreignKey:User2ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to fill the pair key
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	c.PairKey = PairKey(c.User1ID, c.User2ID)
	return nil
}

// TableName specifies the table name
func (Chat) TableName() string {
	return "chats"
}

// ChatParticipant tracks unread state for one user in one chat
type ChatParticipant struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ChatID      uint       `gorm:"not null;uniqueIndex:idx_chat_participant" json:"chat_id"`
	UserID      string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_chat_participant;index" json:"user_id"`
	UnreadCount int        `gorm:"not null;default:0" json:"unread_count"`
	LastReadAt  *time.Time `json:"last_read_at"`

	Chat Chat `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (ChatParticipant) TableName() string {
	return "chat_participants"
}

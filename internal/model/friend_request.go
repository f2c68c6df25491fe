package model

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequest is unique per unordered pair regardless of status, so a
// rejected request keeps blocking new ones between the same users.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   string              `gorm:"type:varchar(32);not null;index" json:"sender_id"`
	ReceiverID string              `gorm:"type:varchar(32);not null;index" json:"receiver_id"`
	PairKey    string              `gorm:"type:varchar(80);not null;uniqueIndex" json:"-"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to fill the pair key
func (f *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	f.PairKey = PairKey(f.SenderID, f.ReceiverID)
	return nil
}

// TableName specifies the table name
func (FriendRequest) TableName() string {
	return "friend_requests"
}

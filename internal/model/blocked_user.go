package model

import "time"

// BlockedUser is directed: Blocker has blocked Blocked
type BlockedUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_blocker_blocked" json:"blocker_id"`
	BlockedID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_blocker_blocked;index" json:"blocked_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Blocker User `gorm:"foreignKey:BlockerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Blocked User `gorm:"foreignKey:BlockedID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlockedUser) TableName() string {
	return "blocked_users"
}

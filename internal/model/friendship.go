package model

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is undirected. User1/User2 keep the order of the accepted
// request (sender, receiver); readers must match both orderings.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   string    `gorm:"type:varchar(32);not null;index" json:"user1_id"`
	User2ID   string    `gorm:"type:varchar(32);not null;index" json:"user2_id"`
	PairKey   string    `gorm:"type:varchar(80);not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User1 User `gorm:"foreignKey:User1ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User2 User `gorm:"foreignKey:User2ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to fill the pair key
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	f.PairKey = PairKey(f.User1ID, f.User2ID)
	return nil
}

// TableName specifies the table name
func (Friendship) TableName() string {
	return "friendships"
}

// Other returns the member of the friendship that is not userID
func (f *Friendship) Other(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

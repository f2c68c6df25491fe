package model

import "time"

// StatusLifetime is how long a status stays visible after creation
const StatusLifetime = 24 * time.Hour

// Status is ephemeral content. Expired rows are filtered at read time and
// never purged.
type Status struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(32);not null;index:idx_statuses_user_expires,priority:1" json:"user_id"`
	Content   *string   `gorm:"type:text" json:"content"`
	MediaURL  *string   `gorm:"type:text" json:"media_url"`
	MediaType MediaType `gorm:"type:varchar(20);not null;default:'text'" json:"media_type"`
	Privacy   Privacy   `gorm:"type:varchar(20);not null;default:'friends_only'" json:"privacy"`
	ExpiresAt time.Time `gorm:"not null;index:idx_statuses_user_expires,priority:2" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Status) TableName() string {
	return "statuses"
}

// Expired reports whether the status is no longer visible at now
func (s *Status) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

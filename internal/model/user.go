package model

import (
	"time"
)

// User is created on first external sign-in and never hard-deleted
type User struct {
	ID                string     `gorm:"type:varchar(32);primaryKey" json:"id"` // ting-NNNN
	GoogleID          string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"google_id"`
	Name              string     `gorm:"type:varchar(255);not null" json:"name"`
	Emoji             string     `gorm:"type:varchar(32);not null" json:"emoji"`
	ProfilePictureURL *string    `gorm:"type:text" json:"profile_picture_url"`
	CallStatus        CallStatus `gorm:"type:varchar(20);not null;default:'offline'" json:"call_status"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

package model

import "time"

// StatusView is unique per (status, viewer)
type StatusView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	StatusID uint      `gorm:"not null;uniqueIndex:idx_status_viewer" json:"status_id"`
	ViewerID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_status_viewer;index" json:"viewer_id"`
	ViewedAt time.Time `gorm:"autoCreateTime" json:"viewed_at"`

	// Relationships
	Status Status `gorm:"foreignKey:StatusID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Viewer User   `gorm:"foreignKey:ViewerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (StatusView) TableName() string {
	return "status_views"
}

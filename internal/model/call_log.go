package model

import "time"

// CallLog is append-only. Duration is nil for missed and rejected calls.
type CallLog struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CallerID   string      `gorm:"type:varchar(32);not null;index" json:"caller_id"`
	ReceiverID string      `gorm:"type:varchar(32);not null;index" json:"receiver_id"`
	CallType   CallType    `gorm:"type:varchar(20);not null" json:"call_type"`
	Status     CallOutcome `gorm:"type:varchar(20);not null" json:"status"`
	Duration   *int        `json:"duration"` // seconds
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`

	Caller   User `gorm:"foreignKey:CallerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CallLog) TableName() string {
	return "call_logs"
}

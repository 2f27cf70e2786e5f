package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLeaveSubmitted    = "leave.submitted"
	TypeLeaveAwaitingHR   = "leave.awaiting_hr"
	TypeLeaveDecided      = "leave.decided"
	TypeLeaveDeptRejected = "leave.dept_rejected"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient_created"`
	Type        string     `gorm:"type:varchar(40);not null"`
	Title       string     `gorm:"size:255;not null"`
	Message     string     `gorm:"type:text;not null"`
	LeaveID     *uuid.UUID `gorm:"type:uuid"`
	// EventKey makes redelivered events idempotent.
	EventKey  string     `gorm:"size:200;not null;uniqueIndex:uq_notification_event"`
	ReadAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"index:idx_notifications_recipient_created"`
}

func (Notification) TableName() string {
	return "notifications"
}

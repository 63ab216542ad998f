package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types
const (
	NotifyCaseAssigned     = "case_assigned"
	NotifyCaseUpdate       = "case_update"
	NotifyHearingScheduled = "hearing_scheduled"
	NotifyHearingReminder  = "hearing_reminder"
	NotifyDocumentUploaded = "document_uploaded"
	NotifyMessage          = "message"
	NotifySystem           = "system"
)

// Notification is an in-app notification for a user. Delivery over external
// channels is a collaborator concern; only the record is kept here.
type Notification struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"not null;index:idx_notifications_user_read"`
	NotificationType string `json:"notification_type" gorm:"not null"`
	Title            string `json:"title" gorm:"not null"`
	Message          string `json:"message"`

	RelatedObjectType string `json:"related_object_type"`
	RelatedObjectID   *uint  `json:"related_object_id"`

	IsRead bool       `json:"is_read" gorm:"default:false;index:idx_notifications_user_read"`
	ReadAt *time.Time `json:"read_at"`
}

func (Notification) TableName() string { return "notifications" }

// MarkRead flips the read flag once and stamps the time
func (n *Notification) MarkRead() {
	if !n.IsRead {
		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
	}
}

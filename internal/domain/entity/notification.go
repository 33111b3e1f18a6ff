package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus represents the delivery status of a notification
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification kinds emitted by the booking lifecycle
const (
	NotificationAppointmentBooked      = "appointment.booked"
	NotificationAppointmentCancelled   = "appointment.cancelled"
	NotificationAppointmentRescheduled = "appointment.rescheduled"
	NotificationDoctorLeave            = "doctor.leave"
)

// Notification is one outbound message recorded for a user. Delivery is
// best effort and never blocks the booking flow; a failed dispatch only
// flips the status to failed.
type Notification struct {
	ID        int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      string             `gorm:"type:varchar(100);not null;index" json:"kind"`
	Message   string             `gorm:"type:text;not null" json:"message"`
	Metadata  JSON               `gorm:"type:jsonb" json:"metadata,omitempty"`
	Status    NotificationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time          `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

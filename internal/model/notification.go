package model

import (
	"time"
)

// Notification types, matching the event that produced the record.
const (
	NotificationTypeAnnouncement = "announcement"
	NotificationTypeAttendance   = "attendance"
	NotificationTypeHomework     = "homework"
	NotificationTypeFee          = "fee"
)

// Notification is one durable in-app notification record. Exactly one row
// exists per (recipient, event); it is written before any push attempt and
// survives regardless of push outcome. Only the read flag ever changes.
type Notification struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"-"` // Recipient
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	Type        string    `db:"type" json:"type"`
	ReferenceID *int64    `db:"reference_id" json:"reference_id,omitempty"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MarkReadRequest is the request body for marking a notification as read.
type MarkReadRequest struct {
	NotificationID int64 `json:"notification_id" validate:"required"`
}

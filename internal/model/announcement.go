package model

import (
	"errors"
	"time"
)

// Announcement priorities
const (
	PriorityUrgent = "urgent"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Target audiences
const (
	AudienceAll        = "all"
	AudienceTeachers   = "teachers"
	AudienceParents    = "parents"
	AudienceClass      = "class"
	AudienceIndividual = "individual"
)

// Announcement is a broadcast posting. Its recipient set is resolved once,
// at creation time; roster changes afterwards never re-notify anyone.
type Announcement struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	Priority       string     `db:"priority" json:"priority"`
	TargetAudience string     `db:"target_audience" json:"target_audience"`
	ClassID        *int64     `db:"class_id" json:"class_id,omitempty"`
	TargetUserID   *int64     `db:"target_user_id" json:"target_user_id,omitempty"`
	AttachmentURL  *string    `db:"attachment_url" json:"attachment_url,omitempty"`
	CreatedBy      int64      `db:"created_by" json:"created_by"`
	ExpiresAt      *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`

	// Joined fields for display
	CreatedByName *string `db:"created_by_name" json:"created_by_name,omitempty"`
	ClassName     *string `db:"class_name" json:"class_name,omitempty"`
	Section       *string `db:"section" json:"section,omitempty"`
}

// CreateAnnouncementRequest is the request body for posting an announcement.
type CreateAnnouncementRequest struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=urgent normal low"`
	TargetAudience string     `json:"target_audience" validate:"required,oneof=all teachers parents class individual"`
	ClassID        *int64     `json:"class_id"`
	TargetUserID   *int64     `json:"target_user_id"`
	AttachmentURL  *string    `json:"attachment_url"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

var (
	// ErrAnnouncementNotFound is returned when deleting an announcement the
	// caller does not own or that does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

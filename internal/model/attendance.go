package model

import (
	"time"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance is one student's record for one day. Marking the same
// (student, date) again replaces the earlier status in place.
type Attendance struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	Date      time.Time `db:"date" json:"date"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	MarkedBy  *int64    `db:"marked_by" json:"marked_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields for display
	StudentName  *string `db:"student_name" json:"student_name,omitempty"`
	StudentCode  *string `db:"student_code" json:"student_code,omitempty"`
	MarkedByName *string `db:"marked_by_name" json:"marked_by_name,omitempty"`
}

// MarkAttendanceRequest is the request body for marking attendance.
type MarkAttendanceRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	ClassID   int64   `json:"class_id" validate:"required"`
	Date      string  `json:"date" validate:"required"` // YYYY-MM-DD
	Status    string  `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     *string `json:"notes"`
}

// AttendanceStats aggregates one student's attendance over a date range.
type AttendanceStats struct {
	TotalDays    int `db:"total_days" json:"total_days"`
	PresentCount int `db:"present_count" json:"present_count"`
	AbsentCount  int `db:"absent_count" json:"absent_count"`
	LateCount    int `db:"late_count" json:"late_count"`
	ExcusedCount int `db:"excused_count" json:"excused_count"`

	AttendancePercentage float64 `json:"attendance_percentage"`
}

package model

import (
	"errors"
	"time"
)

// Student links a child to a class and to the parent account that
// receives notifications about them.
type Student struct {
	ID          int64     `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	StudentCode string    `db:"student_code" json:"student_code"`
	ClassID     int64     `db:"class_id" json:"class_id"`
	ParentID    int64     `db:"parent_id" json:"parent_id"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined fields for display
	ClassName  *string `db:"class_name" json:"class_name,omitempty"`
	ParentName *string `db:"parent_name" json:"parent_name,omitempty"`
}

// Class is a school class; students belong to exactly one.
type Class struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Section   *string   `db:"section" json:"section"`
	TeacherID *int64    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateStudentRequest is the admin request for enrolling a student.
type CreateStudentRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	StudentCode string `json:"student_code" validate:"required"`
	ClassID     int64  `json:"class_id" validate:"required"`
	ParentID    int64  `json:"parent_id" validate:"required"`
}

// CreateClassRequest is the admin request for creating a class.
type CreateClassRequest struct {
	Name      string  `json:"name" validate:"required"`
	Section   *string `json:"section"`
	TeacherID *int64  `json:"teacher_id"`
}

var (
	// ErrStudentNotFound is returned when a student cannot be found
	ErrStudentNotFound = errors.New("student not found")
)

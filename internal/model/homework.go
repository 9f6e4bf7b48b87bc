package model

import (
	"errors"
	"time"
)

// Submission statuses
const (
	SubmissionPending   = "pending"
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
)

// Homework is an assignment for a whole class.
type Homework struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ClassID       int64     `db:"class_id" json:"class_id"`
	Subject       string    `db:"subject" json:"subject"`
	DueDate       time.Time `db:"due_date" json:"due_date"`
	TotalMarks    *int      `db:"total_marks" json:"total_marks,omitempty"`
	AttachmentURL *string   `db:"attachment_url" json:"attachment_url,omitempty"`
	CreatedBy     int64     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined fields for display
	ClassName     *string `db:"class_name" json:"class_name,omitempty"`
	Section       *string `db:"section" json:"section,omitempty"`
	CreatedByName *string `db:"created_by_name" json:"created_by_name,omitempty"`
}

// HomeworkSubmission is one student's submission; resubmitting replaces it.
type HomeworkSubmission struct {
	ID             int64      `db:"id" json:"id"`
	HomeworkID     int64      `db:"homework_id" json:"homework_id"`
	StudentID      int64      `db:"student_id" json:"student_id"`
	AttachmentURL  *string    `db:"attachment_url" json:"attachment_url,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	Status         string     `db:"status" json:"status"`
	MarksObtained  *int       `db:"marks_obtained" json:"marks_obtained,omitempty"`
	Feedback       *string    `db:"feedback" json:"feedback,omitempty"`
	GradedBy       *int64     `db:"graded_by" json:"graded_by,omitempty"`
	GradedAt       *time.Time `db:"graded_at" json:"graded_at,omitempty"`
	SubmissionDate time.Time  `db:"submission_date" json:"submission_date"`

	// Joined fields for display
	StudentName   *string `db:"student_name" json:"student_name,omitempty"`
	StudentCode   *string `db:"student_code" json:"student_code,omitempty"`
	HomeworkTitle *string `db:"homework_title" json:"homework_title,omitempty"`
}

// CreateHomeworkRequest is the request body for assigning homework.
type CreateHomeworkRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   *string `json:"description"`
	ClassID       int64   `json:"class_id" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	DueDate       string  `json:"due_date" validate:"required"` // YYYY-MM-DD
	TotalMarks    *int    `json:"total_marks"`
	AttachmentURL *string `json:"attachment_url"`
}

// SubmitHomeworkRequest is the request body for submitting homework.
type SubmitHomeworkRequest struct {
	HomeworkID    int64   `json:"homework_id" validate:"required"`
	StudentID     int64   `json:"student_id" validate:"required"`
	Notes         *string `json:"notes"`
	AttachmentURL *string `json:"attachment_url"`
}

// GradeHomeworkRequest is the request body for grading a submission.
type GradeHomeworkRequest struct {
	SubmissionID  int64   `json:"submission_id" validate:"required"`
	MarksObtained int     `json:"marks_obtained" validate:"min=0"`
	Feedback      *string `json:"feedback"`
}

var (
	// ErrSubmissionNotFound is returned when grading a submission that does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
)

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type homeworkRepository struct {
	db *sqlx.DB
}

func NewHomeworkRepository(db *sqlx.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

func (r *homeworkRepository) Create(ctx context.Context, hw *model.Homework) error {
	query := `
		INSERT INTO homework
			(title, description, class_id, subject, due_date, total_marks,
			 attachment_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		hw.Title, hw.Description, hw.ClassID, hw.Subject, hw.DueDate,
		hw.TotalMarks, hw.AttachmentURL, hw.CreatedBy,
	).Scan(&hw.ID, &hw.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert homework: %w", err)
	}
	return nil
}

func (r *homeworkRepository) List(ctx context.Context, classID *int64, subject *string) ([]model.Homework, error) {
	query := `
		SELECT h.id, h.title, h.description, h.class_id, h.subject, h.due_date,
		       h.total_marks, h.attachment_url, h.created_by, h.created_at,
		       c.name AS class_name, c.section, u.full_name AS created_by_name
		FROM homework h
		JOIN classes c ON h.class_id = c.id
		LEFT JOIN users u ON h.created_by = u.id
		WHERE 1=1
	`
	var args []interface{}
	n := 1

	if classID != nil {
		query += fmt.Sprintf(" AND h.class_id = $%d", n)
		args = append(args, *classID)
		n++
	}
	if subject != nil {
		query += fmt.Sprintf(" AND h.subject = $%d", n)
		args = append(args, *subject)
		n++
	}

	query += " ORDER BY h.due_date DESC"

	var homework []model.Homework
	if err := r.db.SelectContext(ctx, &homework, query, args...); err != nil {
		return nil, fmt.Errorf("list homework: %w", err)
	}
	return homework, nil
}

// UpsertSubmission inserts the student's submission or replaces the earlier
// one for the same homework.
func (r *homeworkRepository) UpsertSubmission(ctx context.Context, sub *model.HomeworkSubmission) error {
	query := `
		INSERT INTO homework_submissions
			(homework_id, student_id, attachment_url, notes, status)
		VALUES ($1, $2, $3, $4, 'submitted')
		ON CONFLICT (homework_id, student_id) DO UPDATE SET
			attachment_url = EXCLUDED.attachment_url,
			notes = EXCLUDED.notes,
			status = 'submitted',
			submission_date = NOW()
		RETURNING id, status, submission_date
	`
	err := r.db.QueryRowxContext(ctx, query,
		sub.HomeworkID, sub.StudentID, sub.AttachmentURL, sub.Notes,
	).Scan(&sub.ID, &sub.Status, &sub.SubmissionDate)
	if err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}

func (r *homeworkRepository) GradeSubmission(ctx context.Context, submissionID, gradedBy int64, marks int, feedback *string) (*model.HomeworkSubmission, error) {
	query := `
		UPDATE homework_submissions
		SET marks_obtained = $1, feedback = $2, status = 'graded',
		    graded_by = $3, graded_at = NOW()
		WHERE id = $4
		RETURNING id, homework_id, student_id, attachment_url, notes, status,
		          marks_obtained, feedback, graded_by, graded_at, submission_date
	`
	var sub model.HomeworkSubmission
	err := r.db.GetContext(ctx, &sub, query, marks, feedback, gradedBy, submissionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("grade submission: %w", err)
	}
	return &sub, nil
}

func (r *homeworkRepository) ListSubmissions(ctx context.Context, homeworkID, studentID *int64) ([]model.HomeworkSubmission, error) {
	query := `
		SELECT hs.id, hs.homework_id, hs.student_id, hs.attachment_url, hs.notes,
		       hs.status, hs.marks_obtained, hs.feedback, hs.graded_by,
		       hs.graded_at, hs.submission_date,
		       s.full_name AS student_name, s.student_code,
		       h.title AS homework_title
		FROM homework_submissions hs
		JOIN students s ON hs.student_id = s.id
		JOIN homework h ON hs.homework_id = h.id
		WHERE 1=1
	`
	var args []interface{}
	n := 1

	if homeworkID != nil {
		query += fmt.Sprintf(" AND hs.homework_id = $%d", n)
		args = append(args, *homeworkID)
		n++
	}
	if studentID != nil {
		query += fmt.Sprintf(" AND hs.student_id = $%d", n)
		args = append(args, *studentID)
		n++
	}

	query += " ORDER BY hs.submission_date DESC"

	var subs []model.HomeworkSubmission
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

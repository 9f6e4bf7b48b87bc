package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertByStudentDate writes the record for (student, date), replacing any
// earlier mark for the same day. Relies on the unique pair constraint for
// atomicity under concurrent marking.
func (r *attendanceRepository) UpsertByStudentDate(ctx context.Context, att *model.Attendance) error {
	query := `
		INSERT INTO attendance (student_id, class_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		att.StudentID, att.ClassID, att.Date, att.Status, att.Notes, att.MarkedBy,
	).Scan(&att.ID, &att.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, classID, studentID *int64, date *string) ([]model.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.class_id, a.date, a.status, a.notes,
		       a.marked_by, a.created_at,
		       s.full_name AS student_name, s.student_code,
		       u.full_name AS marked_by_name
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		LEFT JOIN users u ON a.marked_by = u.id
		WHERE 1=1
	`
	var args []interface{}
	n := 1

	if classID != nil {
		query += fmt.Sprintf(" AND a.class_id = $%d", n)
		args = append(args, *classID)
		n++
	}
	if date != nil {
		query += fmt.Sprintf(" AND a.date = $%d", n)
		args = append(args, *date)
		n++
	}
	if studentID != nil {
		query += fmt.Sprintf(" AND a.student_id = $%d", n)
		args = append(args, *studentID)
		n++
	}

	query += " ORDER BY a.date DESC, s.full_name ASC"

	var records []model.Attendance
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func (r *attendanceRepository) Stats(ctx context.Context, studentID int64, startDate, endDate string) (*model.AttendanceStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_days,
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0) AS present_count,
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0) AS absent_count,
			COALESCE(SUM(CASE WHEN status = 'late' THEN 1 ELSE 0 END), 0) AS late_count,
			COALESCE(SUM(CASE WHEN status = 'excused' THEN 1 ELSE 0 END), 0) AS excused_count
		FROM attendance
		WHERE student_id = $1 AND date BETWEEN $2 AND $3
	`
	var stats model.AttendanceStats
	if err := r.db.GetContext(ctx, &stats, query, studentID, startDate, endDate); err != nil {
		return nil, fmt.Errorf("attendance stats: %w", err)
	}
	if stats.TotalDays > 0 {
		stats.AttendancePercentage = float64(stats.PresentCount) / float64(stats.TotalDays) * 100
	}
	return &stats, nil
}

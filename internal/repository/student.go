package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (full_name, student_code, class_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		student.FullName, student.StudentCode, student.ClassID, student.ParentID,
	).Scan(&student.ID, &student.IsActive, &student.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT s.id, s.full_name, s.student_code, s.class_id, s.parent_id,
		       s.is_active, s.created_at,
		       u.full_name AS parent_name
		FROM students s
		JOIN users u ON s.parent_id = u.id
		WHERE s.id = $1
	`
	var student model.Student
	err := r.db.GetContext(ctx, &student, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	query := `
		SELECT s.id, s.full_name, s.student_code, s.class_id, s.parent_id,
		       s.is_active, s.created_at,
		       c.name AS class_name, u.full_name AS parent_name
		FROM students s
		JOIN classes c ON s.class_id = c.id
		JOIN users u ON s.parent_id = u.id
		ORDER BY s.full_name ASC
	`
	var students []model.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) ListActiveParentIDsByClass(ctx context.Context, classID int64) ([]int64, error) {
	query := `SELECT parent_id FROM students WHERE class_id = $1 AND is_active = true`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, classID); err != nil {
		return nil, fmt.Errorf("list parent ids by class: %w", err)
	}
	return ids, nil
}

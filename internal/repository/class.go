package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *model.Class) error {
	query := `
		INSERT INTO classes (name, section, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		class.Name, class.Section, class.TeacherID,
	).Scan(&class.ID, &class.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

func (r *classRepository) List(ctx context.Context) ([]model.Class, error) {
	query := `SELECT * FROM classes ORDER BY name ASC, section ASC`
	var classes []model.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

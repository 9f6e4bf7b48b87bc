package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	query := `
		INSERT INTO announcements
			(title, content, priority, target_audience, class_id, target_user_id,
			 attachment_url, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		a.Title, a.Content, a.Priority, a.TargetAudience, a.ClassID,
		a.TargetUserID, a.AttachmentURL, a.CreatedBy, a.ExpiresAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// ListVisible returns non-expired announcements addressed to the user:
// everything for 'all', the user's role audience, individual postings to
// them, and class postings for the given class (or, for parents, any class
// their children attend). Urgent announcements sort first, then newest.
func (r *announcementRepository) ListVisible(ctx context.Context, userID int64, role string, classID *int64) ([]model.Announcement, error) {
	query := `
		SELECT a.id, a.title, a.content, a.priority, a.target_audience,
		       a.class_id, a.target_user_id, a.attachment_url, a.created_by,
		       a.expires_at, a.created_at,
		       u.full_name AS created_by_name, c.name AS class_name, c.section
		FROM announcements a
		LEFT JOIN users u ON a.created_by = u.id
		LEFT JOIN classes c ON a.class_id = c.id
		WHERE (a.expires_at IS NULL OR a.expires_at > NOW())
		AND (
			a.target_audience = 'all'
			OR (a.target_audience = 'teachers' AND $2 = 'teacher')
			OR (a.target_audience = 'parents' AND $2 = 'parent')
			OR (a.target_audience = 'individual' AND a.target_user_id = $1)
	`
	args := []interface{}{userID, role}

	if classID != nil {
		query += ` OR (a.target_audience = 'class' AND a.class_id = $3)`
		args = append(args, *classID)
	} else if role == model.RoleParent {
		query += ` OR (a.target_audience = 'class' AND a.class_id IN
			(SELECT class_id FROM students WHERE parent_id = $1))`
	}

	query += `) ORDER BY a.priority = 'urgent' DESC, a.created_at DESC`

	var announcements []model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, args...); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id, createdBy int64) error {
	query := `DELETE FROM announcements WHERE id = $1 AND created_by = $2`
	res, err := r.db.ExecContext(ctx, query, id, createdBy)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrAnnouncementNotFound
	}
	return nil
}

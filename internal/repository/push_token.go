package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type pushTokenRepository struct {
	db *sqlx.DB
}

func NewPushTokenRepository(db *sqlx.DB) PushTokenRepository {
	return &pushTokenRepository{db: db}
}

// Upsert registers a (user, token) pair. Re-registering an identical pair
// only bumps updated_at, so the row count stays stable per device.
func (r *pushTokenRepository) Upsert(ctx context.Context, userID int64, token string, deviceType *string) error {
	query := `
		INSERT INTO push_tokens (user_id, token, device_type, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, token) DO UPDATE SET
			device_type = EXCLUDED.device_type,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, token, deviceType)
	if err != nil {
		return fmt.Errorf("upsert push token: %w", err)
	}
	return nil
}

// ListByUser returns all of the user's tokens ordered newest created first,
// so index 0 is the most recent registration.
func (r *pushTokenRepository) ListByUser(ctx context.Context, userID int64) ([]model.PushToken, error) {
	query := `
		SELECT id, user_id, token, device_type, created_at, updated_at
		FROM push_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	var tokens []model.PushToken
	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, fmt.Errorf("list push tokens: %w", err)
	}
	return tokens, nil
}

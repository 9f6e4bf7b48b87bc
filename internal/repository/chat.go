package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Insert persists a new message row. Messages are append-only.
func (r *chatRepository) Insert(ctx context.Context, msg *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (sender_id, receiver_id, message, attachment_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, read_at, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.Message, msg.AttachmentURL,
	).Scan(&msg.ID, &msg.IsRead, &msg.ReadAt, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// Thread returns the full two-way history between userID and otherUserID
// ascending by (created_at, id). Fetching a thread acknowledges it: within
// the same transaction, every unread message addressed to userID from
// otherUserID is marked read with a read timestamp. Re-fetching is
// idempotent since the update only touches is_read = false rows.
func (r *chatRepository) Thread(ctx context.Context, userID, otherUserID int64) ([]model.ChatMessage, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin thread tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT cm.id, cm.sender_id, cm.receiver_id, cm.message, cm.attachment_url,
		       cm.is_read, cm.read_at, cm.created_at,
		       sender.full_name AS sender_name, sender.profile_photo AS sender_photo,
		       receiver.full_name AS receiver_name, receiver.profile_photo AS receiver_photo
		FROM chat_messages cm
		JOIN users sender ON cm.sender_id = sender.id
		JOIN users receiver ON cm.receiver_id = receiver.id
		WHERE (cm.sender_id = $1 AND cm.receiver_id = $2)
		   OR (cm.sender_id = $2 AND cm.receiver_id = $1)
		ORDER BY cm.created_at ASC, cm.id ASC
	`
	var messages []model.ChatMessage
	if err := tx.SelectContext(ctx, &messages, query, userID, otherUserID); err != nil {
		return nil, fmt.Errorf("select thread: %w", err)
	}

	markRead := `
		UPDATE chat_messages
		SET is_read = true, read_at = NOW()
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = false
	`
	if _, err := tx.ExecContext(ctx, markRead, userID, otherUserID); err != nil {
		return nil, fmt.Errorf("mark thread read: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit thread tx: %w", err)
	}
	return messages, nil
}

// Conversations derives the inbox: one row per counterpart with the latest
// message in either direction and a live unread count. Always recomputed
// from chat_messages, never cached.
func (r *chatRepository) Conversations(ctx context.Context, userID int64) ([]model.Conversation, error) {
	query := `
		SELECT other_user_id, other_user_name, other_user_photo,
		       last_message, last_message_time, unread_count
		FROM (
			SELECT DISTINCT ON (other_user_id)
				CASE WHEN cm.sender_id = $1 THEN cm.receiver_id ELSE cm.sender_id END AS other_user_id,
				CASE WHEN cm.sender_id = $1 THEN receiver.full_name ELSE sender.full_name END AS other_user_name,
				CASE WHEN cm.sender_id = $1 THEN receiver.profile_photo ELSE sender.profile_photo END AS other_user_photo,
				cm.message AS last_message,
				cm.created_at AS last_message_time,
				(SELECT COUNT(*) FROM chat_messages
				 WHERE receiver_id = $1
				   AND sender_id = CASE WHEN cm.sender_id = $1 THEN cm.receiver_id ELSE cm.sender_id END
				   AND is_read = false) AS unread_count
			FROM chat_messages cm
			JOIN users sender ON cm.sender_id = sender.id
			JOIN users receiver ON cm.receiver_id = receiver.id
			WHERE cm.sender_id = $1 OR cm.receiver_id = $1
			ORDER BY other_user_id, cm.created_at DESC, cm.id DESC
		) conversations
		ORDER BY last_message_time DESC
	`
	var convos []model.Conversation
	if err := r.db.SelectContext(ctx, &convos, query, userID); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convos, nil
}

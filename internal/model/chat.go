package model

import (
	"errors"
	"time"
)

// ChatMessage is one direct message between two users. Rows are only ever
// inserted; the read flag moves false→true in bulk when the receiver fetches
// the thread, and never reverts.
type ChatMessage struct {
	ID            int64      `db:"id" json:"id"`
	SenderID      int64      `db:"sender_id" json:"sender_id"`
	ReceiverID    int64      `db:"receiver_id" json:"receiver_id"`
	Message       string     `db:"message" json:"message"`
	AttachmentURL *string    `db:"attachment_url" json:"attachment_url,omitempty"`
	IsRead        bool       `db:"is_read" json:"is_read"`
	ReadAt        *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`

	// Joined fields for display
	SenderName    *string `db:"sender_name" json:"sender_name,omitempty"`
	SenderPhoto   *string `db:"sender_photo" json:"sender_photo,omitempty"`
	ReceiverName  *string `db:"receiver_name" json:"receiver_name,omitempty"`
	ReceiverPhoto *string `db:"receiver_photo" json:"receiver_photo,omitempty"`
}

// Conversation is one inbox row: the counterpart, the latest message
// exchanged with them in either direction, and how many of their messages
// the user has not read yet. It is derived per request, never stored.
type Conversation struct {
	OtherUserID     int64     `db:"other_user_id" json:"other_user_id"`
	OtherUserName   string    `db:"other_user_name" json:"other_user_name"`
	OtherUserPhoto  *string   `db:"other_user_photo" json:"other_user_photo"`
	LastMessage     string    `db:"last_message" json:"last_message"`
	LastMessageTime time.Time `db:"last_message_time" json:"last_message_time"`
	UnreadCount     int       `db:"unread_count" json:"unread_count"`
}

// SendMessageRequest is the request body for sending a direct message.
type SendMessageRequest struct {
	ReceiverID    int64   `json:"receiver_id" validate:"required"`
	Message       string  `json:"message" validate:"required"`
	AttachmentURL *string `json:"attachment_url"`
}

var (
	// ErrSelfMessage is returned when a user tries to message themselves.
	ErrSelfMessage = errors.New("cannot send a message to yourself")
)

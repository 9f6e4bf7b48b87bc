package model

import (
	"time"
)

// PushToken is a device registration for push delivery. A user may hold one
// row per device; registering the same (user, token) pair again only bumps
// updated_at. Stale rows from old devices are never pruned automatically.
type PushToken struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"-"`
	Token      string    `db:"token" json:"-"` // Expo push token, hidden from JSON
	DeviceType *string   `db:"device_type" json:"device_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterTokenRequest is the request body for registering a push token.
type RegisterTokenRequest struct {
	Token      string  `json:"token" validate:"required"`
	DeviceType *string `json:"device_type"`
}

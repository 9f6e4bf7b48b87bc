package model

import (
	"errors"
	"time"
)

// Album groups gallery photos.
type Album struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   *string   `db:"description" json:"description,omitempty"`
	CoverPhotoURL *string   `db:"cover_photo_url" json:"cover_photo_url,omitempty"`
	CreatedBy     int64     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	PhotoCount int `db:"photo_count" json:"photo_count"`
}

// Photo is one image in an album.
type Photo struct {
	ID         int64     `db:"id" json:"id"`
	AlbumID    int64     `db:"album_id" json:"album_id"`
	PhotoURL   string    `db:"photo_url" json:"photo_url"`
	Caption    *string   `db:"caption" json:"caption,omitempty"`
	UploadedBy int64     `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateAlbumRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   *string `json:"description"`
	CoverPhotoURL *string `json:"cover_photo_url"`
}

// Upload constraints for gallery photos and attachments.
const (
	MaxPhotoSizeBytes      = 10 << 20 // 10 MiB
	MaxAttachmentSizeBytes = 20 << 20 // 20 MiB

	PhotoMaxWidth  = 1600
	PhotoMaxHeight = 1600
)

var (
	// ErrAlbumNotFound is returned when uploading into a missing album.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrFileTooLarge is returned when an upload exceeds its size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrUnsupportedFileType is returned for uploads with a disallowed content type.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

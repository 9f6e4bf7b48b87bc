package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"schoolcomm/internal/model"
)

type galleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) CreateAlbum(ctx context.Context, album *model.Album) error {
	query := `
		INSERT INTO albums (title, description, cover_photo_url, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		album.Title, album.Description, album.CoverPhotoURL, album.CreatedBy,
	).Scan(&album.ID, &album.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}

func (r *galleryRepository) ListAlbums(ctx context.Context) ([]model.Album, error) {
	query := `
		SELECT a.id, a.title, a.description, a.cover_photo_url, a.created_by,
		       a.created_at,
		       (SELECT COUNT(*) FROM photos p WHERE p.album_id = a.id) AS photo_count
		FROM albums a
		ORDER BY a.created_at DESC
	`
	var albums []model.Album
	if err := r.db.SelectContext(ctx, &albums, query); err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

func (r *galleryRepository) AlbumExists(ctx context.Context, albumID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM albums WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, albumID); err != nil {
		return false, fmt.Errorf("check album: %w", err)
	}
	return exists, nil
}

func (r *galleryRepository) AddPhoto(ctx context.Context, photo *model.Photo) error {
	query := `
		INSERT INTO photos (album_id, photo_url, caption, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		photo.AlbumID, photo.PhotoURL, photo.Caption, photo.UploadedBy,
	).Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *galleryRepository) ListPhotos(ctx context.Context, albumID int64) ([]model.Photo, error) {
	query := `
		SELECT id, album_id, photo_url, caption, uploaded_by, created_at
		FROM photos
		WHERE album_id = $1
		ORDER BY created_at DESC
	`
	var photos []model.Photo
	if err := r.db.SelectContext(ctx, &photos, query, albumID); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/disintegration/imaging"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// GalleryService manages photo albums. Uploaded photos are decoded,
// bounded to the gallery display size, and re-encoded as JPEG before
// storage.
type GalleryService struct {
	galleryRepo repository.GalleryRepository
	media       *MediaService
}

func NewGalleryService(galleryRepo repository.GalleryRepository, media *MediaService) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		media:       media,
	}
}

// CreateAlbum creates an empty album.
func (s *GalleryService) CreateAlbum(ctx context.Context, createdBy int64, title string, description, coverPhotoURL *string) (*model.Album, error) {
	album := &model.Album{
		Title:         title,
		Description:   description,
		CoverPhotoURL: coverPhotoURL,
		CreatedBy:     createdBy,
	}
	if err := s.galleryRepo.CreateAlbum(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

// ListAlbums returns all albums, newest first, with photo counts.
func (s *GalleryService) ListAlbums(ctx context.Context) ([]model.Album, error) {
	return s.galleryRepo.ListAlbums(ctx)
}

// UploadPhoto normalizes and stores an image, then records it in the album.
func (s *GalleryService) UploadPhoto(ctx context.Context, uploadedBy, albumID int64, caption *string, file multipart.File, header *multipart.FileHeader) (*model.Photo, error) {
	exists, err := s.galleryRepo.AlbumExists(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAlbumNotFound
	}

	data, _, err := readUpload(file, header, model.MaxPhotoSizeBytes)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := normalizePhoto(data)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Put(ctx, "gallery", jpegBytes, "image/jpeg", ".jpg")
	if err != nil {
		return nil, err
	}

	photo := &model.Photo{
		AlbumID:    albumID,
		PhotoURL:   url,
		Caption:    caption,
		UploadedBy: uploadedBy,
	}
	if err := s.galleryRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns the album's photos, newest first.
func (s *GalleryService) ListPhotos(ctx context.Context, albumID int64) ([]model.Photo, error) {
	return s.galleryRepo.ListPhotos(ctx, albumID)
}

// normalizePhoto decodes any supported image, bounds it to the gallery
// display size without upscaling, and re-encodes it as JPEG.
func normalizePhoto(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ErrUnsupportedFileType
	}

	fitted := imaging.Fit(img, model.PhotoMaxWidth, model.PhotoMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

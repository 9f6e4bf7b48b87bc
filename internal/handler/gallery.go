package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/transport/http/middleware"
	"schoolcomm/internal/validate"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
}

func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

func (h *GalleryHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	album, err := h.galleryService.CreateAlbum(r.Context(), userID, req.Title, req.Description, req.CoverPhotoURL)
	if err != nil {
		log.Printf("[ERROR] Failed to create album: %v", err)
		httputil.WriteInternalError(w, "Failed to create album")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, album)
}

func (h *GalleryHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.galleryService.ListAlbums(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list albums: %v", err)
		httputil.WriteInternalError(w, "Failed to load albums")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, albums)
}

func (h *GalleryHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	albumID, err := strconv.ParseInt(chi.URLParam(r, "albumID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid album id")
		return
	}

	if err := r.ParseMultipartForm(model.MaxPhotoSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.WriteBadRequest(w, "Missing photo file")
		return
	}
	defer file.Close()

	var caption *string
	if c := r.FormValue("caption"); c != "" {
		caption = &c
	}

	photo, err := h.galleryService.UploadPhoto(r.Context(), userID, albumID, caption, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlbumNotFound):
			httputil.WriteNotFound(w, "Album not found")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Photo exceeds the size limit")
		case errors.Is(err, model.ErrUnsupportedFileType):
			httputil.WriteBadRequest(w, "Unsupported photo type")
		default:
			log.Printf("[ERROR] Failed to upload photo to album %d: %v", albumID, err)
			httputil.WriteInternalError(w, "Failed to upload photo")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, photo)
}

func (h *GalleryHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	albumID, err := strconv.ParseInt(chi.URLParam(r, "albumID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid album id")
		return
	}

	photos, err := h.galleryService.ListPhotos(r.Context(), albumID)
	if err != nil {
		log.Printf("[ERROR] Failed to list photos for album %d: %v", albumID, err)
		httputil.WriteInternalError(w, "Failed to load photos")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, photos)
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadAttachment stores a file and returns its public URL. The URL is
// meant to be passed along in a chat message or announcement.
func (h *MediaHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(model.MaxAttachmentSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteBadRequest(w, "Missing file")
		return
	}
	defer file.Close()

	url, err := h.mediaService.UploadAttachment(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds the size limit")
		case errors.Is(err, model.ErrUnsupportedFileType):
			httputil.WriteBadRequest(w, "Unsupported file type")
		default:
			log.Printf("[ERROR] Failed to upload attachment: %v", err)
			httputil.WriteInternalError(w, "Failed to upload attachment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}

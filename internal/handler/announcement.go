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

type AnnouncementHandler struct {
	annService *service.AnnouncementService
}

func NewAnnouncementHandler(annService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annService: annService}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	announcement, err := h.annService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[ERROR] Failed to create announcement: %v", err)
		httputil.WriteInternalError(w, "Failed to create announcement")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	announcements, err := h.annService.List(r.Context(), userID, role, queryInt64(r, "class_id"))
	if err != nil {
		log.Printf("[ERROR] Failed to list announcements: %v", err)
		httputil.WriteInternalError(w, "Failed to load announcements")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid announcement id")
		return
	}

	if err := h.annService.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, model.ErrAnnouncementNotFound) {
			httputil.WriteNotFound(w, "Announcement not found")
			return
		}
		log.Printf("[ERROR] Failed to delete announcement %d: %v", id, err)
		httputil.WriteInternalError(w, "Failed to delete announcement")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

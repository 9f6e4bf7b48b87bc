package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/transport/http/middleware"
	"schoolcomm/internal/validate"
)

type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	limit := queryIntDefault(r, "limit", 50)
	offset := queryIntDefault(r, "offset", 0)

	notifications, err := h.notifService.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Failed to list notifications for user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to load notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.notifService.MarkRead(r.Context(), req.NotificationID, userID); err != nil {
		log.Printf("[ERROR] Failed to mark notification %d read: %v", req.NotificationID, err)
		httputil.WriteInternalError(w, "Failed to mark notification read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.RegisterTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if !service.IsExpoPushToken(req.Token) {
		httputil.WriteBadRequest(w, "Invalid push token format")
		return
	}

	if err := h.notifService.RegisterToken(r.Context(), userID, req.Token, req.DeviceType); err != nil {
		log.Printf("[ERROR] Failed to register push token for user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to register push token")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

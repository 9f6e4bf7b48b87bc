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

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	msg, err := h.chatService.Send(r.Context(), userID, req.ReceiverID, req.Message, req.AttachmentURL)
	if err != nil {
		if errors.Is(err, model.ErrSelfMessage) {
			httputil.WriteBadRequest(w, "Cannot send a message to yourself")
			return
		}
		log.Printf("[ERROR] Failed to send message from user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to send message")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) Thread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	otherUserID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	}

	messages, err := h.chatService.History(r.Context(), userID, otherUserID)
	if err != nil {
		log.Printf("[ERROR] Failed to load chat thread for user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to load messages")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	conversations, err := h.chatService.Inbox(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] Failed to load conversations for user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to load conversations")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, conversations)
}

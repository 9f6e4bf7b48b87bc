package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/realtime"
	"schoolcomm/internal/transport/http/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients connect from app webviews with no stable origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub       *realtime.Hub
	jwtSecret string
}

func NewWSHandler(hub *realtime.Hub, jwtSecret string) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret}
}

// Serve upgrades the connection and joins the caller's own room. Browsers
// cannot set headers on websocket handshakes, so the token rides in the
// query string instead of an Authorization header.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = middleware.BearerToken(r)
	}
	if token == "" {
		httputil.WriteUnauthorized(w, "Missing token")
		return
	}

	userID, _, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		httputil.WriteUnauthorized(w, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] Upgrade failed for user %d: %v", userID, err)
		return
	}

	realtime.NewClient(h.hub, conn, userID).Run()
}

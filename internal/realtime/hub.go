package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names pushed over the realtime channel.
const (
	EventNewMessage = "new_message"
)

// Envelope is the wire frame for every server-initiated event.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Session is one live client connection's outbound queue. The connection
// pumps drain it; the hub only ever writes to it.
type Session struct {
	UserID int64
	send   chan []byte
}

// NewSession creates a session with a buffered outbound queue.
func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		send:   make(chan []byte, 256),
	}
}

// Outbound exposes the session's queue to the connection write pump.
func (s *Session) Outbound() <-chan []byte {
	return s.send
}

// Hub is the process-wide registry of realtime rooms, one room per user id.
// Membership is volatile: populated on connect, removed on disconnect, and
// rebuilt from scratch when the process restarts. No event is ever queued
// for an absent user; durability lives in the notification store.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*Session]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[*Session]bool),
	}
}

// Register adds a session to its user's room.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[s.UserID] == nil {
		h.rooms[s.UserID] = make(map[*Session]bool)
	}
	h.rooms[s.UserID][s] = true
	log.Printf("[Realtime] Session registered for user %d", s.UserID)
}

// Unregister removes a session and closes its queue. Safe to call once per
// session; the read pump owns the call.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sessions, ok := h.rooms[s.UserID]; ok {
		if _, ok := sessions[s]; ok {
			delete(sessions, s)
			close(s.send)
			if len(sessions) == 0 {
				delete(h.rooms, s.UserID)
			}
		}
	}
	log.Printf("[Realtime] Session unregistered for user %d", s.UserID)
}

// Publish delivers an event to every live session in the user's room. With
// no sessions the event is dropped silently; a session whose queue is full
// is dropped from the room rather than blocking the caller.
func (h *Hub) Publish(userID int64, event string, payload interface{}) {
	frame, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Printf("[Realtime] Marshal %s event failed: %v", event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	sessions := h.rooms[userID]
	for s := range sessions {
		select {
		case s.send <- frame:
		default:
			delete(sessions, s)
			close(s.send)
			if len(sessions) == 0 {
				delete(h.rooms, userID)
			}
		}
	}
}

// SessionCount reports how many sessions are live for a user.
func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

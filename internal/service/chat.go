package service

import (
	"context"
	"strings"

	"schoolcomm/internal/model"
	"schoolcomm/internal/realtime"
	"schoolcomm/internal/repository"
)

// RealtimePublisher is the live delivery channel for server-initiated
// events. The hub satisfies it; tests substitute a recorder.
type RealtimePublisher interface {
	Publish(userID int64, event string, payload interface{})
}

// ChatService maintains direct conversations: append-only messages, read
// acknowledgement on thread fetch, and a derived inbox.
type ChatService struct {
	chatRepo repository.ChatRepository
	rt       RealtimePublisher
}

func NewChatService(chatRepo repository.ChatRepository, rt RealtimePublisher) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		rt:       rt,
	}
}

// Send persists a new message and then pushes it to the receiver's room.
// The realtime publish happens strictly after the insert succeeds, so a
// client never sees a live event for a message it cannot fetch back. Live
// delivery is additive: an offline receiver still finds the message in
// history.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID int64, body string, attachmentURL *string) (*model.ChatMessage, error) {
	if senderID == receiverID {
		return nil, model.ErrSelfMessage
	}

	msg := &model.ChatMessage{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Message:       strings.TrimSpace(body),
		AttachmentURL: attachmentURL,
	}
	if err := s.chatRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	s.rt.Publish(receiverID, realtime.EventNewMessage, msg)
	return msg, nil
}

// History returns the two-way thread with otherUserID ascending by creation
// time. Fetching implicitly acknowledges it: the repository marks the
// caller's unread incoming messages from that counterpart as read in the
// same transaction. Only the caller's own read state moves; the
// counterpart's view is untouched.
func (s *ChatService) History(ctx context.Context, userID, otherUserID int64) ([]model.ChatMessage, error) {
	messages, err := s.chatRepo.Thread(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

// Inbox derives one conversation row per counterpart, latest first. The
// view is recomputed from the message log on every call and a counterpart
// with no messages never appears.
func (s *ChatService) Inbox(ctx context.Context, userID int64) ([]model.Conversation, error) {
	convos, err := s.chatRepo.Conversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if convos == nil {
		convos = []model.Conversation{}
	}
	return convos, nil
}

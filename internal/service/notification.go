package service

import (
	"context"
	"log"
	"sync"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// Pusher is the outbound push channel. Implementations deliver best effort
// and never report per-message outcomes to the caller.
type Pusher interface {
	Send(ctx context.Context, messages []ExpoPushMessage)
}

// TokenSelector picks which of a user's registered tokens is "the" live
// token. Keeping the policy a named function lets alternates (all tokens,
// primary-flagged token) replace it without touching dispatch.
type TokenSelector func(tokens []model.PushToken) *model.PushToken

// LiveToken selects the token row with the greatest created_at: the most
// recent registration wins, stale device rows are ignored but kept.
func LiveToken(tokens []model.PushToken) *model.PushToken {
	var live *model.PushToken
	for i := range tokens {
		if live == nil || tokens[i].CreatedAt.After(live.CreatedAt) {
			live = &tokens[i]
		}
	}
	return live
}

// fanOutWorkers bounds concurrent dispatches during a fan-out.
const fanOutWorkers = 8

// NotificationService persists notifications and nudges recipients over the
// push channel. The store write is authoritative; push is opportunistic.
type NotificationService struct {
	notifRepo   repository.NotificationRepository
	tokenRepo   repository.PushTokenRepository
	pusher      Pusher
	selectToken TokenSelector
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	tokenRepo repository.PushTokenRepository,
	pusher Pusher,
) *NotificationService {
	return &NotificationService{
		notifRepo:   notifRepo,
		tokenRepo:   tokenRepo,
		pusher:      pusher,
		selectToken: LiveToken,
	}
}

// Dispatch records one notification for the recipient and then attempts a
// push. Only the store write can fail the call: once the row is persisted,
// a missing token, an invalid token, or any provider failure is recovered
// locally and never surfaced.
func (s *NotificationService) Dispatch(ctx context.Context, userID int64, title, body, notifType string, referenceID *int64) error {
	if err := s.notifRepo.Create(ctx, userID, title, body, notifType, referenceID); err != nil {
		return err
	}

	tokens, err := s.tokenRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[Notification] List tokens for user %d: %v", userID, err)
		return nil
	}

	live := s.selectToken(tokens)
	if live == nil {
		return nil // no registered device, the stored row is enough
	}
	if !IsExpoPushToken(live.Token) {
		log.Printf("[Notification] Skipping invalid push token for user %d", userID)
		return nil
	}

	data := map[string]interface{}{"type": notifType}
	if referenceID != nil {
		data["reference_id"] = *referenceID
	}

	s.pusher.Send(ctx, []ExpoPushMessage{{
		To:       live.Token,
		Title:    title,
		Body:     body,
		Data:     data,
		Sound:    "default",
		Priority: "high",
	}})
	return nil
}

// FanOut dispatches the same event to every recipient through a bounded
// worker set. Recipients are independent: one failed dispatch is logged and
// counted without touching the others, and an empty recipient list is a
// no-op. No ordering between recipients is promised.
func (s *NotificationService) FanOut(ctx context.Context, userIDs []int64, title, body, notifType string, referenceID *int64) {
	if len(userIDs) == 0 {
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, fanOutWorkers)
	var failed int64
	var mu sync.Mutex

	for _, userID := range userIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(userID int64) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := s.Dispatch(ctx, userID, title, body, notifType, referenceID); err != nil {
				log.Printf("[Notification] Dispatch to user %d failed: %v", userID, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(userID)
	}
	wg.Wait()

	if failed > 0 {
		log.Printf("[Notification] Fan-out %s: %d/%d dispatches failed", notifType, failed, len(userIDs))
	}
}

// RegisterToken upserts a (user, token) registration.
func (s *NotificationService) RegisterToken(ctx context.Context, userID int64, token string, deviceType *string) error {
	return s.tokenRepo.Upsert(ctx, userID, token, deviceType)
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.notifRepo.ListByUser(ctx, userID, limit, offset)
}

// MarkRead flips the read flag on the caller's own notification. Rows owned
// by someone else are silently left alone so callers cannot probe for other
// users' notification ids.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

package service

import (
	"context"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// notificationBodyLimit bounds notification bodies derived from long-form
// content.
const notificationBodyLimit = 100

// AnnouncementService creates and serves announcements and fans the
// creation event out to the resolved audience.
type AnnouncementService struct {
	annRepo  repository.AnnouncementRepository
	resolver *AudienceResolver
	notifier *NotificationService
}

func NewAnnouncementService(
	annRepo repository.AnnouncementRepository,
	resolver *AudienceResolver,
	notifier *NotificationService,
) *AnnouncementService {
	return &AnnouncementService{
		annRepo:  annRepo,
		resolver: resolver,
		notifier: notifier,
	}
}

// Create persists the announcement, resolves its audience once, and
// dispatches one notification per recipient. The announcement's success
// depends only on its own insert: resolution and delivery failures are
// logged inside the fan-out and never reach the caller, and an audience
// that resolves to nobody is simply no deliveries.
func (s *AnnouncementService) Create(ctx context.Context, creatorID int64, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	a := &model.Announcement{
		Title:          req.Title,
		Content:        req.Content,
		Priority:       priority,
		TargetAudience: req.TargetAudience,
		ClassID:        req.ClassID,
		TargetUserID:   req.TargetUserID,
		AttachmentURL:  req.AttachmentURL,
		CreatedBy:      creatorID,
		ExpiresAt:      req.ExpiresAt,
	}
	if err := s.annRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	recipients, err := s.resolver.Resolve(ctx, a.TargetAudience, a.ClassID, a.TargetUserID, creatorID)
	if err != nil {
		// The announcement row exists; delivery is best effort from here
		return a, nil
	}

	s.notifier.FanOut(ctx, recipients,
		a.Title,
		truncate(a.Content, notificationBodyLimit),
		model.NotificationTypeAnnouncement,
		&a.ID,
	)
	return a, nil
}

// List returns the announcements visible to the user.
func (s *AnnouncementService) List(ctx context.Context, userID int64, role string, classID *int64) ([]model.Announcement, error) {
	return s.annRepo.ListVisible(ctx, userID, role, classID)
}

// Delete removes the caller's own announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id, userID int64) error {
	return s.annRepo.Delete(ctx, id, userID)
}

// truncate caps s at limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package service

import (
	"context"
	"sync"
	"time"

	"schoolcomm/internal/model"
)

// Function-field mocks. A nil field means the call is unexpected for the
// scenario and returns zero values.

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []model.Notification

	CreateFn     func(ctx context.Context, userID int64, title, body, notifType string, referenceID *int64) error
	ListByUserFn func(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error)
	MarkReadFn   func(ctx context.Context, notificationID, userID int64) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, userID int64, title, body, notifType string, referenceID *int64) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, userID, title, body, notifType, referenceID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, model.Notification{
		UserID:      userID,
		Title:       title,
		Body:        body,
		Type:        notifType,
		ReferenceID: referenceID,
	})
	return nil
}

func (m *mockNotificationRepo) Created() []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Notification, len(m.created))
	copy(out, m.created)
	return out
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, notificationID, userID)
	}
	return nil
}

type mockPushTokenRepo struct {
	UpsertFn     func(ctx context.Context, userID int64, token string, deviceType *string) error
	ListByUserFn func(ctx context.Context, userID int64) ([]model.PushToken, error)
}

func (m *mockPushTokenRepo) Upsert(ctx context.Context, userID int64, token string, deviceType *string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, userID, token, deviceType)
	}
	return nil
}

func (m *mockPushTokenRepo) ListByUser(ctx context.Context, userID int64) ([]model.PushToken, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

// recordingPusher captures every push batch handed to it. FanOut dispatches
// concurrently, so the recorder locks.
type recordingPusher struct {
	mu    sync.Mutex
	sends [][]ExpoPushMessage
}

func (p *recordingPusher) Send(ctx context.Context, messages []ExpoPushMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sends = append(p.sends, messages)
}

func (p *recordingPusher) Sends() [][]ExpoPushMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]ExpoPushMessage, len(p.sends))
	copy(out, p.sends)
	return out
}

type mockUserRepo struct {
	CreateFn              func(ctx context.Context, user *model.User) error
	GetByIDFn             func(ctx context.Context, id int64) (*model.User, error)
	GetByUsernameFn       func(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameFn    func(ctx context.Context, username string) (bool, error)
	ListFn                func(ctx context.Context) ([]model.User, error)
	SetActiveFn           func(ctx context.Context, id int64, active bool) error
	ListActiveIDsFn       func(ctx context.Context, excludeID int64) ([]int64, error)
	ListActiveIDsByRoleFn func(ctx context.Context, role string) ([]int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFn != nil {
		return m.ExistsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if m.SetActiveFn != nil {
		return m.SetActiveFn(ctx, id, active)
	}
	return nil
}

func (m *mockUserRepo) ListActiveIDs(ctx context.Context, excludeID int64) ([]int64, error) {
	if m.ListActiveIDsFn != nil {
		return m.ListActiveIDsFn(ctx, excludeID)
	}
	return nil, nil
}

func (m *mockUserRepo) ListActiveIDsByRole(ctx context.Context, role string) ([]int64, error) {
	if m.ListActiveIDsByRoleFn != nil {
		return m.ListActiveIDsByRoleFn(ctx, role)
	}
	return nil, nil
}

type mockStudentRepo struct {
	CreateFn                     func(ctx context.Context, student *model.Student) error
	GetByIDFn                    func(ctx context.Context, id int64) (*model.Student, error)
	ListFn                       func(ctx context.Context) ([]model.Student, error)
	ListActiveParentIDsByClassFn func(ctx context.Context, classID int64) ([]int64, error)
}

func (m *mockStudentRepo) Create(ctx context.Context, student *model.Student) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, student)
	}
	return nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, model.ErrStudentNotFound
}

func (m *mockStudentRepo) List(ctx context.Context) ([]model.Student, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockStudentRepo) ListActiveParentIDsByClass(ctx context.Context, classID int64) ([]int64, error) {
	if m.ListActiveParentIDsByClassFn != nil {
		return m.ListActiveParentIDsByClassFn(ctx, classID)
	}
	return nil, nil
}

type mockChatRepo struct {
	InsertFn        func(ctx context.Context, msg *model.ChatMessage) error
	ThreadFn        func(ctx context.Context, userID, otherUserID int64) ([]model.ChatMessage, error)
	ConversationsFn func(ctx context.Context, userID int64) ([]model.Conversation, error)
}

func (m *mockChatRepo) Insert(ctx context.Context, msg *model.ChatMessage) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, msg)
	}
	return nil
}

func (m *mockChatRepo) Thread(ctx context.Context, userID, otherUserID int64) ([]model.ChatMessage, error) {
	if m.ThreadFn != nil {
		return m.ThreadFn(ctx, userID, otherUserID)
	}
	return nil, nil
}

func (m *mockChatRepo) Conversations(ctx context.Context, userID int64) ([]model.Conversation, error) {
	if m.ConversationsFn != nil {
		return m.ConversationsFn(ctx, userID)
	}
	return nil, nil
}

// recordingPublisher captures realtime publishes in order.
type recordingPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	userID  int64
	event   string
	payload interface{}
}

func (p *recordingPublisher) Publish(userID int64, event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{userID: userID, event: event, payload: payload})
}

type mockAnnouncementRepo struct {
	CreateFn      func(ctx context.Context, a *model.Announcement) error
	ListVisibleFn func(ctx context.Context, userID int64, role string, classID *int64) ([]model.Announcement, error)
	DeleteFn      func(ctx context.Context, id, createdBy int64) error
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *mockAnnouncementRepo) ListVisible(ctx context.Context, userID int64, role string, classID *int64) ([]model.Announcement, error) {
	if m.ListVisibleFn != nil {
		return m.ListVisibleFn(ctx, userID, role, classID)
	}
	return nil, nil
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id, createdBy int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, createdBy)
	}
	return nil
}

type mockAttendanceRepo struct {
	UpsertByStudentDateFn func(ctx context.Context, att *model.Attendance) error
	ListFn                func(ctx context.Context, classID, studentID *int64, date *string) ([]model.Attendance, error)
	StatsFn               func(ctx context.Context, studentID int64, startDate, endDate string) (*model.AttendanceStats, error)
}

func (m *mockAttendanceRepo) UpsertByStudentDate(ctx context.Context, att *model.Attendance) error {
	if m.UpsertByStudentDateFn != nil {
		return m.UpsertByStudentDateFn(ctx, att)
	}
	return nil
}

func (m *mockAttendanceRepo) List(ctx context.Context, classID, studentID *int64, date *string) ([]model.Attendance, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, classID, studentID, date)
	}
	return nil, nil
}

func (m *mockAttendanceRepo) Stats(ctx context.Context, studentID int64, startDate, endDate string) (*model.AttendanceStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, studentID, startDate, endDate)
	}
	return nil, nil
}

// tokenRow builds a push token row created at the given offset from a fixed
// base time.
func tokenRow(token string, createdOffset time.Duration) model.PushToken {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.PushToken{
		Token:     token,
		CreatedAt: base.Add(createdOffset),
	}
}

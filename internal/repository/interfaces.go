package repository

import (
	"context"
	"time"

	"schoolcomm/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	// ListActiveIDs returns ids of every active user except excludeID (0 excludes nobody)
	ListActiveIDs(ctx context.Context, excludeID int64) ([]int64, error)
	// ListActiveIDsByRole returns ids of active users holding the given role
	ListActiveIDsByRole(ctx context.Context, role string) ([]int64, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	List(ctx context.Context) ([]model.Class, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	// ListActiveParentIDsByClass returns the parent id of every active student
	// in the class; duplicates are preserved as stored
	ListActiveParentIDsByClass(ctx context.Context, classID int64) ([]int64, error)
}

type NotificationRepository interface {
	// Create inserts one notification row; it either persists or errors
	Create(ctx context.Context, userID int64, title, body, notifType string, referenceID *int64) error
	// ListByUser returns the user's notifications, newest first
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error)
	// MarkRead flips the read flag only when the row belongs to userID;
	// otherwise it silently does nothing
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

type PushTokenRepository interface {
	// Upsert registers a (user, token) pair; re-registering bumps updated_at
	Upsert(ctx context.Context, userID int64, token string, deviceType *string) error
	// ListByUser returns the user's tokens, newest created first
	ListByUser(ctx context.Context, userID int64) ([]model.PushToken, error)
}

type ChatRepository interface {
	// Insert persists a new message and fills the generated fields
	Insert(ctx context.Context, msg *model.ChatMessage) error
	// Thread returns both directions between the two users ascending by
	// (created_at, id) and, in the same transaction, marks userID's unread
	// incoming messages from otherUserID as read
	Thread(ctx context.Context, userID, otherUserID int64) ([]model.ChatMessage, error)
	// Conversations derives the inbox view for userID
	Conversations(ctx context.Context, userID int64) ([]model.Conversation, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	// ListVisible returns non-expired announcements the user may see,
	// urgent first then newest
	ListVisible(ctx context.Context, userID int64, role string, classID *int64) ([]model.Announcement, error)
	// Delete removes the announcement only when createdBy owns it
	Delete(ctx context.Context, id, createdBy int64) error
}

type AttendanceRepository interface {
	// UpsertByStudentDate inserts or replaces the record for (student, date)
	UpsertByStudentDate(ctx context.Context, att *model.Attendance) error
	List(ctx context.Context, classID, studentID *int64, date *string) ([]model.Attendance, error)
	Stats(ctx context.Context, studentID int64, startDate, endDate string) (*model.AttendanceStats, error)
}

type HomeworkRepository interface {
	Create(ctx context.Context, hw *model.Homework) error
	List(ctx context.Context, classID *int64, subject *string) ([]model.Homework, error)
	// UpsertSubmission inserts or replaces the submission for (homework, student)
	UpsertSubmission(ctx context.Context, sub *model.HomeworkSubmission) error
	GradeSubmission(ctx context.Context, submissionID, gradedBy int64, marks int, feedback *string) (*model.HomeworkSubmission, error)
	ListSubmissions(ctx context.Context, homeworkID, studentID *int64) ([]model.HomeworkSubmission, error)
}

type FeeRepository interface {
	Create(ctx context.Context, fee *model.FeeRecord) error
	GetByID(ctx context.Context, id int64) (*model.FeeRecord, error)
	List(ctx context.Context, studentID *int64, paymentStatus *string) ([]model.FeeRecord, error)
	RecordPayment(ctx context.Context, id int64, totalPaid float64, status string, method, notes *string, paidAt time.Time) (*model.FeeRecord, error)
}

type GalleryRepository interface {
	CreateAlbum(ctx context.Context, album *model.Album) error
	ListAlbums(ctx context.Context) ([]model.Album, error)
	AlbumExists(ctx context.Context, albumID int64) (bool, error)
	AddPhoto(ctx context.Context, photo *model.Photo) error
	ListPhotos(ctx context.Context, albumID int64) ([]model.Photo, error)
}

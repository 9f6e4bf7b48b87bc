package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolcomm/internal/model"
)

type mockHomeworkRepo struct {
	CreateFn           func(ctx context.Context, hw *model.Homework) error
	ListFn             func(ctx context.Context, classID *int64, subject *string) ([]model.Homework, error)
	UpsertSubmissionFn func(ctx context.Context, sub *model.HomeworkSubmission) error
	GradeSubmissionFn  func(ctx context.Context, submissionID, gradedBy int64, marks int, feedback *string) (*model.HomeworkSubmission, error)
	ListSubmissionsFn  func(ctx context.Context, homeworkID, studentID *int64) ([]model.HomeworkSubmission, error)
}

func (m *mockHomeworkRepo) Create(ctx context.Context, hw *model.Homework) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, hw)
	}
	return nil
}

func (m *mockHomeworkRepo) List(ctx context.Context, classID *int64, subject *string) ([]model.Homework, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, classID, subject)
	}
	return nil, nil
}

func (m *mockHomeworkRepo) UpsertSubmission(ctx context.Context, sub *model.HomeworkSubmission) error {
	if m.UpsertSubmissionFn != nil {
		return m.UpsertSubmissionFn(ctx, sub)
	}
	return nil
}

func (m *mockHomeworkRepo) GradeSubmission(ctx context.Context, submissionID, gradedBy int64, marks int, feedback *string) (*model.HomeworkSubmission, error) {
	if m.GradeSubmissionFn != nil {
		return m.GradeSubmissionFn(ctx, submissionID, gradedBy, marks, feedback)
	}
	return nil, model.ErrSubmissionNotFound
}

func (m *mockHomeworkRepo) ListSubmissions(ctx context.Context, homeworkID, studentID *int64) ([]model.HomeworkSubmission, error) {
	if m.ListSubmissionsFn != nil {
		return m.ListSubmissionsFn(ctx, homeworkID, studentID)
	}
	return nil, nil
}

func newHomeworkFixture(hwRepo *mockHomeworkRepo, studentRepo *mockStudentRepo) (*HomeworkService, *mockNotificationRepo) {
	notifRepo := &mockNotificationRepo{}
	notifier := NewNotificationService(notifRepo, &mockPushTokenRepo{}, &recordingPusher{})
	return NewHomeworkService(hwRepo, studentRepo, notifier), notifRepo
}

func TestCreateHomeworkNotifiesClassParents(t *testing.T) {
	hwRepo := &mockHomeworkRepo{
		CreateFn: func(ctx context.Context, hw *model.Homework) error {
			hw.ID = 33
			return nil
		},
	}
	studentRepo := &mockStudentRepo{
		ListActiveParentIDsByClassFn: func(ctx context.Context, classID int64) ([]int64, error) {
			require.Equal(t, int64(4), classID)
			return []int64{11, 12}, nil
		},
	}
	svc, notifRepo := newHomeworkFixture(hwRepo, studentRepo)

	hw, err := svc.Create(context.Background(), 2, &model.CreateHomeworkRequest{
		Title:   "Chapter 5 exercises",
		ClassID: 4,
		Subject: "Math",
		DueDate: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(33), hw.ID)

	created := notifRepo.Created()
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Equal(t, model.NotificationTypeHomework, n.Type)
		assert.Equal(t, "New Homework Assigned", n.Title)
		assert.Contains(t, n.Body, "Chapter 5 exercises")
		assert.Contains(t, n.Body, "2025-04-01")
		require.NotNil(t, n.ReferenceID)
		assert.Equal(t, int64(33), *n.ReferenceID)
	}
}

func TestCreateHomeworkWithEmptyClassNotifiesNobody(t *testing.T) {
	svc, notifRepo := newHomeworkFixture(&mockHomeworkRepo{}, &mockStudentRepo{})

	_, err := svc.Create(context.Background(), 2, &model.CreateHomeworkRequest{
		Title:   "x",
		ClassID: 4,
		Subject: "Math",
		DueDate: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Empty(t, notifRepo.Created())
}

func TestCreateHomeworkRejectsBadDueDate(t *testing.T) {
	var inserted bool
	hwRepo := &mockHomeworkRepo{
		CreateFn: func(ctx context.Context, hw *model.Homework) error {
			inserted = true
			return nil
		},
	}
	svc, _ := newHomeworkFixture(hwRepo, &mockStudentRepo{})

	_, err := svc.Create(context.Background(), 2, &model.CreateHomeworkRequest{
		Title:   "x",
		ClassID: 4,
		Subject: "Math",
		DueDate: "April 1st",
	})
	require.Error(t, err)
	assert.False(t, inserted)
}

func TestCreateHomeworkSucceedsWhenParentLookupFails(t *testing.T) {
	hwRepo := &mockHomeworkRepo{
		CreateFn: func(ctx context.Context, hw *model.Homework) error {
			hw.ID = 34
			return nil
		},
	}
	studentRepo := &mockStudentRepo{
		ListActiveParentIDsByClassFn: func(ctx context.Context, classID int64) ([]int64, error) {
			return nil, errors.New("lookup failed")
		},
	}
	svc, notifRepo := newHomeworkFixture(hwRepo, studentRepo)

	hw, err := svc.Create(context.Background(), 2, &model.CreateHomeworkRequest{
		Title:   "x",
		ClassID: 4,
		Subject: "Math",
		DueDate: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(34), hw.ID)
	assert.Empty(t, notifRepo.Created())
}

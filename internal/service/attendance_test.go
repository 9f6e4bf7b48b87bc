package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolcomm/internal/model"
)

func newAttendanceFixture(attRepo *mockAttendanceRepo, studentRepo *mockStudentRepo) (*AttendanceService, *mockNotificationRepo) {
	notifRepo := &mockNotificationRepo{}
	notifier := NewNotificationService(notifRepo, &mockPushTokenRepo{}, &recordingPusher{})
	return NewAttendanceService(attRepo, studentRepo, notifier), notifRepo
}

func TestMarkAbsentAlertsParent(t *testing.T) {
	attRepo := &mockAttendanceRepo{
		UpsertByStudentDateFn: func(ctx context.Context, att *model.Attendance) error {
			att.ID = 88
			return nil
		},
	}
	studentRepo := &mockStudentRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return &model.Student{ID: id, FullName: "An Nguyen", ParentID: 42}, nil
		},
	}
	svc, notifRepo := newAttendanceFixture(attRepo, studentRepo)

	att, err := svc.Mark(context.Background(), 3, &model.MarkAttendanceRequest{
		StudentID: 7,
		ClassID:   1,
		Date:      "2025-03-10",
		Status:    model.AttendanceAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(88), att.ID)

	created := notifRepo.Created()
	require.Len(t, created, 1, "an absence alerts the parent exactly once")
	alert := created[0]
	assert.Equal(t, int64(42), alert.UserID)
	assert.Equal(t, model.NotificationTypeAttendance, alert.Type)
	assert.Equal(t, "Attendance Alert", alert.Title)
	assert.Contains(t, alert.Body, "An Nguyen")
	assert.Contains(t, alert.Body, "2025-03-10")
	require.NotNil(t, alert.ReferenceID)
	assert.Equal(t, int64(88), *alert.ReferenceID)
}

func TestMarkPresentStaysQuiet(t *testing.T) {
	svc, notifRepo := newAttendanceFixture(&mockAttendanceRepo{}, &mockStudentRepo{})

	for _, status := range []string{model.AttendancePresent, model.AttendanceLate, model.AttendanceExcused} {
		_, err := svc.Mark(context.Background(), 3, &model.MarkAttendanceRequest{
			StudentID: 7,
			ClassID:   1,
			Date:      "2025-03-10",
			Status:    status,
		})
		require.NoError(t, err)
	}
	assert.Empty(t, notifRepo.Created())
}

func TestMarkRejectsBadDate(t *testing.T) {
	var upserted bool
	attRepo := &mockAttendanceRepo{
		UpsertByStudentDateFn: func(ctx context.Context, att *model.Attendance) error {
			upserted = true
			return nil
		},
	}
	svc, _ := newAttendanceFixture(attRepo, &mockStudentRepo{})

	_, err := svc.Mark(context.Background(), 3, &model.MarkAttendanceRequest{
		StudentID: 7,
		ClassID:   1,
		Date:      "10/03/2025",
		Status:    model.AttendanceAbsent,
	})
	require.Error(t, err)
	assert.False(t, upserted)
}

func TestMarkAbsentSucceedsWhenStudentLookupFails(t *testing.T) {
	attRepo := &mockAttendanceRepo{
		UpsertByStudentDateFn: func(ctx context.Context, att *model.Attendance) error {
			att.ID = 89
			return nil
		},
	}
	studentRepo := &mockStudentRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return nil, errors.New("lookup failed")
		},
	}
	svc, notifRepo := newAttendanceFixture(attRepo, studentRepo)

	att, err := svc.Mark(context.Background(), 3, &model.MarkAttendanceRequest{
		StudentID: 7,
		ClassID:   1,
		Date:      "2025-03-10",
		Status:    model.AttendanceAbsent,
	})
	require.NoError(t, err, "the mark stands even when the alert cannot be sent")
	assert.Equal(t, int64(89), att.ID)
	assert.Empty(t, notifRepo.Created())
}

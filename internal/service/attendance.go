package service

import (
	"context"
	"fmt"
	"time"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// AttendanceService marks and reports attendance. An absence alerts the
// student's parent; every other status stays quiet.
type AttendanceService struct {
	attRepo     repository.AttendanceRepository
	studentRepo repository.StudentRepository
	notifier    *NotificationService
}

func NewAttendanceService(
	attRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	notifier *NotificationService,
) *AttendanceService {
	return &AttendanceService{
		attRepo:     attRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
	}
}

// Mark writes the record for (student, date), replacing an earlier mark for
// the same day. When the status is absent, exactly one notification goes to
// the student's parent referencing the attendance row; the mark itself
// succeeds regardless of delivery.
func (s *AttendanceService) Mark(ctx context.Context, markedBy int64, req *model.MarkAttendanceRequest) (*model.Attendance, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	att := &model.Attendance{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      date,
		Status:    req.Status,
		Notes:     req.Notes,
		MarkedBy:  &markedBy,
	}
	if err := s.attRepo.UpsertByStudentDate(ctx, att); err != nil {
		return nil, err
	}

	if req.Status == model.AttendanceAbsent {
		s.alertParent(ctx, att, req.Date)
	}
	return att, nil
}

func (s *AttendanceService) alertParent(ctx context.Context, att *model.Attendance, date string) {
	student, err := s.studentRepo.GetByID(ctx, att.StudentID)
	if err != nil {
		// The mark is already recorded; the alert is best effort
		return
	}
	s.notifier.FanOut(ctx, []int64{student.ParentID},
		"Attendance Alert",
		fmt.Sprintf("%s was marked absent on %s", student.FullName, date),
		model.NotificationTypeAttendance,
		&att.ID,
	)
}

// List returns attendance records matching the optional filters.
func (s *AttendanceService) List(ctx context.Context, classID, studentID *int64, date *string) ([]model.Attendance, error) {
	return s.attRepo.List(ctx, classID, studentID, date)
}

// Stats aggregates one student's attendance over an inclusive date range.
func (s *AttendanceService) Stats(ctx context.Context, studentID int64, startDate, endDate string) (*model.AttendanceStats, error) {
	return s.attRepo.Stats(ctx, studentID, startDate, endDate)
}

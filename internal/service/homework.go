package service

import (
	"context"
	"fmt"
	"time"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// HomeworkService assigns and grades homework. Assigning notifies the
// parent of every active student in the class.
type HomeworkService struct {
	hwRepo      repository.HomeworkRepository
	studentRepo repository.StudentRepository
	notifier    *NotificationService
}

func NewHomeworkService(
	hwRepo repository.HomeworkRepository,
	studentRepo repository.StudentRepository,
	notifier *NotificationService,
) *HomeworkService {
	return &HomeworkService{
		hwRepo:      hwRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
	}
}

// Create persists the assignment and fans one notification out per active
// student's parent in the class. A class with no active students notifies
// nobody; creation succeeds either way.
func (s *HomeworkService) Create(ctx context.Context, creatorID int64, req *model.CreateHomeworkRequest) (*model.Homework, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", req.DueDate, err)
	}

	hw := &model.Homework{
		Title:         req.Title,
		Description:   req.Description,
		ClassID:       req.ClassID,
		Subject:       req.Subject,
		DueDate:       dueDate,
		TotalMarks:    req.TotalMarks,
		AttachmentURL: req.AttachmentURL,
		CreatedBy:     creatorID,
	}
	if err := s.hwRepo.Create(ctx, hw); err != nil {
		return nil, err
	}

	parents, err := s.studentRepo.ListActiveParentIDsByClass(ctx, req.ClassID)
	if err != nil {
		// The assignment row exists; delivery is best effort
		return hw, nil
	}

	s.notifier.FanOut(ctx, parents,
		"New Homework Assigned",
		fmt.Sprintf("%s - Due: %s", hw.Title, req.DueDate),
		model.NotificationTypeHomework,
		&hw.ID,
	)
	return hw, nil
}

// List returns assignments matching the optional filters.
func (s *HomeworkService) List(ctx context.Context, classID *int64, subject *string) ([]model.Homework, error) {
	return s.hwRepo.List(ctx, classID, subject)
}

// Submit records or replaces a student's submission.
func (s *HomeworkService) Submit(ctx context.Context, req *model.SubmitHomeworkRequest) (*model.HomeworkSubmission, error) {
	sub := &model.HomeworkSubmission{
		HomeworkID:    req.HomeworkID,
		StudentID:     req.StudentID,
		AttachmentURL: req.AttachmentURL,
		Notes:         req.Notes,
	}
	if err := s.hwRepo.UpsertSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Grade marks a submission with a score and feedback.
func (s *HomeworkService) Grade(ctx context.Context, gradedBy int64, req *model.GradeHomeworkRequest) (*model.HomeworkSubmission, error) {
	return s.hwRepo.GradeSubmission(ctx, req.SubmissionID, gradedBy, req.MarksObtained, req.Feedback)
}

// Submissions returns submissions matching the optional filters.
func (s *HomeworkService) Submissions(ctx context.Context, homeworkID, studentID *int64) ([]model.HomeworkSubmission, error) {
	return s.hwRepo.ListSubmissions(ctx, homeworkID, studentID)
}

package service

import (
	"context"
	"fmt"
	"time"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// FeeService bills students and records payments. Creating a fee record
// notifies the student's parent that payment is due.
type FeeService struct {
	feeRepo     repository.FeeRepository
	studentRepo repository.StudentRepository
	notifier    *NotificationService
}

func NewFeeService(
	feeRepo repository.FeeRepository,
	studentRepo repository.StudentRepository,
	notifier *NotificationService,
) *FeeService {
	return &FeeService{
		feeRepo:     feeRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
	}
}

// Create persists the fee record and sends one due notification to the
// student's parent. The record's success depends only on its own insert.
func (s *FeeService) Create(ctx context.Context, req *model.CreateFeeRequest) (*model.FeeRecord, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", req.DueDate, err)
	}

	fee := &model.FeeRecord{
		StudentID: req.StudentID,
		FeeType:   req.FeeType,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Notes:     req.Notes,
	}
	if err := s.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}

	if student, err := s.studentRepo.GetByID(ctx, req.StudentID); err == nil {
		s.notifier.FanOut(ctx, []int64{student.ParentID},
			"Fee Payment Due",
			fmt.Sprintf("%s of $%.2f is due on %s", req.FeeType, req.Amount, req.DueDate),
			model.NotificationTypeFee,
			&fee.ID,
		)
	}
	return fee, nil
}

// List returns fee records matching the optional filters.
func (s *FeeService) List(ctx context.Context, studentID *int64, paymentStatus *string) ([]model.FeeRecord, error) {
	return s.feeRepo.List(ctx, studentID, paymentStatus)
}

// RecordPayment adds a payment to a fee record and advances its status:
// pending until anything is paid, partial below the billed amount, paid at
// or above it.
func (s *FeeService) RecordPayment(ctx context.Context, req *model.RecordPaymentRequest) (*model.FeeRecord, error) {
	fee, err := s.feeRepo.GetByID(ctx, req.FeeID)
	if err != nil {
		return nil, err
	}

	totalPaid := fee.AmountPaid + req.AmountPaid
	status := model.PaymentPending
	if totalPaid >= fee.Amount {
		status = model.PaymentPaid
	} else if totalPaid > 0 {
		status = model.PaymentPartial
	}

	return s.feeRepo.RecordPayment(ctx, req.FeeID, totalPaid, status, req.PaymentMethod, req.Notes, time.Now())
}

package model

import (
	"errors"
	"time"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// FeeRecord is one billed fee for one student. Payments accumulate into
// amount_paid and move the status pending → partial → paid.
type FeeRecord struct {
	ID            int64      `db:"id" json:"id"`
	StudentID     int64      `db:"student_id" json:"student_id"`
	FeeType       string     `db:"fee_type" json:"fee_type"`
	Amount        float64    `db:"amount" json:"amount"`
	AmountPaid    float64    `db:"amount_paid" json:"amount_paid"`
	DueDate       time.Time  `db:"due_date" json:"due_date"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	PaymentDate   *time.Time `db:"payment_date" json:"payment_date,omitempty"`
	PaymentMethod *string    `db:"payment_method" json:"payment_method,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`

	// Joined fields for display
	StudentName *string `db:"student_name" json:"student_name,omitempty"`
	StudentCode *string `db:"student_code" json:"student_code,omitempty"`
}

// CreateFeeRequest is the request body for creating a fee record.
type CreateFeeRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	FeeType   string  `json:"fee_type" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	DueDate   string  `json:"due_date" validate:"required"` // YYYY-MM-DD
	Notes     *string `json:"notes"`
}

// RecordPaymentRequest is the request body for recording a payment.
type RecordPaymentRequest struct {
	FeeID         int64   `json:"fee_id" validate:"required"`
	AmountPaid    float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

var (
	// ErrFeeNotFound is returned when recording a payment against a missing fee record.
	ErrFeeNotFound = errors.New("fee record not found")
)
